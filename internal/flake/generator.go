package flake

import (
	"errors"
	"strconv"
	"sync"
	"time"
)

// Bit layout, most significant first:
// 41 bits milliseconds since Epoch | 4 bits type tag | 10 bits process id | 12 bits sequence
const (
	TimestampBits = 41
	TypeBits      = 4
	ProcessBits   = 10
	SequenceBits  = 12

	MaxTimestamp = (1 << TimestampBits) - 1
	MaxType      = (1 << TypeBits) - 1
	MaxProcess   = (1 << ProcessBits) - 1
	MaxSequence  = (1 << SequenceBits) - 1

	timestampShift = TypeBits + ProcessBits + SequenceBits
	typeShift      = ProcessBits + SequenceBits
	processShift   = SequenceBits
)

// Epoch is 2020-01-01T00:00:00Z in Unix milliseconds. All timestamps are
// stored relative to it, which gives the 41-bit field roughly 69 years of
// headroom.
const Epoch int64 = 1577836800000

var ErrTimestampOverflow = errors.New("flake: timestamp exceeds 41-bit range")

// Generator produces time-ordered ids. A single instance must be shared per
// process; uniqueness across processes relies on distinct process ids within
// the 10-bit field.
type Generator struct {
	mu       sync.Mutex
	process  uint64
	lastMs   int64
	sequence uint64
	now      func() int64
}

func New(processID int) *Generator {
	return &Generator{
		process: uint64(processID) & MaxProcess,
		lastMs:  -1,
		now:     func() int64 { return time.Now().UnixMilli() - Epoch },
	}
}

// Generate returns the next id rendered as a decimal string. typeTag values
// outside the 4-bit range are masked.
func (g *Generator) Generate(typeTag int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now()
	switch {
	case ms == g.lastMs:
		g.sequence++
		if g.sequence > MaxSequence {
			// Sequence space for this millisecond is exhausted. Spin until
			// the clock moves forward.
			ms = g.waitNextMillis()
			g.sequence = 0
		}
	case ms < g.lastMs:
		// Clock went backward. Never hand out an id from an earlier
		// millisecond than one already used.
		ms = g.waitNextMillis()
		g.sequence = 0
	default:
		g.sequence = 0
	}

	if ms > MaxTimestamp {
		return "", ErrTimestampOverflow
	}

	g.lastMs = ms

	id := uint64(ms)<<timestampShift |
		(uint64(typeTag)&MaxType)<<typeShift |
		g.process<<processShift |
		g.sequence

	return strconv.FormatUint(id, 10), nil
}

func (g *Generator) waitNextMillis() int64 {
	ms := g.now()
	for ms <= g.lastMs {
		ms = g.now()
	}
	return ms
}
