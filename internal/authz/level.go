package authz

import "fmt"

// Level is the permission level granted by an access-permission record.
// Read covers retrieval only; ReadWrite covers retrieval, mutation and
// deletion.
type Level string

const (
	LevelRead      Level = "read"
	LevelReadWrite Level = "read_write"
)

func (l Level) Valid() bool {
	return l == LevelRead || l == LevelReadWrite
}

func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown permission level %q", s)
	}
	return l, nil
}

// Verb is the coarse classification of a request: retrieval or mutation.
type Verb string

const (
	VerbRead  Verb = "read"
	VerbWrite Verb = "write"
)

// VerbForMethod classifies an HTTP method. Anything that is not a plain
// retrieval counts as a write.
func VerbForMethod(method string) Verb {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return VerbRead
	default:
		return VerbWrite
	}
}

// Allows reports whether the level covers the requested verb.
func (l Level) Allows(v Verb) bool {
	if v == VerbRead {
		return l == LevelRead || l == LevelReadWrite
	}
	return l == LevelReadWrite
}
