package quota

import (
	"fmt"

	"github.com/giftbridge/platform/internal/models"
)

// MaxSubmissionLines is the hard ceiling on lines per bulk submission,
// applied before any quota arithmetic.
const MaxSubmissionLines = 1000

type RejectKind string

const (
	RejectForbidden       RejectKind = "forbidden"
	RejectPayloadTooLarge RejectKind = "payload_too_large"
	RejectTooManyRequests RejectKind = "too_many_requests"
)

const (
	MsgCampaignHidden     = "This campaign is hidden"
	MsgCampaignInactive   = "This campaign is not active"
	MsgBulkCreateDisabled = "Bulk create is not enabled for this campaign"
	MsgPayloadTooLarge    = "Payload too large. Please limit the size of your request"
)

// Result is the outcome of an admission check. Deficit is only meaningful
// for TooManyRequests rejections; its exact value is part of the contract
// with the client.
type Result struct {
	Admitted bool
	Kind     RejectKind
	Message  string
	Deficit  int
}

func admitted() Result {
	return Result{Admitted: true}
}

func rejected(kind RejectKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// Admit validates a bulk submission against the campaign snapshot. Checks
// run cheapest first and short-circuit:
//
//	hidden → inactive → bulk-create off → payload size → role limit → quota
//
// The per-role limit runs before the campaign quota, and is NOT bypassed by
// IsExceedQuotaEnabled; only the quota check (last) is. roleLimit is
// Unbounded when the role has no CampaignOrderLimit row.
func Admit(c *models.Campaign, submissionSize, priorRoleCount, roleLimit int) Result {
	if c.IsHidden {
		return rejected(RejectForbidden, MsgCampaignHidden)
	}
	if !c.IsActive {
		return rejected(RejectForbidden, MsgCampaignInactive)
	}
	if !c.IsBulkCreateEnabled {
		return rejected(RejectForbidden, MsgBulkCreateDisabled)
	}
	if submissionSize > MaxSubmissionLines {
		return rejected(RejectPayloadTooLarge, MsgPayloadTooLarge)
	}

	if roleLimit != Unbounded {
		if deficit := priorRoleCount + submissionSize - roleLimit; deficit > 0 {
			return Result{
				Kind:    RejectTooManyRequests,
				Message: RoleLimitExceededMessage(deficit),
				Deficit: deficit,
			}
		}
	}

	if c.IsQuotaEnabled && !c.IsExceedQuotaEnabled {
		if deficit := submissionSize - RemainingCapacity(c); deficit > 0 {
			return Result{
				Kind:    RejectTooManyRequests,
				Message: QuotaExceededMessage(deficit),
				Deficit: deficit,
			}
		}
	}

	return admitted()
}

func RoleLimitExceededMessage(deficit int) string {
	return fmt.Sprintf("Campaign order limit has been exceeded by %d", deficit)
}

func QuotaExceededMessage(deficit int) string {
	return fmt.Sprintf("Campaign quota has been exceeded by %d", deficit)
}
