package quota

import "github.com/giftbridge/platform/internal/models"

// Unbounded marks a capacity with no configured ceiling.
const Unbounded = -1

// RemainingCapacity returns how many order lines the campaign can still
// absorb, or Unbounded when quota enforcement is off. Pure function of the
// snapshot; the caller owns fetching a consistent row and persisting any
// usedQuota increase after admission.
func RemainingCapacity(c *models.Campaign) int {
	if !c.IsQuotaEnabled {
		return Unbounded
	}
	return c.Quota + c.CorrectionQuota - c.UsedQuota
}

// RemainingRoleCapacity returns how much of the per-role submission limit is
// left. limit is Unbounded when no CampaignOrderLimit row exists for the
// role.
func RemainingRoleCapacity(limit, priorCount int) int {
	if limit == Unbounded {
		return Unbounded
	}
	return limit - priorCount
}
