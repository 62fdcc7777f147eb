package order

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/flake"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/quota"
	"gorm.io/gorm"
)

// Flake type tags stamped into order ids.
const (
	TypeOrder        = 1
	TypePendingOrder = 2
)

// ids is the process-wide generator. The 10-bit process field is the OS pid
// masked to 10 bits, so two processes with pids equal mod 1024 could collide.
var ids = flake.New(os.Getpid())

type SubmissionLine struct {
	RecipientID *uint                  `json:"recipient_id,omitempty"`
	ProductID   uint                   `json:"product_id"`
	Quantity    int                    `json:"quantity"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// roleLimitState returns the campaign's per-role submission ceiling and the
// role's consumed count, or quota.Unbounded when no limit row exists.
func roleLimitState(db *gorm.DB, campaignID uint, role authz.Role) (limit, used int, err error) {
	var row models.CampaignOrderLimit
	err = db.Where("campaign_id = ? AND role = ?", campaignID, role).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return quota.Unbounded, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return row.Limit, row.UsedCount, nil
}

// SubmitBulk runs the admission check for the submission and, when admitted,
// persists it. The synchronous check is a fast path over a snapshot; the
// counter increments inside persistSubmission are the enforcement point.
func SubmitBulk(campaignID, userID uint, role authz.Role, lines []SubmissionLine) ([]models.Order, quota.Result, error) {
	var campaign models.Campaign
	if err := database.DB.First(&campaign, campaignID).Error; err != nil {
		return nil, quota.Result{}, fmt.Errorf("campaign not found")
	}

	limit, used, err := roleLimitState(database.DB, campaignID, role)
	if err != nil {
		return nil, quota.Result{}, err
	}

	result := quota.Admit(&campaign, len(lines), used, limit)
	if !result.Admitted {
		return nil, result, nil
	}

	return persistSubmission(&campaign, userID, role, limit, lines)
}

// persistSubmission writes one pending order per line inside a single
// transaction. Both counters are incremented with a conditional update
// scoped to their own row (the role's used_count against order_limit, then
// the campaign's used_quota against quota + correction_quota): if a
// concurrent submission exhausted either capacity after the admission check,
// the update matches zero rows, the transaction rolls back, and the
// rejection carries a deficit recomputed from the fresh row — the same
// contract as the synchronous check.
func persistSubmission(campaign *models.Campaign, userID uint, role authz.Role, roleLimit int, lines []SubmissionLine) ([]models.Order, quota.Result, error) {
	size := len(lines)
	orders := make([]models.Order, 0, size)
	lateReject := quota.Result{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			publicID, err := ids.Generate(TypePendingOrder)
			if err != nil {
				return err
			}

			qty := line.Quantity
			if qty <= 0 {
				qty = 1
			}

			o := models.Order{
				PublicID:      publicID,
				CampaignID:    campaign.ID,
				CompanyID:     campaign.CompanyID,
				SubmittedBy:   userID,
				SubmitterRole: role,
				RecipientID:   line.RecipientID,
				ProductID:     line.ProductID,
				Quantity:      qty,
				Status:        models.OrderStatusPending,
			}
			if len(line.Attributes) > 0 {
				attrs, _ := json.Marshal(line.Attributes)
				o.Attributes = attrs
			}

			if err := tx.Create(&o).Error; err != nil {
				return err
			}
			orders = append(orders, o)
		}

		if roleLimit != quota.Unbounded {
			res := tx.Model(&models.CampaignOrderLimit{}).
				Where("campaign_id = ? AND role = ?", campaign.ID, role).
				Where("used_count + ? <= order_limit", size).
				Update("used_count", gorm.Expr("used_count + ?", size))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var fresh models.CampaignOrderLimit
				if err := tx.Where("campaign_id = ? AND role = ?", campaign.ID, role).
					First(&fresh).Error; err != nil {
					return err
				}
				deficit := fresh.UsedCount + size - fresh.Limit
				lateReject = quota.Result{
					Kind:    quota.RejectTooManyRequests,
					Message: quota.RoleLimitExceededMessage(deficit),
					Deficit: deficit,
				}
				return fmt.Errorf("campaign order limit exhausted concurrently")
			}
		}

		if campaign.IsQuotaEnabled {
			update := tx.Model(&models.Campaign{}).Where("id = ?", campaign.ID)
			if !campaign.IsExceedQuotaEnabled {
				update = update.Where("used_quota + ? <= quota + correction_quota", size)
			}
			res := update.Update("used_quota", gorm.Expr("used_quota + ?", size))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var fresh models.Campaign
				if err := tx.First(&fresh, campaign.ID).Error; err != nil {
					return err
				}
				deficit := size - quota.RemainingCapacity(&fresh)
				lateReject = quota.Result{
					Kind:    quota.RejectTooManyRequests,
					Message: quota.QuotaExceededMessage(deficit),
					Deficit: deficit,
				}
				return fmt.Errorf("campaign quota exhausted concurrently")
			}
		}

		return nil
	})

	if err != nil {
		if lateReject.Kind != "" {
			return nil, lateReject, nil
		}
		return nil, quota.Result{}, err
	}

	return orders, quota.Result{Admitted: true}, nil
}

// ChangeOrderStatus applies a status transition when the seeded transition
// table has a row matching (from, to, acting role).
func ChangeOrderStatus(orderID, userID uint, toStatus models.OrderStatus) (*models.Order, error) {
	var o models.Order
	if err := database.DB.First(&o, orderID).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	allowed, err := isValidTransition(database.DB, o.Status, toStatus, user.Role)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("invalid status transition from %s to %s for role %s",
			o.Status, toStatus, user.Role)
	}

	fromStatus := o.Status
	o.Status = toStatus

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&o).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: fromStatus,
			ToStatus:   toStatus,
			ChangedBy:  userID,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func isValidTransition(db *gorm.DB, from, to models.OrderStatus, role authz.Role) (bool, error) {
	if role == authz.RoleAdmin {
		// Admins may follow any seeded edge regardless of the required role.
		var count int64
		err := db.Model(&models.OrderTransition{}).
			Where("from_status = ? AND to_status = ?", from, to).
			Count(&count).Error
		return count > 0, err
	}

	var count int64
	err := db.Model(&models.OrderTransition{}).
		Where("from_status = ? AND to_status = ? AND required_role = ?", from, to, role).
		Count(&count).Error
	return count > 0, err
}

func GetOrderHistory(orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := database.DB.
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}

func ListCampaignOrders(campaignID uint, status string) ([]models.Order, error) {
	query := database.DB.Where("campaign_id = ?", campaignID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.
		Preload("Recipient").
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
