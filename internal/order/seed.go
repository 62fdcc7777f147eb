package order

import (
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/models"
	"gorm.io/gorm"
)

// SeedOrderTransitions writes the status-transition table. Admin is allowed
// on every seeded edge and needs no rows of its own.
func SeedOrderTransitions(db *gorm.DB) error {
	transitions := []models.OrderTransition{
		// From pending
		{FromStatus: models.OrderStatusPending, ToStatus: models.OrderStatusSubmitted, RequiredRole: authz.RoleCompanyAdministrator},
		{FromStatus: models.OrderStatusPending, ToStatus: models.OrderStatusSubmitted, RequiredRole: authz.RoleCampaignManager},
		{FromStatus: models.OrderStatusPending, ToStatus: models.OrderStatusCancelled, RequiredRole: authz.RoleCompanyAdministrator},
		{FromStatus: models.OrderStatusPending, ToStatus: models.OrderStatusCancelled, RequiredRole: authz.RoleCampaignManager},

		// From submitted: fulfillment-side updates only
		{FromStatus: models.OrderStatusSubmitted, ToStatus: models.OrderStatusShipped, RequiredRole: authz.RoleAdmin},
		{FromStatus: models.OrderStatusSubmitted, ToStatus: models.OrderStatusCancelled, RequiredRole: authz.RoleAdmin},

		// From shipped
		{FromStatus: models.OrderStatusShipped, ToStatus: models.OrderStatusDelivered, RequiredRole: authz.RoleAdmin},
	}

	for _, transition := range transitions {
		var existing models.OrderTransition
		result := db.Where("from_status = ? AND to_status = ? AND required_role = ?",
			transition.FromStatus, transition.ToStatus, transition.RequiredRole).
			First(&existing)

		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&transition).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
