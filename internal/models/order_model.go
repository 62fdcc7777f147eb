package models

import (
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func EnsureEnum(db *gorm.DB) error {
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status') THEN
				CREATE TYPE order_status AS ENUM (
					'pending',
					'submitted',
					'shipped',
					'delivered',
					'cancelled'
				);
			END IF;
		END
		$$;
	`).Error
}

// Order is one order line produced by a bulk submission. PublicID is the
// flake id handed to the fulfillment partner; it is the only identifier
// exposed outside the platform.
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PublicID      string         `gorm:"size:24;uniqueIndex" json:"public_id"`
	CampaignID    uint           `gorm:"index" json:"campaign_id"`
	CompanyID     uint           `gorm:"index" json:"company_id"`
	SubmittedBy   uint           `gorm:"index" json:"submitted_by"`
	SubmitterRole authz.Role     `gorm:"size:50;index" json:"submitter_role"`
	RecipientID   *uint          `json:"recipient_id,omitempty"`
	Recipient     *Recipient     `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	ProductID     uint           `json:"product_id"`
	Product       *Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int            `json:"quantity"`
	Attributes    datatypes.JSON `json:"attributes,omitempty"` // size, color, engraving...
	Status        OrderStatus    `gorm:"type:order_status;default:'pending';index" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderTransition is a row in the seeded status-transition table. A
// transition is legal only when a row matches (from, to) and the acting
// principal holds the required role.
type OrderTransition struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FromStatus   OrderStatus    `gorm:"type:order_status" json:"from_status"`
	ToStatus     OrderStatus    `gorm:"type:order_status" json:"to_status"`
	RequiredRole authz.Role     `gorm:"size:50" json:"required_role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderID    uint        `gorm:"index" json:"order_id"`
	FromStatus OrderStatus `gorm:"type:order_status" json:"from_status"`
	ToStatus   OrderStatus `gorm:"type:order_status" json:"to_status"`
	ChangedBy  uint        `json:"changed_by"`
	CreatedAt  time.Time   `json:"created_at"`
}
