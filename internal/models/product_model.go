package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CompanyID *uint          `gorm:"index" json:"company_id,omitempty"` // nil = shared catalog item
	Name      string         `gorm:"size:150" json:"name"`
	SKU       string         `gorm:"size:64;uniqueIndex" json:"sku"`
	ImageURL  string         `gorm:"size:500" json:"image_url,omitempty"`
	Sizes     datatypes.JSON `json:"sizes,omitempty"` // ["S", "M", "L"]
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Bundle groups products that ship together for a campaign.
type Bundle struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CompanyID  uint           `gorm:"index" json:"company_id"`
	CampaignID *uint          `gorm:"index" json:"campaign_id,omitempty"`
	Name       string         `gorm:"size:150" json:"name"`
	Products   []Product      `gorm:"many2many:bundle_products" json:"products,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
