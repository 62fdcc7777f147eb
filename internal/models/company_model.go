package models

import (
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"gorm.io/gorm"
)

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;uniqueIndex" json:"name"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CostCenter struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CompanyID uint           `gorm:"index" json:"company_id"`
	Name      string         `gorm:"size:100" json:"name"`
	Code      string         `gorm:"size:50" json:"code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CompanyID  *uint          `gorm:"index" json:"company_id,omitempty"`
	Line1      string         `gorm:"size:255" json:"line1"`
	Line2      string         `gorm:"size:255" json:"line2,omitempty"`
	City       string         `gorm:"size:100" json:"city"`
	State      string         `gorm:"size:100" json:"state,omitempty"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	Country    string         `gorm:"size:2" json:"country"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// PrivacyRule limits how long recipient data for a module is retained for
// one company.
type PrivacyRule struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompanyID     uint           `gorm:"index" json:"company_id"`
	Name          string         `gorm:"size:100" json:"name"`
	AppliesTo     authz.Module   `gorm:"size:50" json:"applies_to"`
	RetentionDays int            `json:"retention_days"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
