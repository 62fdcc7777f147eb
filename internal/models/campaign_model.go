package models

import (
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"gorm.io/gorm"
)

type Campaign struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyID   uint   `gorm:"index" json:"company_id"`
	Name        string `gorm:"size:150" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// No gorm default tags on the flags: a default makes GORM omit the
	// zero value on insert, so a campaign created inactive would be
	// persisted active. Creators set the flags explicitly.
	IsActive            bool `json:"is_active"`
	IsHidden            bool `json:"is_hidden"`
	IsBulkCreateEnabled bool `json:"is_bulk_create_enabled"`

	// Quota + CorrectionQuota is the campaign's order-line capacity.
	// UsedQuota only ever grows, and only after a submission is durably
	// recorded.
	IsQuotaEnabled       bool `json:"is_quota_enabled"`
	IsExceedQuotaEnabled bool `json:"is_exceed_quota_enabled"`
	Quota                int  `json:"quota"`
	CorrectionQuota      int  `json:"correction_quota"`
	UsedQuota            int  `json:"used_quota"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CampaignOrderLimit caps the cumulative bulk-submission volume one role may
// place against a campaign. No row means unlimited for that role. UsedCount
// is the role's consumed volume; like UsedQuota it only grows, and only via
// the guarded increment inside the submission transaction.
type CampaignOrderLimit struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CampaignID uint           `gorm:"index:idx_campaign_role,unique" json:"campaign_id"`
	Role       authz.Role     `gorm:"size:50;index:idx_campaign_role,unique" json:"role"`
	Limit      int            `gorm:"column:order_limit" json:"limit"`
	UsedCount  int            `json:"used_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type Recipient struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CampaignID uint           `gorm:"index" json:"campaign_id"`
	CompanyID  uint           `gorm:"index" json:"company_id"`
	Name       string         `gorm:"size:150" json:"name"`
	Email      string         `gorm:"size:150;index" json:"email"`
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`
	AddressID  *uint          `json:"address_id,omitempty"`
	Address    *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
