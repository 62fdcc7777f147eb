package models

import (
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"gorm.io/gorm"
)

// AccessPermission grants a permission level to a role for a module. A nil
// CompanyID marks a system-wide default; tenant records shadow defaults for
// the same (module, role) pair.
type AccessPermission struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150" json:"name"`
	Module    authz.Module   `gorm:"size:50;index:idx_company_module_role" json:"module"`
	Role      authz.Role     `gorm:"size:50;index:idx_company_module_role" json:"role"`
	Level     authz.Level    `gorm:"size:20" json:"level"`
	CompanyID *uint          `gorm:"index:idx_company_module_role" json:"company_id,omitempty"`
	// No gorm default tag: GORM omits a zero value carrying a default on
	// insert, which would store a disabled record as enabled.
	IsEnabled bool           `json:"is_enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsDefault reports whether the record is a system-wide default rather than
// a tenant-scoped grant.
func (p *AccessPermission) IsDefault() bool {
	return p.CompanyID == nil
}
