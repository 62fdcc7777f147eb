package accessperm

import (
	"errors"
	"fmt"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"gorm.io/gorm"
)

// ErrProtectedDefault is returned when a write would narrow one of the
// seeded read-write defaults without the override flag.
var ErrProtectedDefault = errors.New("permission is protected by a system default; pass override to replace it")

// protectedPairs are the role→module grants seeded as system-wide ReadWrite
// defaults. A write for one of these pairs may only grant less than
// ReadWrite when override is set.
var protectedPairs = map[authz.Role][]authz.Module{
	authz.RoleCompanyAdministrator: {
		authz.ModuleAccessPermissions,
		authz.ModuleCompanies,
		authz.ModuleCampaigns,
		authz.ModuleRecipients,
		authz.ModuleBundles,
		authz.ModuleCostCenters,
		authz.ModuleProducts,
	},
	authz.RoleCampaignManager: {
		authz.ModuleCampaigns,
		authz.ModuleRecipients,
		authz.ModuleBundles,
	},
}

func isProtectedPair(role authz.Role, module authz.Module) bool {
	for _, m := range protectedPairs[role] {
		if m == module {
			return true
		}
	}
	return false
}

// Lookup returns the enabled permission level for the tuple. A tenant-scoped
// record shadows a system default for the same (module, role).
func Lookup(db *gorm.DB, companyID uint, module authz.Module, role authz.Role) (authz.Level, bool) {
	var perm models.AccessPermission
	err := db.
		Where("module = ? AND role = ? AND is_enabled = ?", module, role, true).
		Where("company_id = ? OR company_id IS NULL", companyID).
		Order("company_id IS NULL"). // tenant rows sort before defaults
		First(&perm).Error
	if err != nil {
		return "", false
	}
	return perm.Level, true
}

// Lookuper returns Lookup bound to the global DB in the shape the resolver
// consumes.
func Lookuper() authz.PermissionLookup {
	return func(companyID uint, module authz.Module, role authz.Role) (authz.Level, bool) {
		return Lookup(database.DB, companyID, module, role)
	}
}

// Upsert creates or updates the record matching (companyID, module, role).
// It is idempotent: writing the "same" permission twice updates in place and
// reports created=false. Narrowing a protected default pair below ReadWrite
// fails with ErrProtectedDefault unless override is set.
func Upsert(db *gorm.DB, record models.AccessPermission, override bool) (*models.AccessPermission, bool, error) {
	if !record.Module.Valid() {
		return nil, false, fmt.Errorf("unknown module %q", record.Module)
	}
	if !record.Role.Valid() {
		return nil, false, fmt.Errorf("unknown role %q", record.Role)
	}
	if !record.Level.Valid() {
		return nil, false, fmt.Errorf("unknown permission level %q", record.Level)
	}

	if isProtectedPair(record.Role, record.Module) && record.Level != authz.LevelReadWrite && !override {
		return nil, false, ErrProtectedDefault
	}

	query := db.Where("module = ? AND role = ?", record.Module, record.Role)
	if record.CompanyID == nil {
		query = query.Where("company_id IS NULL")
	} else {
		query = query.Where("company_id = ?", *record.CompanyID)
	}

	var existing models.AccessPermission
	if err := query.First(&existing).Error; err == nil {
		existing.Name = record.Name
		existing.Level = record.Level
		existing.IsEnabled = record.IsEnabled
		if err := db.Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

// ListForCompany returns the company's tenant-scoped records plus the system
// defaults they shadow.
func ListForCompany(db *gorm.DB, companyID uint) ([]models.AccessPermission, error) {
	var perms []models.AccessPermission
	err := db.
		Where("company_id = ? OR company_id IS NULL", companyID).
		Order("company_id IS NULL").
		Order("module").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}
