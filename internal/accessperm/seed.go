package accessperm

import (
	"fmt"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/models"
	"gorm.io/gorm"
)

// readDefaults are the system-wide Read grants seeded alongside the
// protected ReadWrite pairs. These are plain defaults, not protected.
var readDefaults = map[authz.Role][]authz.Module{
	authz.RoleEmployee: {
		authz.ModuleCampaigns,
		authz.ModuleProducts,
		authz.ModuleAddresses,
	},
	authz.RoleUser: {
		authz.ModuleCampaigns,
	},
}

// SeedDefaults writes the system-wide default permission records
// (company_id NULL). Safe to run on every boot: existing records are left
// untouched.
func SeedDefaults(db *gorm.DB) error {
	seed := func(role authz.Role, module authz.Module, level authz.Level) error {
		var existing models.AccessPermission
		err := db.
			Where("module = ? AND role = ? AND company_id IS NULL", module, role).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		record := models.AccessPermission{
			Name:      fmt.Sprintf("%s %s default", role, module),
			Module:    module,
			Role:      role,
			Level:     level,
			IsEnabled: true,
		}
		return db.Create(&record).Error
	}

	for role, modules := range protectedPairs {
		for _, module := range modules {
			if err := seed(role, module, authz.LevelReadWrite); err != nil {
				return err
			}
		}
	}

	for role, modules := range readDefaults {
		for _, module := range modules {
			if err := seed(role, module, authz.LevelRead); err != nil {
				return err
			}
		}
	}

	return nil
}
