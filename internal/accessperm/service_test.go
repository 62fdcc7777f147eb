package accessperm_test

import (
	"testing"

	"github.com/giftbridge/platform/internal/accessperm"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestSeedDefaults(t *testing.T) {
	db := testutils.TestDB(t)

	t.Run("Success - seeds protected and read defaults", func(t *testing.T) {
		err := accessperm.SeedDefaults(db)
		assert.NoError(t, err)

		level, ok := accessperm.Lookup(db, 999, authz.ModuleCampaigns, authz.RoleCompanyAdministrator)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelReadWrite, level)

		level, ok = accessperm.Lookup(db, 999, authz.ModuleCampaigns, authz.RoleEmployee)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelRead, level)

		level, ok = accessperm.Lookup(db, 999, authz.ModuleCampaigns, authz.RoleUser)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelRead, level)
	})

	t.Run("Success - reseeding is idempotent", func(t *testing.T) {
		var before int64
		db.Model(&models.AccessPermission{}).Count(&before)

		err := accessperm.SeedDefaults(db)
		assert.NoError(t, err)

		var after int64
		db.Model(&models.AccessPermission{}).Count(&after)
		assert.Equal(t, before, after)
	})
}

func TestLookup(t *testing.T) {
	db := testutils.TestDB(t)
	assert.NoError(t, accessperm.SeedDefaults(db))

	t.Run("Tenant record shadows system default", func(t *testing.T) {
		companyID := uint(1)
		db.Create(&models.AccessPermission{
			Name:      "campaign write for employees",
			Module:    authz.ModuleCampaigns,
			Role:      authz.RoleEmployee,
			Level:     authz.LevelReadWrite,
			CompanyID: &companyID,
			IsEnabled: true,
		})

		level, ok := accessperm.Lookup(db, companyID, authz.ModuleCampaigns, authz.RoleEmployee)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelReadWrite, level)

		// Other tenants still see the default.
		level, ok = accessperm.Lookup(db, 2, authz.ModuleCampaigns, authz.RoleEmployee)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelRead, level)
	})

	t.Run("Disabled records are invisible", func(t *testing.T) {
		companyID := uint(3)
		perm := models.AccessPermission{
			Name:      "disabled grant",
			Module:    authz.ModuleOrders,
			Role:      authz.RoleEmployee,
			Level:     authz.LevelReadWrite,
			CompanyID: &companyID,
			IsEnabled: false,
		}
		db.Create(&perm)

		// The disabled flag must survive the insert as written.
		var fresh models.AccessPermission
		db.First(&fresh, perm.ID)
		assert.False(t, fresh.IsEnabled)

		_, ok := accessperm.Lookup(db, companyID, authz.ModuleOrders, authz.RoleEmployee)
		assert.False(t, ok)
	})

	t.Run("No record means no level", func(t *testing.T) {
		_, ok := accessperm.Lookup(db, 4, authz.ModuleCostCenters, authz.RoleUser)
		assert.False(t, ok)
	})
}

func TestUpsert(t *testing.T) {
	db := testutils.TestDB(t)
	assert.NoError(t, accessperm.SeedDefaults(db))

	companyID := uint(1)

	t.Run("Success - creates then updates in place", func(t *testing.T) {
		record := models.AccessPermission{
			Name:      "orders for managers",
			Module:    authz.ModuleOrders,
			Role:      authz.RoleCampaignManager,
			Level:     authz.LevelRead,
			CompanyID: &companyID,
			IsEnabled: true,
		}

		saved, created, err := accessperm.Upsert(db, record, false)
		assert.NoError(t, err)
		assert.True(t, created)

		record.Level = authz.LevelReadWrite
		again, created, err := accessperm.Upsert(db, record, false)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, saved.ID, again.ID)
		assert.Equal(t, authz.LevelReadWrite, again.Level)

		var count int64
		db.Model(&models.AccessPermission{}).
			Where("module = ? AND role = ? AND company_id = ?", authz.ModuleOrders, authz.RoleCampaignManager, companyID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Error - narrowing a protected default without override", func(t *testing.T) {
		record := models.AccessPermission{
			Name:      "narrow campaigns for company admins",
			Module:    authz.ModuleCampaigns,
			Role:      authz.RoleCompanyAdministrator,
			Level:     authz.LevelRead,
			CompanyID: &companyID,
			IsEnabled: true,
		}

		_, _, err := accessperm.Upsert(db, record, false)
		assert.ErrorIs(t, err, accessperm.ErrProtectedDefault)
	})

	t.Run("Success - override permits narrowing", func(t *testing.T) {
		record := models.AccessPermission{
			Name:      "narrow campaigns for company admins",
			Module:    authz.ModuleCampaigns,
			Role:      authz.RoleCompanyAdministrator,
			Level:     authz.LevelRead,
			CompanyID: &companyID,
			IsEnabled: true,
		}

		saved, created, err := accessperm.Upsert(db, record, true)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, authz.LevelRead, saved.Level)

		level, ok := accessperm.Lookup(db, companyID, authz.ModuleCampaigns, authz.RoleCompanyAdministrator)
		assert.True(t, ok)
		assert.Equal(t, authz.LevelRead, level)
	})

	t.Run("Error - unknown enum values", func(t *testing.T) {
		_, _, err := accessperm.Upsert(db, models.AccessPermission{
			Module: authz.Module("gadgets"),
			Role:   authz.RoleUser,
			Level:  authz.LevelRead,
		}, false)
		assert.Error(t, err)

		_, _, err = accessperm.Upsert(db, models.AccessPermission{
			Module: authz.ModuleOrders,
			Role:   authz.Role("superuser"),
			Level:  authz.LevelRead,
		}, false)
		assert.Error(t, err)
	})
}
