package order

import (
	"testing"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/quota"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupSubmissionDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Company{},
		&models.Campaign{},
		&models.CampaignOrderLimit{},
		&models.Product{},
		&models.Recipient{},
		&models.Order{},
		&models.OrderTransition{},
		&models.OrderStatusHistory{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	database.DB = db
}

func testProduct(t *testing.T) *models.Product {
	product := &models.Product{Name: "Mug", SKU: "MUG-001", IsActive: true}
	assert.NoError(t, database.DB.Create(product).Error)
	return product
}

func TestPersistSubmissionLateQuotaRejection(t *testing.T) {
	setupSubmissionDB(t)
	product := testProduct(t)

	campaign := models.Campaign{
		CompanyID:           1,
		Name:                "Holiday Gifts",
		IsActive:            true,
		IsBulkCreateEnabled: true,
		IsQuotaEnabled:      true,
		Quota:               2,
	}
	assert.NoError(t, database.DB.Create(&campaign).Error)

	// The admission check ran against this snapshot; a concurrent
	// submission then consumed the whole capacity before our commit.
	snapshot := campaign
	database.DB.Model(&models.Campaign{}).
		Where("id = ?", campaign.ID).
		Update("used_quota", 2)

	lines := []SubmissionLine{{ProductID: product.ID}, {ProductID: product.ID}}
	orders, result, err := persistSubmission(&snapshot, 1, authz.RoleAdmin, quota.Unbounded, lines)
	assert.NoError(t, err)
	assert.Nil(t, orders)
	assert.False(t, result.Admitted)
	assert.Equal(t, quota.RejectTooManyRequests, result.Kind)
	assert.Equal(t, 2, result.Deficit)
	assert.Equal(t, "Campaign quota has been exceeded by 2", result.Message)

	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "losing submission must be rolled back")

	var fresh models.Campaign
	database.DB.First(&fresh, campaign.ID)
	assert.Equal(t, 2, fresh.UsedQuota, "capacity is never overshot")
}

func TestPersistSubmissionLateRoleLimitRejection(t *testing.T) {
	setupSubmissionDB(t)
	product := testProduct(t)

	campaign := models.Campaign{
		CompanyID:           1,
		Name:                "Holiday Gifts",
		IsActive:            true,
		IsBulkCreateEnabled: true,
	}
	assert.NoError(t, database.DB.Create(&campaign).Error)

	limit := models.CampaignOrderLimit{
		CampaignID: campaign.ID,
		Role:       authz.RoleCompanyAdministrator,
		Limit:      2,
	}
	assert.NoError(t, database.DB.Create(&limit).Error)

	// A same-role submission lands between the check and our commit.
	database.DB.Model(&models.CampaignOrderLimit{}).
		Where("id = ?", limit.ID).
		Update("used_count", 2)

	lines := []SubmissionLine{{ProductID: product.ID}}
	orders, result, err := persistSubmission(&campaign, 1, authz.RoleCompanyAdministrator, limit.Limit, lines)
	assert.NoError(t, err)
	assert.Nil(t, orders)
	assert.False(t, result.Admitted)
	assert.Equal(t, quota.RejectTooManyRequests, result.Kind)
	assert.Equal(t, 1, result.Deficit)
	assert.Equal(t, "Campaign order limit has been exceeded by 1", result.Message)

	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "losing submission must be rolled back")

	var freshLimit models.CampaignOrderLimit
	database.DB.First(&freshLimit, limit.ID)
	assert.Equal(t, 2, freshLimit.UsedCount, "role counter is never overshot")
}

func TestPersistSubmissionIncrementsBothCounters(t *testing.T) {
	setupSubmissionDB(t)
	product := testProduct(t)

	campaign := models.Campaign{
		CompanyID:           1,
		Name:                "Holiday Gifts",
		IsActive:            true,
		IsBulkCreateEnabled: true,
		IsQuotaEnabled:      true,
		Quota:               10,
	}
	assert.NoError(t, database.DB.Create(&campaign).Error)

	limit := models.CampaignOrderLimit{
		CampaignID: campaign.ID,
		Role:       authz.RoleCampaignManager,
		Limit:      5,
	}
	assert.NoError(t, database.DB.Create(&limit).Error)

	lines := []SubmissionLine{
		{ProductID: product.ID},
		{ProductID: product.ID},
		{ProductID: product.ID},
	}
	orders, result, err := persistSubmission(&campaign, 1, authz.RoleCampaignManager, limit.Limit, lines)
	assert.NoError(t, err)
	assert.True(t, result.Admitted)
	assert.Len(t, orders, 3)

	var fresh models.Campaign
	database.DB.First(&fresh, campaign.ID)
	assert.Equal(t, 3, fresh.UsedQuota)

	var freshLimit models.CampaignOrderLimit
	database.DB.First(&freshLimit, limit.ID)
	assert.Equal(t, 3, freshLimit.UsedCount)
}
