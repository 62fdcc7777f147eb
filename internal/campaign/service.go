package campaign

import (
	"fmt"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription strips unsafe markup from user-supplied campaign
// descriptions before they are stored.
func SanitizeDescription(raw string) string {
	return descriptionPolicy.Sanitize(raw)
}

func ListCompanyCampaigns(companyID uint, includeHidden bool) ([]models.Campaign, error) {
	query := database.DB.Where("company_id = ?", companyID)
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var campaigns []models.Campaign
	err := query.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// UpdateQuotaConfig replaces the campaign's quota settings. UsedQuota is
// never writable through this path.
func UpdateQuotaConfig(id uint, enabled, exceedEnabled bool, quotaValue, correctionQuota int) (*models.Campaign, error) {
	if quotaValue < 0 || correctionQuota < 0 {
		return nil, fmt.Errorf("quota values cannot be negative")
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, id).Error; err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	campaign.IsQuotaEnabled = enabled
	campaign.IsExceedQuotaEnabled = exceedEnabled
	campaign.Quota = quotaValue
	campaign.CorrectionQuota = correctionQuota

	if err := database.DB.Save(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// SetOrderLimit upserts the per-role submission ceiling for a campaign.
func SetOrderLimit(campaignID uint, role authz.Role, limit int) (*models.CampaignOrderLimit, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative")
	}

	var existing models.CampaignOrderLimit
	err := database.DB.Where("campaign_id = ? AND role = ?", campaignID, role).First(&existing).Error
	if err == nil {
		existing.Limit = limit
		if err := database.DB.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	record := models.CampaignOrderLimit{
		CampaignID: campaignID,
		Role:       role,
		Limit:      limit,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func RemoveOrderLimit(campaignID uint, role authz.Role) error {
	return database.DB.
		Where("campaign_id = ? AND role = ?", campaignID, role).
		Delete(&models.CampaignOrderLimit{}).Error
}
