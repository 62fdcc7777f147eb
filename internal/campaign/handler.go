package campaign

import (
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
)

// scopedCampaign loads a campaign and enforces tenancy for non-admins.
func scopedCampaign(c *fiber.Ctx) (*models.Campaign, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, response.BadRequest(c, "Invalid campaign ID", nil)
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, id).Error; err != nil {
		return nil, response.NotFound(c, "Campaign")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != campaign.CompanyID {
			return nil, response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	return &campaign, nil
}

func CreateCampaignHandler(c *fiber.Ctx) error {
	var body struct {
		CompanyID           uint   `json:"company_id"`
		Name                string `json:"name"`
		Description         string `json:"description"`
		IsBulkCreateEnabled bool   `json:"is_bulk_create_enabled"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "campaign name is required",
		})
	}

	companyID := body.CompanyID
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		principalCompany := auth.PrincipalCompanyID(c)
		if principalCompany == nil {
			return response.ValidationError(c, map[string]string{
				"company_id": "principal has no company",
			})
		}
		companyID = *principalCompany
	}

	var company models.Company
	if err := database.DB.First(&company, companyID).Error; err != nil {
		return response.NotFound(c, "Company")
	}

	campaign := models.Campaign{
		CompanyID:           companyID,
		Name:                body.Name,
		Description:         SanitizeDescription(body.Description),
		IsActive:            true,
		IsBulkCreateEnabled: body.IsBulkCreateEnabled,
	}

	if err := database.DB.Create(&campaign).Error; err != nil {
		return response.InternalError(c, "Failed to create campaign")
	}

	return response.Created(c, campaign, "Campaign created successfully")
}

func ListCampaignsHandler(c *fiber.Ctx) error {
	role := auth.PrincipalRole(c)

	if role == authz.RoleAdmin {
		var campaigns []models.Campaign
		if err := database.DB.Order("created_at DESC").Find(&campaigns).Error; err != nil {
			return response.InternalError(c, "Failed to fetch campaigns")
		}
		return response.Success(c, campaigns, "Campaigns retrieved successfully")
	}

	companyID := auth.PrincipalCompanyID(c)
	if companyID == nil {
		return response.Success(c, []models.Campaign{}, "Campaigns retrieved successfully")
	}

	// Hidden campaigns are only listed for roles that manage them.
	includeHidden := role == authz.RoleCompanyAdministrator || role == authz.RoleCampaignManager
	campaigns, err := ListCompanyCampaigns(*companyID, includeHidden)
	if err != nil {
		return response.InternalError(c, "Failed to fetch campaigns")
	}

	return response.Success(c, campaigns, "Campaigns retrieved successfully")
}

func GetCampaignHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}
	return response.Success(c, campaign, "Campaign retrieved successfully")
}

func UpdateCampaignHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	var body struct {
		Name                *string `json:"name,omitempty"`
		Description         *string `json:"description,omitempty"`
		IsActive            *bool   `json:"is_active,omitempty"`
		IsHidden            *bool   `json:"is_hidden,omitempty"`
		IsBulkCreateEnabled *bool   `json:"is_bulk_create_enabled,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name != nil {
		campaign.Name = *body.Name
	}
	if body.Description != nil {
		campaign.Description = SanitizeDescription(*body.Description)
	}
	if body.IsActive != nil {
		campaign.IsActive = *body.IsActive
	}
	if body.IsHidden != nil {
		campaign.IsHidden = *body.IsHidden
	}
	if body.IsBulkCreateEnabled != nil {
		campaign.IsBulkCreateEnabled = *body.IsBulkCreateEnabled
	}

	if err := database.DB.Save(campaign).Error; err != nil {
		return response.InternalError(c, "Failed to update campaign")
	}

	return response.Success(c, campaign, "Campaign updated successfully")
}

func DeleteCampaignHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	var orderCount int64
	if err := database.DB.Model(&models.Order{}).Where("campaign_id = ?", campaign.ID).Count(&orderCount).Error; err != nil {
		return response.InternalError(c, "Failed to check campaign usage")
	}
	if orderCount > 0 {
		return response.Conflict(c, "Cannot delete campaign with existing orders")
	}

	if err := database.DB.Delete(campaign).Error; err != nil {
		return response.InternalError(c, "Failed to delete campaign")
	}

	return response.NoContent(c)
}

func UpdateQuotaConfigHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	var body struct {
		IsQuotaEnabled       bool `json:"is_quota_enabled"`
		IsExceedQuotaEnabled bool `json:"is_exceed_quota_enabled"`
		Quota                int  `json:"quota"`
		CorrectionQuota      int  `json:"correction_quota"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	updated, err := UpdateQuotaConfig(campaign.ID, body.IsQuotaEnabled, body.IsExceedQuotaEnabled, body.Quota, body.CorrectionQuota)
	if err != nil {
		return response.ValidationError(c, map[string]string{"quota": err.Error()})
	}

	return response.Success(c, updated, "Quota configuration updated successfully")
}

func SetOrderLimitHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	var body struct {
		Role  string `json:"role"`
		Limit int    `json:"limit"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	role, err := authz.ParseRole(body.Role)
	if err != nil {
		return response.ValidationError(c, map[string]string{"role": err.Error()})
	}

	limit, err := SetOrderLimit(campaign.ID, role, body.Limit)
	if err != nil {
		return response.ValidationError(c, map[string]string{"limit": err.Error()})
	}

	return response.Success(c, limit, "Order limit saved successfully")
}

func RemoveOrderLimitHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	role, err := authz.ParseRole(c.Params("role"))
	if err != nil {
		return response.ValidationError(c, map[string]string{"role": err.Error()})
	}

	if err := RemoveOrderLimit(campaign.ID, role); err != nil {
		return response.InternalError(c, "Failed to remove order limit")
	}

	return response.NoContent(c)
}
