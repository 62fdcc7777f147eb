package recipient

import (
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var notesPolicy = bluemonday.StrictPolicy()

// scopedCampaign loads the campaign named by the :id route param and
// enforces tenancy for non-admins.
func scopedCampaign(c *fiber.Ctx) (*models.Campaign, error) {
	campaignID, err := c.ParamsInt("id")
	if err != nil {
		return nil, response.BadRequest(c, "Invalid campaign ID", nil)
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, campaignID).Error; err != nil {
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

func CreateRecipientHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Notes     string `json:"notes"`
		AddressID *uint  `json:"address_id,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" || body.Email == "" {
		return response.ValidationError(c, map[string]string{
			"name":  "name is required",
			"email": "email is required",
		})
	}

	if body.AddressID != nil {
		var address models.Address
		if err := database.DB.First(&address, *body.AddressID).Error; err != nil {
			return response.NotFound(c, "Address")
		}
	}

	recipient := models.Recipient{
		CampaignID: campaign.ID,
		CompanyID:  campaign.CompanyID,
		Name:       body.Name,
		Email:      body.Email,
		Notes:      notesPolicy.Sanitize(body.Notes),
		AddressID:  body.AddressID,
	}

	if err := database.DB.Create(&recipient).Error; err != nil {
		return response.InternalError(c, "Failed to create recipient")
	}

	return response.Created(c, recipient, "Recipient created successfully")
}

func ListRecipientsHandler(c *fiber.Ctx) error {
	campaign, err := scopedCampaign(c)
	if campaign == nil {
		return err
	}

	query := database.DB.Where("campaign_id = ?", campaign.ID)
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if limit > 200 {
		limit = 200
	}

	var total int64
	query.Model(&models.Recipient{}).Count(&total)

	var recipients []models.Recipient
	if err := query.
		Preload("Address").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("name").
		Find(&recipients).Error; err != nil {
		return response.InternalError(c, "Failed to fetch recipients")
	}

	return response.SuccessWithMeta(c, recipients, response.CalculateMeta(page, limit, total), "Recipients retrieved successfully")
}

func GetRecipientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("recipientId")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID", nil)
	}

	var recipient models.Recipient
	if err := database.DB.Preload("Address").First(&recipient, id).Error; err != nil {
		return response.NotFound(c, "Recipient")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != recipient.CompanyID {
			return response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	return response.Success(c, recipient, "Recipient retrieved successfully")
}

func UpdateRecipientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("recipientId")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID", nil)
	}

	var recipient models.Recipient
	if err := database.DB.First(&recipient, id).Error; err != nil {
		return response.NotFound(c, "Recipient")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != recipient.CompanyID {
			return response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Notes     *string `json:"notes,omitempty"`
		AddressID *uint  `json:"address_id,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name != "" {
		recipient.Name = body.Name
	}
	if body.Email != "" {
		recipient.Email = body.Email
	}
	if body.Notes != nil {
		recipient.Notes = notesPolicy.Sanitize(*body.Notes)
	}
	if body.AddressID != nil {
		var address models.Address
		if err := database.DB.First(&address, *body.AddressID).Error; err != nil {
			return response.NotFound(c, "Address")
		}
		recipient.AddressID = body.AddressID
	}

	if err := database.DB.Save(&recipient).Error; err != nil {
		return response.InternalError(c, "Failed to update recipient")
	}

	return response.Success(c, recipient, "Recipient updated successfully")
}

func DeleteRecipientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("recipientId")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID", nil)
	}

	var recipient models.Recipient
	if err := database.DB.First(&recipient, id).Error; err != nil {
		return response.NotFound(c, "Recipient")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != recipient.CompanyID {
			return response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	if err := database.DB.Delete(&recipient).Error; err != nil {
		return response.InternalError(c, "Failed to delete recipient")
	}

	return response.NoContent(c)
}
