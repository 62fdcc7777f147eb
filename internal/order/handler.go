package order

import (
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/quota"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
)

// campaignForPrincipal loads the campaign and enforces tenancy: non-admins
// may only touch campaigns belonging to their own company.
func campaignForPrincipal(c *fiber.Ctx, campaignID int) (*models.Campaign, error) {
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

func rejectResponse(c *fiber.Ctx, result quota.Result) error {
	switch result.Kind {
	case quota.RejectPayloadTooLarge:
		return response.PayloadTooLarge(c, result.Message)
	case quota.RejectTooManyRequests:
		return response.TooManyRequests(c, result.Message)
	default:
		return response.Forbidden(c, result.Message)
	}
}

func BulkSubmitHandler(c *fiber.Ctx) error {
	campaignID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID", nil)
	}

	var body struct {
		Lines []SubmissionLine `json:"lines"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if len(body.Lines) == 0 {
		return response.ValidationError(c, map[string]string{
			"lines": "at least one order line is required",
		})
	}

	campaign, err := campaignForPrincipal(c, campaignID)
	if campaign == nil {
		return err
	}

	orders, result, err := SubmitBulk(campaign.ID, auth.PrincipalID(c), auth.PrincipalRole(c), body.Lines)
	if err != nil {
		if err.Error() == "campaign not found" {
			return response.NotFound(c, "Campaign")
		}
		return response.InternalError(c, "Failed to submit orders")
	}
	if !result.Admitted {
		return rejectResponse(c, result)
	}

	return response.Created(c, fiber.Map{
		"orders":    orders,
		"submitted": len(orders),
	}, "Orders submitted successfully")
}

func ListCampaignOrdersHandler(c *fiber.Ctx) error {
	campaignID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID", nil)
	}

	campaign, err := campaignForPrincipal(c, campaignID)
	if campaign == nil {
		return err
	}

	orders, err := ListCampaignOrders(campaign.ID, c.Query("status"))
	if err != nil {
		return response.InternalError(c, "Failed to fetch orders")
	}

	return response.Success(c, orders, "Orders retrieved successfully")
}

func GetOrderHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID", nil)
	}

	var o models.Order
	if err := database.DB.Preload("Recipient").Preload("Product").First(&o, id).Error; err != nil {
		return response.NotFound(c, "Order")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != o.CompanyID {
			return response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	return response.Success(c, o, "Order retrieved successfully")
}

func ChangeOrderStatusHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID", nil)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Status == "" {
		return response.ValidationError(c, map[string]string{
			"status": "status is required",
		})
	}

	o, err := ChangeOrderStatus(uint(id), auth.PrincipalID(c), models.OrderStatus(body.Status))
	if err != nil {
		if err.Error() == "order not found" {
			return response.NotFound(c, "Order")
		}
		return response.Forbidden(c, err.Error())
	}

	return response.Success(c, o, "Order status updated successfully")
}

func GetOrderHistoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID", nil)
	}

	var o models.Order
	if err := database.DB.First(&o, id).Error; err != nil {
		return response.NotFound(c, "Order")
	}

	history, err := GetOrderHistory(o.ID)
	if err != nil {
		return response.InternalError(c, "Failed to fetch order history")
	}

	return response.Success(c, history, "Order history retrieved successfully")
}
