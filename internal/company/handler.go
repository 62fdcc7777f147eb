package company

import (
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
)

// scopedCompanyID resolves which company the request targets. Non-admins are
// pinned to their own company regardless of the route param.
func scopedCompanyID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, response.BadRequest(c, "Invalid company ID", nil)
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != uint(id) {
			return 0, response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	return uint(id), nil
}

func CreateCompanyHandler(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "company name is required",
		})
	}

	var existing models.Company
	if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Company with this name already exists")
	}

	company := models.Company{
		Name:   body.Name,
		Status: "active",
	}

	if err := database.DB.Create(&company).Error; err != nil {
		return response.InternalError(c, "Failed to create company")
	}

	return response.Created(c, company, "Company created successfully")
}

func ListCompaniesHandler(c *fiber.Ctx) error {
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil {
			return response.Success(c, []models.Company{}, "Companies retrieved successfully")
		}
		var company models.Company
		if err := database.DB.First(&company, *companyID).Error; err != nil {
			return response.NotFound(c, "Company")
		}
		return response.Success(c, []models.Company{company}, "Companies retrieved successfully")
	}

	var companies []models.Company
	if err := database.DB.Order("name").Find(&companies).Error; err != nil {
		return response.InternalError(c, "Failed to fetch companies")
	}

	return response.Success(c, companies, "Companies retrieved successfully")
}

func GetCompanyHandler(c *fiber.Ctx) error {
	id, err := scopedCompanyID(c)
	if id == 0 {
		return err
	}

	var company models.Company
	if err := database.DB.First(&company, id).Error; err != nil {
		return response.NotFound(c, "Company")
	}

	return response.Success(c, company, "Company retrieved successfully")
}

func UpdateCompanyHandler(c *fiber.Ctx) error {
	id, err := scopedCompanyID(c)
	if id == 0 {
		return err
	}

	var body struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var company models.Company
	if err := database.DB.First(&company, id).Error; err != nil {
		return response.NotFound(c, "Company")
	}

	if body.Name != "" {
		company.Name = body.Name
	}
	if body.Status != "" {
		company.Status = body.Status
	}

	if err := database.DB.Save(&company).Error; err != nil {
		return response.InternalError(c, "Failed to update company")
	}

	return response.Success(c, company, "Company updated successfully")
}

func DeleteCompanyHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid company ID", nil)
	}

	var company models.Company
	if err := database.DB.First(&company, id).Error; err != nil {
		return response.NotFound(c, "Company")
	}

	var userCount int64
	if err := database.DB.Model(&models.User{}).Where("company_id = ?", id).Count(&userCount).Error; err != nil {
		return response.InternalError(c, "Failed to check company usage")
	}
	if userCount > 0 {
		return response.Conflict(c, "Cannot delete company with existing users")
	}

	if err := database.DB.Delete(&company).Error; err != nil {
		return response.InternalError(c, "Failed to delete company")
	}

	return response.NoContent(c)
}

// ========== COST CENTERS ==========

func CreateCostCenterHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var body struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "cost center name is required",
		})
	}

	costCenter := models.CostCenter{
		CompanyID: companyID,
		Name:      body.Name,
		Code:      body.Code,
	}
	if err := database.DB.Create(&costCenter).Error; err != nil {
		return response.InternalError(c, "Failed to create cost center")
	}

	return response.Created(c, costCenter, "Cost center created successfully")
}

func ListCostCentersHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var costCenters []models.CostCenter
	if err := database.DB.Where("company_id = ?", companyID).Order("name").Find(&costCenters).Error; err != nil {
		return response.InternalError(c, "Failed to fetch cost centers")
	}

	return response.Success(c, costCenters, "Cost centers retrieved successfully")
}

// ========== ADDRESSES ==========

func CreateAddressHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var body struct {
		Line1      string `json:"line1"`
		Line2      string `json:"line2"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Line1 == "" || body.City == "" || body.Country == "" {
		return response.ValidationError(c, map[string]string{
			"line1":   "line1 is required",
			"city":    "city is required",
			"country": "country is required",
		})
	}

	address := models.Address{
		CompanyID:  &companyID,
		Line1:      body.Line1,
		Line2:      body.Line2,
		City:       body.City,
		State:      body.State,
		PostalCode: body.PostalCode,
		Country:    body.Country,
	}
	if err := database.DB.Create(&address).Error; err != nil {
		return response.InternalError(c, "Failed to create address")
	}

	return response.Created(c, address, "Address created successfully")
}

func ListAddressesHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var addresses []models.Address
	if err := database.DB.Where("company_id = ?", companyID).Find(&addresses).Error; err != nil {
		return response.InternalError(c, "Failed to fetch addresses")
	}

	return response.Success(c, addresses, "Addresses retrieved successfully")
}

// ========== PRIVACY RULES ==========

func CreatePrivacyRuleHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var body struct {
		Name          string `json:"name"`
		AppliesTo     string `json:"applies_to"`
		RetentionDays int    `json:"retention_days"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	module, err := authz.ParseModule(body.AppliesTo)
	if err != nil {
		return response.ValidationError(c, map[string]string{"applies_to": err.Error()})
	}
	if body.RetentionDays <= 0 {
		return response.ValidationError(c, map[string]string{
			"retention_days": "retention_days must be positive",
		})
	}

	rule := models.PrivacyRule{
		CompanyID:     companyID,
		Name:          body.Name,
		AppliesTo:     module,
		RetentionDays: body.RetentionDays,
	}
	if err := database.DB.Create(&rule).Error; err != nil {
		return response.InternalError(c, "Failed to create privacy rule")
	}

	return response.Created(c, rule, "Privacy rule created successfully")
}

func ListPrivacyRulesHandler(c *fiber.Ctx) error {
	companyID, err := scopedCompanyID(c)
	if companyID == 0 {
		return err
	}

	var rules []models.PrivacyRule
	if err := database.DB.Where("company_id = ?", companyID).Find(&rules).Error; err != nil {
		return response.InternalError(c, "Failed to fetch privacy rules")
	}

	return response.Success(c, rules, "Privacy rules retrieved successfully")
}
