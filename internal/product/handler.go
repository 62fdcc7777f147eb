package product

import (
	"encoding/json"

	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/giftbridge/platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateProductHandler(c *fiber.Ctx) error {
	var body struct {
		Name      string   `json:"name"`
		SKU       string   `json:"sku"`
		Sizes     []string `json:"sizes,omitempty"`
		CompanyID *uint    `json:"company_id,omitempty"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" || body.SKU == "" {
		return response.ValidationError(c, map[string]string{
			"name": "name is required",
			"sku":  "sku is required",
		})
	}

	var existing models.Product
	if err := database.DB.Where("sku = ?", body.SKU).First(&existing).Error; err == nil {
		return response.Conflict(c, "Product with this SKU already exists")
	}

	companyID := body.CompanyID
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		// Non-admins only create products in their own catalog.
		companyID = auth.PrincipalCompanyID(c)
	}

	product := models.Product{
		Name:      body.Name,
		SKU:       body.SKU,
		CompanyID: companyID,
		IsActive:  true,
	}
	if len(body.Sizes) > 0 {
		sizes, _ := json.Marshal(body.Sizes)
		product.Sizes = sizes
	}

	if err := database.DB.Create(&product).Error; err != nil {
		return response.InternalError(c, "Failed to create product")
	}

	return response.Created(c, product, "Product created successfully")
}

func ListProductsHandler(c *fiber.Ctx) error {
	// Shared catalog items (company_id NULL) are visible to everyone;
	// tenant items only to their company.
	query := database.DB.Where("is_active = ?", true)
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID != nil {
			query = query.Where("company_id = ? OR company_id IS NULL", *companyID)
		} else {
			query = query.Where("company_id IS NULL")
		}
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return response.InternalError(c, "Failed to fetch products")
	}

	return response.Success(c, products, "Products retrieved successfully")
}

// scopedProduct loads a product and enforces tenancy for non-admins. Shared
// catalog items (nil company) are readable by everyone.
func scopedProduct(c *fiber.Ctx) (*models.Product, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, response.BadRequest(c, "Invalid product ID", nil)
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return nil, response.NotFound(c, "Product")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin && product.CompanyID != nil {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != *product.CompanyID {
			return nil, response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	return &product, nil
}

// scopedProductWrite additionally keeps shared catalog items admin-managed.
func scopedProductWrite(c *fiber.Ctx) (*models.Product, error) {
	product, err := scopedProduct(c)
	if err != nil {
		return nil, err
	}
	if auth.PrincipalRole(c) != authz.RoleAdmin && product.CompanyID == nil {
		return nil, response.Forbidden(c, authz.MsgNoPermission)
	}
	return product, nil
}

func GetProductHandler(c *fiber.Ctx) error {
	product, err := scopedProduct(c)
	if err != nil {
		return err
	}

	return response.Success(c, product, "Product retrieved successfully")
}

func UpdateProductHandler(c *fiber.Ctx) error {
	product, err := scopedProductWrite(c)
	if err != nil {
		return err
	}

	var body struct {
		Name     string   `json:"name"`
		Sizes    []string `json:"sizes,omitempty"`
		IsActive *bool    `json:"is_active,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name != "" {
		product.Name = body.Name
	}
	if len(body.Sizes) > 0 {
		sizes, _ := json.Marshal(body.Sizes)
		product.Sizes = sizes
	}
	if body.IsActive != nil {
		product.IsActive = *body.IsActive
	}

	if err := database.DB.Save(product).Error; err != nil {
		return response.InternalError(c, "Failed to update product")
	}

	return response.Success(c, product, "Product updated successfully")
}

// UploadProductImageHandler accepts a multipart "image" field and stores it
// via the configured storage backend (S3 or local).
func UploadProductImageHandler(c *fiber.Ctx) error {
	product, err := scopedProductWrite(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required", nil)
	}

	url, err := utils.UploadFile(file)
	if err != nil {
		return response.InternalError(c, "Failed to upload image")
	}

	if product.ImageURL != "" {
		_ = utils.DeleteFile(product.ImageURL)
	}

	product.ImageURL = url
	if err := database.DB.Save(product).Error; err != nil {
		return response.InternalError(c, "Failed to save product image")
	}

	return response.Success(c, product, "Product image uploaded successfully")
}

func DeleteProductHandler(c *fiber.Ctx) error {
	product, err := scopedProductWrite(c)
	if err != nil {
		return err
	}

	var orderCount int64
	if err := database.DB.Model(&models.Order{}).Where("product_id = ?", product.ID).Count(&orderCount).Error; err != nil {
		return response.InternalError(c, "Failed to check product usage")
	}
	if orderCount > 0 {
		return response.Conflict(c, "Cannot delete product with existing orders")
	}

	if err := database.DB.Delete(product).Error; err != nil {
		return response.InternalError(c, "Failed to delete product")
	}

	return response.NoContent(c)
}

// ========== BUNDLES ==========

func CreateBundleHandler(c *fiber.Ctx) error {
	var body struct {
		Name       string `json:"name"`
		CompanyID  uint   `json:"company_id"`
		CampaignID *uint  `json:"campaign_id,omitempty"`
		ProductIDs []uint `json:"product_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "bundle name is required",
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

	var products []models.Product
	if len(body.ProductIDs) > 0 {
		if err := database.DB.Find(&products, body.ProductIDs).Error; err != nil || len(products) != len(body.ProductIDs) {
			return response.NotFound(c, "Product")
		}
	}

	bundle := models.Bundle{
		Name:       body.Name,
		CompanyID:  companyID,
		CampaignID: body.CampaignID,
		Products:   products,
	}
	if err := database.DB.Create(&bundle).Error; err != nil {
		return response.InternalError(c, "Failed to create bundle")
	}

	return response.Created(c, bundle, "Bundle created successfully")
}

func ListBundlesHandler(c *fiber.Ctx) error {
	query := database.DB.Preload("Products")
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil {
			return response.Success(c, []models.Bundle{}, "Bundles retrieved successfully")
		}
		query = query.Where("company_id = ?", *companyID)
	}

	var bundles []models.Bundle
	if err := query.Order("name").Find(&bundles).Error; err != nil {
		return response.InternalError(c, "Failed to fetch bundles")
	}

	return response.Success(c, bundles, "Bundles retrieved successfully")
}

func DeleteBundleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid bundle ID", nil)
	}

	var bundle models.Bundle
	if err := database.DB.First(&bundle, id).Error; err != nil {
		return response.NotFound(c, "Bundle")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || *companyID != bundle.CompanyID {
			return response.Forbidden(c, authz.MsgNoPermission)
		}
	}

	if err := database.DB.Delete(&bundle).Error; err != nil {
		return response.InternalError(c, "Failed to delete bundle")
	}

	return response.NoContent(c)
}
