package server

import (
	"time"

	"github.com/giftbridge/platform/internal/accessperm"
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/campaign"
	"github.com/giftbridge/platform/internal/company"
	"github.com/giftbridge/platform/internal/middleware"
	"github.com/giftbridge/platform/internal/order"
	"github.com/giftbridge/platform/internal/product"
	"github.com/giftbridge/platform/internal/recipient"
	"github.com/giftbridge/platform/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "GiftBridge API is running",
		})
	})

	// ==========================================
	// AUTH ROUTES (No authentication required)
	// ==========================================
	authGroup := app.Group("/auth")
	app.Use("/auth", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
	}))
	authGroup.Post("/register", auth.RegisterHandler)
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), auth.LoginHandler)
	authGroup.Get("/google/login", auth.GoogleLogin)
	authGroup.Get("/google/callback", auth.GoogleCallback)
	authGroup.Post("/forgot-password", auth.ForgotPasswordHandler)
	authGroup.Post("/reset-password", auth.ResetPasswordHandler)
	authGroup.Post("/refresh", limiter.New(limiter.Config{
		Max:        3,
		Expiration: 5 * time.Minute,
	}), auth.RefreshHandler)
	authGroup.Post("/logout", auth.JWTProtected(), auth.LogoutHandler)

	// ==========================================
	// USER MANAGEMENT
	// ==========================================
	userGroup := app.Group("/users")
	userGroup.Use(auth.JWTProtected())
	// Password changes are owner-gated only; registered before the module
	// gate so users without a users-module grant can still rotate their own.
	userGroup.Put("/:id/password", middleware.OwnerProtected(), user.ChangePasswordHandler)
	userGroup.Use(middleware.ModuleProtected(authz.ModuleUsers))
	userGroup.Post("/", user.CreateUserHandler)
	userGroup.Get("/", user.ListUsersHandler)
	userGroup.Get("/:id", user.GetUserHandler)
	userGroup.Put("/:id", user.UpdateUserHandler)
	userGroup.Delete("/:id", auth.RoleProtected(authz.RoleAdmin), user.DeleteUserHandler)

	// ==========================================
	// COMPANIES (with cost centers, addresses, privacy rules)
	// ==========================================
	companyGroup := app.Group("/companies")
	companyGroup.Use(auth.JWTProtected())
	companyGroup.Post("/", auth.RoleProtected(authz.RoleAdmin), company.CreateCompanyHandler)
	companyGroup.Get("/", middleware.ModuleProtected(authz.ModuleCompanies), company.ListCompaniesHandler)
	companyGroup.Get("/:id", middleware.ModuleProtected(authz.ModuleCompanies), company.GetCompanyHandler)
	companyGroup.Put("/:id", middleware.ModuleProtected(authz.ModuleCompanies), company.UpdateCompanyHandler)
	companyGroup.Delete("/:id", auth.RoleProtected(authz.RoleAdmin), company.DeleteCompanyHandler)

	companyGroup.Post("/:id/cost-centers",
		middleware.ModuleProtected(authz.ModuleCostCenters),
		company.CreateCostCenterHandler)
	companyGroup.Get("/:id/cost-centers",
		middleware.ModuleProtected(authz.ModuleCostCenters),
		company.ListCostCentersHandler)

	companyGroup.Post("/:id/addresses",
		middleware.ModuleProtected(authz.ModuleAddresses),
		company.CreateAddressHandler)
	companyGroup.Get("/:id/addresses",
		middleware.ModuleProtected(authz.ModuleAddresses),
		company.ListAddressesHandler)

	companyGroup.Post("/:id/privacy-rules",
		middleware.ModuleProtected(authz.ModulePrivacyRules),
		company.CreatePrivacyRuleHandler)
	companyGroup.Get("/:id/privacy-rules",
		middleware.ModuleProtected(authz.ModulePrivacyRules),
		company.ListPrivacyRulesHandler)

	// ==========================================
	// CAMPAIGNS (quota config, order limits, recipients, bulk orders)
	// ==========================================
	campaignGroup := app.Group("/campaigns")
	campaignGroup.Use(auth.JWTProtected())
	campaignGroup.Use(middleware.ModuleProtected(authz.ModuleCampaigns))
	campaignGroup.Post("/", campaign.CreateCampaignHandler)
	campaignGroup.Get("/", campaign.ListCampaignsHandler)
	campaignGroup.Get("/:id", campaign.GetCampaignHandler)
	campaignGroup.Put("/:id", campaign.UpdateCampaignHandler)
	campaignGroup.Delete("/:id", campaign.DeleteCampaignHandler)
	campaignGroup.Put("/:id/quota", campaign.UpdateQuotaConfigHandler)
	campaignGroup.Put("/:id/order-limits", campaign.SetOrderLimitHandler)
	campaignGroup.Delete("/:id/order-limits/:role", campaign.RemoveOrderLimitHandler)

	campaignGroup.Post("/:id/recipients",
		middleware.ModuleProtected(authz.ModuleRecipients),
		recipient.CreateRecipientHandler)
	campaignGroup.Get("/:id/recipients",
		middleware.ModuleProtected(authz.ModuleRecipients),
		recipient.ListRecipientsHandler)
	campaignGroup.Get("/:id/recipients/:recipientId",
		middleware.ModuleProtected(authz.ModuleRecipients),
		recipient.GetRecipientHandler)
	campaignGroup.Put("/:id/recipients/:recipientId",
		middleware.ModuleProtected(authz.ModuleRecipients),
		recipient.UpdateRecipientHandler)
	campaignGroup.Delete("/:id/recipients/:recipientId",
		middleware.ModuleProtected(authz.ModuleRecipients),
		recipient.DeleteRecipientHandler)

	campaignGroup.Post("/:id/orders/bulk",
		middleware.ModuleProtected(authz.ModuleOrders),
		order.BulkSubmitHandler)
	campaignGroup.Get("/:id/orders",
		middleware.ModuleProtected(authz.ModuleOrders),
		order.ListCampaignOrdersHandler)

	// ==========================================
	// ORDERS (single-order operations)
	// ==========================================
	orderGroup := app.Group("/orders")
	orderGroup.Use(auth.JWTProtected())
	orderGroup.Use(middleware.ModuleProtected(authz.ModuleOrders))
	orderGroup.Get("/:id", order.GetOrderHandler)
	orderGroup.Put("/:id/status", order.ChangeOrderStatusHandler)
	orderGroup.Get("/:id/history", order.GetOrderHistoryHandler)

	// ==========================================
	// PRODUCTS & BUNDLES
	// ==========================================
	productGroup := app.Group("/products")
	productGroup.Use(auth.JWTProtected())
	productGroup.Use(middleware.ModuleProtected(authz.ModuleProducts))
	productGroup.Post("/", product.CreateProductHandler)
	productGroup.Get("/", product.ListProductsHandler)
	productGroup.Get("/:id", product.GetProductHandler)
	productGroup.Put("/:id", product.UpdateProductHandler)
	productGroup.Post("/:id/image", product.UploadProductImageHandler)
	productGroup.Delete("/:id", product.DeleteProductHandler)

	bundleGroup := app.Group("/bundles")
	bundleGroup.Use(auth.JWTProtected())
	bundleGroup.Use(middleware.ModuleProtected(authz.ModuleBundles))
	bundleGroup.Post("/", product.CreateBundleHandler)
	bundleGroup.Get("/", product.ListBundlesHandler)
	bundleGroup.Delete("/:id", product.DeleteBundleHandler)

	// ==========================================
	// ACCESS PERMISSIONS
	// ==========================================
	permGroup := app.Group("/access-permissions")
	permGroup.Use(auth.JWTProtected())
	permGroup.Use(middleware.ModuleProtected(authz.ModuleAccessPermissions))
	permGroup.Get("/", accessperm.ListPermissionsHandler)
	permGroup.Post("/", accessperm.CreatePermissionHandler)
	permGroup.Put("/:id", accessperm.UpdatePermissionHandler)
	permGroup.Delete("/:id", accessperm.DeletePermissionHandler)
}
