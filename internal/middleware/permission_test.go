package middleware_test

import (
	"fmt"
	"testing"

	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/middleware"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/giftbridge/platform/internal/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// protectedApp wires a bare app with one module-protected gated route per
// verb, bypassing the real route table so the middleware is tested alone.
func protectedApp(module authz.Module) *fiber.App {
	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		ctx, ok := middleware.AuthzContext(c)
		if !ok {
			return response.InternalError(c, "missing authz context")
		}
		return response.Success(c, fiber.Map{"verb": string(ctx.Verb)}, "ok")
	}
	app.Get("/gated", auth.JWTProtected(), middleware.ModuleProtected(module), handler)
	app.Post("/gated", auth.JWTProtected(), middleware.ModuleProtected(module), handler)
	return app
}

func TestModuleProtected(t *testing.T) {
	testutils.SetupTestApp(t)

	company := testutils.CreateTestCompany(t, database.DB, "Acme Corp")

	admin := testutils.CreateTestUser(t, database.DB, "admin@test.com", "password123", authz.RoleAdmin, nil)
	manager := testutils.CreateTestUser(t, database.DB, "manager@test.com", "password123",
		authz.RoleCampaignManager, &company.ID)
	employee := testutils.CreateTestUser(t, database.DB, "employee@test.com", "password123",
		authz.RoleEmployee, &company.ID)

	t.Run("Admin passes every module and verb", func(t *testing.T) {
		token := testutils.GetAuthToken(t, admin)
		for _, module := range authz.Modules() {
			app := protectedApp(module)
			resp, err := testutils.MakeRequest(app, "POST", "/gated", nil, token)
			assert.NoError(t, err)
			assert.Equal(t, 200, resp.Code, "module %s", module)
		}
	})

	t.Run("Capability roles bypass the permission store", func(t *testing.T) {
		// No permission record exists for campaigns writes by managers;
		// the role allowlist alone admits them.
		app := protectedApp(authz.ModuleCampaigns)
		token := testutils.GetAuthToken(t, manager)

		resp, err := testutils.MakeRequest(app, "POST", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Allowlist misses fall through to permission lookup", func(t *testing.T) {
		app := protectedApp(authz.ModuleCostCenters)
		token := testutils.GetAuthToken(t, manager)

		resp, err := testutils.MakeRequest(app, "GET", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, authz.MsgNoPermission, result.Error.Message)

		// An explicit grant flips the decision.
		database.DB.Create(&models.AccessPermission{
			Name:      "cost centers for managers",
			Module:    authz.ModuleCostCenters,
			Role:      authz.RoleCampaignManager,
			Level:     authz.LevelRead,
			CompanyID: &company.ID,
			IsEnabled: true,
		})

		resp, err = testutils.MakeRequest(app, "GET", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Read level does not admit writes", func(t *testing.T) {
		// Employees hold the seeded read default on campaigns.
		app := protectedApp(authz.ModuleCampaigns)
		token := testutils.GetAuthToken(t, employee)

		resp, err := testutils.MakeRequest(app, "GET", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(app, "POST", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, authz.MsgNoPermission, result.Error.Message)
	})

	t.Run("Companyless principal is admitted by default", func(t *testing.T) {
		// Principals not attached to any company predate tenancy; the
		// resolver lets them through rather than breaking their sessions.
		floating := testutils.CreateTestUser(t, database.DB, "floating@test.com", "password123",
			authz.RoleUser, nil)
		app := protectedApp(authz.ModuleOrders)
		token := testutils.GetAuthToken(t, floating)

		resp, err := testutils.MakeRequest(app, "POST", "/gated", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Missing token is rejected before authorization", func(t *testing.T) {
		app := protectedApp(authz.ModuleCampaigns)
		resp, err := testutils.MakeRequest(app, "GET", "/gated", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestOwnerProtected(t *testing.T) {
	testutils.SetupTestApp(t)

	owner := testutils.CreateTestUser(t, database.DB, "owner@test.com", "password123", authz.RoleUser, nil)
	stranger := testutils.CreateTestUser(t, database.DB, "stranger@test.com", "password123", authz.RoleUser, nil)
	admin := testutils.CreateTestUser(t, database.DB, "admin@test.com", "password123", authz.RoleAdmin, nil)

	handler := func(c *fiber.Ctx) error {
		return response.Success(c, nil, "ok")
	}

	app := fiber.New()
	app.Get("/owner/:id", auth.JWTProtected(), middleware.OwnerProtected(), handler)
	app.Get("/owner-or-admin/:id", auth.JWTProtected(), middleware.OwnerOrAdminProtected(), handler)

	t.Run("Owner passes, stranger and admin do not", func(t *testing.T) {
		url := fmt.Sprintf("/owner/%d", owner.ID)

		resp, _ := testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, owner))
		assert.Equal(t, 200, resp.Code)

		resp, _ = testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, stranger))
		assert.Equal(t, 403, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, authz.MsgOwnerOnly, result.Error.Message)

		resp, _ = testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, admin))
		assert.Equal(t, 403, resp.Code)
	})

	t.Run("Owner or admin passes, stranger does not", func(t *testing.T) {
		url := fmt.Sprintf("/owner-or-admin/%d", owner.ID)

		resp, _ := testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, owner))
		assert.Equal(t, 200, resp.Code)

		resp, _ = testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, admin))
		assert.Equal(t, 200, resp.Code)

		resp, _ = testutils.MakeRequest(app, "GET", url, nil, testutils.GetAuthToken(t, stranger))
		assert.Equal(t, 403, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, authz.MsgOwnerOrAdminOnly, result.Error.Message)
	})
}
