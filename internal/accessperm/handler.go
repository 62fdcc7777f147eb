package accessperm

import (
	"errors"

	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
)

// resolveCompanyID picks the company a permission request acts on. Admins
// may target any company (or none, for system defaults); everyone else is
// pinned to their own.
func resolveCompanyID(c *fiber.Ctx, requested *uint) *uint {
	role := auth.PrincipalRole(c)
	if role == authz.RoleAdmin {
		return requested
	}
	return auth.PrincipalCompanyID(c)
}

func ListPermissionsHandler(c *fiber.Ctx) error {
	companyID := auth.PrincipalCompanyID(c)
	if auth.PrincipalRole(c) == authz.RoleAdmin {
		if v := c.QueryInt("company_id"); v > 0 {
			id := uint(v)
			companyID = &id
		}
	}

	if companyID == nil {
		var perms []models.AccessPermission
		if err := database.DB.Where("company_id IS NULL").Order("module").Find(&perms).Error; err != nil {
			return response.InternalError(c, "Failed to fetch permissions")
		}
		return response.Success(c, perms, "Permissions retrieved successfully")
	}

	perms, err := ListForCompany(database.DB, *companyID)
	if err != nil {
		return response.InternalError(c, "Failed to fetch permissions")
	}
	return response.Success(c, perms, "Permissions retrieved successfully")
}

func CreatePermissionHandler(c *fiber.Ctx) error {
	var body struct {
		Name      string `json:"name"`
		Module    string `json:"module"`
		Role      string `json:"role"`
		Level     string `json:"level"`
		CompanyID *uint  `json:"company_id,omitempty"`
		Override  bool   `json:"override"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	module, err := authz.ParseModule(body.Module)
	if err != nil {
		return response.ValidationError(c, map[string]string{"module": err.Error()})
	}
	role, err := authz.ParseRole(body.Role)
	if err != nil {
		return response.ValidationError(c, map[string]string{"role": err.Error()})
	}
	level, err := authz.ParseLevel(body.Level)
	if err != nil {
		return response.ValidationError(c, map[string]string{"level": err.Error()})
	}

	record := models.AccessPermission{
		Name:      body.Name,
		Module:    module,
		Role:      role,
		Level:     level,
		CompanyID: resolveCompanyID(c, body.CompanyID),
		IsEnabled: true,
	}

	saved, created, err := Upsert(database.DB, record, body.Override)
	if err != nil {
		if errors.Is(err, ErrProtectedDefault) {
			return response.ValidationError(c, map[string]string{"level": err.Error()})
		}
		return response.InternalError(c, "Failed to save permission")
	}

	if created {
		return response.Created(c, saved, "Permission created successfully")
	}
	return response.Success(c, saved, "Permission already exists")
}

func UpdatePermissionHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid permission ID", nil)
	}

	var body struct {
		Name      string `json:"name"`
		Level     string `json:"level"`
		IsEnabled *bool  `json:"is_enabled,omitempty"`
		Override  bool   `json:"override"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var perm models.AccessPermission
	if err := database.DB.First(&perm, id).Error; err != nil {
		return response.NotFound(c, "Permission")
	}

	if perm.IsDefault() && auth.PrincipalRole(c) != authz.RoleAdmin {
		return response.Forbidden(c, "System default permissions can only be changed by an admin")
	}

	if body.Level != "" {
		level, err := authz.ParseLevel(body.Level)
		if err != nil {
			return response.ValidationError(c, map[string]string{"level": err.Error()})
		}
		if isProtectedPair(perm.Role, perm.Module) && level != authz.LevelReadWrite && !body.Override {
			return response.ValidationError(c, map[string]string{"level": ErrProtectedDefault.Error()})
		}
		perm.Level = level
	}
	if body.Name != "" {
		perm.Name = body.Name
	}
	if body.IsEnabled != nil {
		perm.IsEnabled = *body.IsEnabled
	}

	if err := database.DB.Save(&perm).Error; err != nil {
		return response.InternalError(c, "Failed to update permission")
	}

	return response.Success(c, perm, "Permission updated successfully")
}

func DeletePermissionHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid permission ID", nil)
	}

	var perm models.AccessPermission
	if err := database.DB.First(&perm, id).Error; err != nil {
		return response.NotFound(c, "Permission")
	}

	// System defaults are managed by the seeder, never by the tenant path.
	if perm.IsDefault() {
		return response.Forbidden(c, "System default permissions cannot be deleted")
	}

	if err := database.DB.Delete(&perm).Error; err != nil {
		return response.InternalError(c, "Failed to delete permission")
	}

	return response.NoContent(c)
}
