package auth

import (
	"strings"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/giftbridge/platform/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by JWTProtected.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalCompanyID = "company_id"
)

func JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "Missing authorization token",
				},
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN_FORMAT",
					"message": "Invalid token format",
				},
			})
		}

		claims, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalCompanyID, claims.CompanyID)
		return c.Next()
	}
}

// RoleProtected allows the request through only when the stored user holds
// one of the given roles. It re-reads the user row so a role change takes
// effect before the token expires.
func RoleProtected(allowedRoles ...authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := PrincipalID(c)

		var u models.User
		if err := database.DB.First(&u, userID).Error; err != nil {
			return response.Unauthorized(c, "User not found")
		}

		for _, role := range allowedRoles {
			if u.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// PrincipalID returns the authenticated user id, or 0 when JWTProtected did
// not run.
func PrincipalID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

func PrincipalRole(c *fiber.Ctx) authz.Role {
	role, _ := c.Locals(LocalRole).(authz.Role)
	return role
}

// PrincipalCompanyID returns nil for principals not attached to a company.
func PrincipalCompanyID(c *fiber.Ctx) *uint {
	companyID, _ := c.Locals(LocalCompanyID).(*uint)
	return companyID
}
