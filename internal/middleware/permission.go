package middleware

import (
	"github.com/giftbridge/platform/internal/accessperm"
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
)

const localAuthzContext = "authz_context"

// PrincipalContext assembles the authorization context for the current
// request. Must run after auth.JWTProtected.
func PrincipalContext(c *fiber.Ctx, module authz.Module) authz.Context {
	return authz.Context{
		PrincipalID: auth.PrincipalID(c),
		Role:        auth.PrincipalRole(c),
		CompanyID:   auth.PrincipalCompanyID(c),
		Module:      module,
		Verb:        authz.VerbForMethod(c.Method()),
	}
}

// ModuleProtected authorizes the request against the given module using the
// capability table and the company's access-permission records. The request
// verb is classified from the HTTP method.
func ModuleProtected(module authz.Module) fiber.Handler {
	lookup := accessperm.Lookuper()
	return func(c *fiber.Ctx) error {
		ctx := PrincipalContext(c, module)

		decision := authz.Authorize(ctx, lookup)
		if !decision.Allowed {
			return response.Forbidden(c, decision.Reason)
		}

		c.Locals(localAuthzContext, ctx)
		return c.Next()
	}
}

// AuthzContext returns the context stored by ModuleProtected, for handlers
// that want to consult the resolved module or verb afterwards.
func AuthzContext(c *fiber.Ctx) (authz.Context, bool) {
	ctx, ok := c.Locals(localAuthzContext).(authz.Context)
	return ctx, ok
}

// OwnerProtected rejects unless the authenticated principal is the user
// named by the :id route param. Identity only; no permission lookup.
func OwnerProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := c.ParamsInt("id")
		if err != nil {
			return response.BadRequest(c, "Invalid user ID", nil)
		}

		if !authz.IsOwner(auth.PrincipalID(c), uint(targetID)) {
			return response.Forbidden(c, authz.MsgOwnerOnly)
		}

		ctx := PrincipalContext(c, authz.ModuleUsers)
		ctx.IsOwner = true
		c.Locals(localAuthzContext, ctx)
		return c.Next()
	}
}

// OwnerOrAdminProtected is OwnerProtected with an admin escape hatch.
func OwnerOrAdminProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := c.ParamsInt("id")
		if err != nil {
			return response.BadRequest(c, "Invalid user ID", nil)
		}

		if !authz.IsOwnerOrAdmin(auth.PrincipalID(c), uint(targetID), auth.PrincipalRole(c)) {
			return response.Forbidden(c, authz.MsgOwnerOrAdminOnly)
		}

		ctx := PrincipalContext(c, authz.ModuleUsers)
		ctx.IsOwner = authz.IsOwner(auth.PrincipalID(c), uint(targetID))
		ctx.IsOwnerOrAdmin = true
		c.Locals(localAuthzContext, ctx)
		return c.Next()
	}
}
