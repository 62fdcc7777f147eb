package authz

// Context carries everything the resolver needs about one request. It is
// assembled once per request by the middleware and passed by value; it is
// never persisted.
type Context struct {
	PrincipalID uint
	Role        Role
	CompanyID   *uint
	Module      Module
	Verb        Verb

	// Set by ownership checks that ran earlier in the request, for handlers
	// that want to consult them after the module gate.
	IsOwner        bool
	IsOwnerOrAdmin bool
}

// Decision is the outcome of Authorize. Reason is part of the observable
// contract and is returned to the client verbatim on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

const MsgNoPermission = "You do not have the necessary permissions to perform this action"

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// PermissionLookup resolves the permission level granted to a role for a
// module within one company. ok is false when no enabled record matches.
type PermissionLookup func(companyID uint, module Module, role Role) (level Level, ok bool)

// Authorize decides whether the principal may perform the request. The
// evaluation order is load-bearing:
//
//  1. Admin is allowed everything.
//  2. A role whose static allowlist contains the module is allowed without
//     consulting the permission table. A module outside the allowlist is
//     NOT an automatic denial; it falls through to step 3.
//  3. A principal attached to a company is checked against the company's
//     access-permission records, and the granted level must cover the
//     requested verb.
//  4. A principal with no company is allowed. This branch is preserved
//     from before tenancy existed; tightening it would break those sessions.
func Authorize(ctx Context, lookup PermissionLookup) Decision {
	if ctx.Role == RoleAdmin {
		return Allow()
	}

	if HasCapability(ctx.Role, ctx.Module) {
		return Allow()
	}

	if ctx.CompanyID != nil {
		level, ok := lookup(*ctx.CompanyID, ctx.Module, ctx.Role)
		if !ok {
			return Deny(MsgNoPermission)
		}
		if !level.Allows(ctx.Verb) {
			return Deny(MsgNoPermission)
		}
		return Allow()
	}

	return Allow()
}
