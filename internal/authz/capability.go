package authz

// capabilities maps a role to the modules it may always act on for its own
// company, without consulting the access-permission table. Admin is handled
// separately (full access) and never reaches this table. Roles absent here
// have no allowlist and always go through the permission table.
var capabilities = map[Role][]Module{
	RoleCompanyAdministrator: {
		ModuleAccessPermissions,
		ModuleCompanies,
		ModuleCampaigns,
		ModuleRecipients,
		ModuleBundles,
		ModuleCostCenters,
		ModuleProducts,
	},
	RoleCampaignManager: {
		ModuleCampaigns,
		ModuleRecipients,
		ModuleBundles,
	},
}

// CapabilitiesFor returns the role's static module allowlist. Admin gets
// every module.
func CapabilitiesFor(role Role) []Module {
	if role == RoleAdmin {
		return Modules()
	}
	mods, ok := capabilities[role]
	if !ok {
		return nil
	}
	out := make([]Module, len(mods))
	copy(out, mods)
	return out
}

// HasCapability reports whether the module is on the role's allowlist.
// A false result is not a denial: the caller falls through to the
// per-company permission table.
func HasCapability(role Role, module Module) bool {
	if role == RoleAdmin {
		return true
	}
	for _, m := range capabilities[role] {
		if m == module {
			return true
		}
	}
	return false
}
