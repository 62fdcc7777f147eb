package authz

import "fmt"

// Module names a protectable resource family.
type Module string

const (
	ModuleUsers             Module = "users"
	ModuleCompanies         Module = "companies"
	ModuleCampaigns         Module = "campaigns"
	ModuleRecipients        Module = "recipients"
	ModuleBundles           Module = "bundles"
	ModuleCostCenters       Module = "cost-centers"
	ModuleProducts          Module = "products"
	ModuleAddresses         Module = "addresses"
	ModuleOrders            Module = "orders"
	ModuleAccessPermissions Module = "access-permissions"
	ModulePrivacyRules      Module = "privacy-rules"
)

var allModules = []Module{
	ModuleUsers,
	ModuleCompanies,
	ModuleCampaigns,
	ModuleRecipients,
	ModuleBundles,
	ModuleCostCenters,
	ModuleProducts,
	ModuleAddresses,
	ModuleOrders,
	ModuleAccessPermissions,
	ModulePrivacyRules,
}

func Modules() []Module {
	out := make([]Module, len(allModules))
	copy(out, allModules)
	return out
}

func (m Module) Valid() bool {
	for _, known := range allModules {
		if m == known {
			return true
		}
	}
	return false
}

func (m Module) String() string {
	return string(m)
}

func ParseModule(s string) (Module, error) {
	m := Module(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown module %q", s)
	}
	return m, nil
}
