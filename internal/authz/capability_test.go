package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesForAdmin(t *testing.T) {
	assert.ElementsMatch(t, Modules(), CapabilitiesFor(RoleAdmin))
}

func TestCapabilitiesForCompanyAdministrator(t *testing.T) {
	mods := CapabilitiesFor(RoleCompanyAdministrator)
	assert.ElementsMatch(t, []Module{
		ModuleAccessPermissions,
		ModuleCompanies,
		ModuleCampaigns,
		ModuleRecipients,
		ModuleBundles,
		ModuleCostCenters,
		ModuleProducts,
	}, mods)
	assert.NotContains(t, mods, ModuleUsers)
	assert.NotContains(t, mods, ModuleOrders)
}

func TestCapabilitiesForCampaignManager(t *testing.T) {
	assert.ElementsMatch(t, []Module{
		ModuleCampaigns,
		ModuleRecipients,
		ModuleBundles,
	}, CapabilitiesFor(RoleCampaignManager))
}

func TestCapabilitiesForUnprivilegedRoles(t *testing.T) {
	assert.Empty(t, CapabilitiesFor(RoleEmployee))
	assert.Empty(t, CapabilitiesFor(RoleUser))
}

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability(RoleAdmin, ModuleUsers))
	assert.True(t, HasCapability(RoleCampaignManager, ModuleBundles))
	assert.False(t, HasCapability(RoleCampaignManager, ModuleCompanies))
	assert.False(t, HasCapability(RoleUser, ModuleCampaigns))
}

func TestCapabilitiesForReturnsCopy(t *testing.T) {
	mods := CapabilitiesFor(RoleCampaignManager)
	mods[0] = ModuleUsers
	assert.False(t, HasCapability(RoleCampaignManager, ModuleUsers))
}
