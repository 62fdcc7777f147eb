package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner(7, 7))
	assert.False(t, IsOwner(7, 8))
	assert.False(t, IsOwner(0, 0), "zero ids never establish ownership")
}

func TestIsOwnerOrAdmin(t *testing.T) {
	assert.True(t, IsOwnerOrAdmin(7, 7, RoleUser))
	assert.True(t, IsOwnerOrAdmin(7, 8, RoleAdmin))
	assert.False(t, IsOwnerOrAdmin(7, 8, RoleCompanyAdministrator))
	assert.False(t, IsOwnerOrAdmin(7, 8, RoleUser))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("campaign_manager")
	assert.NoError(t, err)
	assert.Equal(t, RoleCampaignManager, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestParseModule(t *testing.T) {
	m, err := ParseModule("cost-centers")
	assert.NoError(t, err)
	assert.Equal(t, ModuleCostCenters, m)

	_, err = ParseModule("gadgets")
	assert.Error(t, err)
}

func TestVerbForMethod(t *testing.T) {
	assert.Equal(t, VerbRead, VerbForMethod("GET"))
	assert.Equal(t, VerbRead, VerbForMethod("HEAD"))
	assert.Equal(t, VerbWrite, VerbForMethod("POST"))
	assert.Equal(t, VerbWrite, VerbForMethod("PUT"))
	assert.Equal(t, VerbWrite, VerbForMethod("PATCH"))
	assert.Equal(t, VerbWrite, VerbForMethod("DELETE"))
}

func TestLevelAllows(t *testing.T) {
	assert.True(t, LevelRead.Allows(VerbRead))
	assert.False(t, LevelRead.Allows(VerbWrite))
	assert.True(t, LevelReadWrite.Allows(VerbRead))
	assert.True(t, LevelReadWrite.Allows(VerbWrite))
}
