package authz

import "fmt"

// Role is the closed set of principal roles. Unknown strings never become a
// Role silently; use ParseRole at the boundary.
type Role string

const (
	RoleAdmin                Role = "admin"
	RoleCompanyAdministrator Role = "company_administrator"
	RoleCampaignManager      Role = "campaign_manager"
	RoleEmployee             Role = "employee"
	RoleUser                 Role = "user"
)

var allRoles = []Role{
	RoleAdmin,
	RoleCompanyAdministrator,
	RoleCampaignManager,
	RoleEmployee,
	RoleUser,
}

func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
