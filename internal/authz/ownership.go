package authz

const (
	MsgOwnerOnly        = "Only the owner can perform this action"
	MsgOwnerOrAdminOnly = "Only the owner or an admin can perform this action"
)

// IsOwner reports identity between the acting principal and the resource
// owner. It is a coarse gate used on paths where identity alone is enough
// (e.g. a user changing their own password) and never consults permissions.
func IsOwner(principalID, resourceOwnerID uint) bool {
	return principalID != 0 && principalID == resourceOwnerID
}

func IsOwnerOrAdmin(principalID, resourceOwnerID uint, role Role) bool {
	return IsOwner(principalID, resourceOwnerID) || role == RoleAdmin
}
