package domain

// Actor identifies the caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanManage reports whether the actor owns a resource owned by ownerID or is an admin.
func (a Actor) CanManage(ownerID string) bool {
	return a.UserID != "" && (a.UserID == ownerID || a.IsAdmin())
}
