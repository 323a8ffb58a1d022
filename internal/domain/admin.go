package domain

import "context"

// PlatformStats are the admin-facing counts.
type PlatformStats struct {
	UsersByRole            map[Role]int `json:"users_by_role"`
	TotalUsers             int          `json:"total_users"`
	Events                 int          `json:"events"`
	Bookings               int          `json:"bookings"`
	PendingVendorApprovals int          `json:"pending_vendor_approvals"`
}

// AdminService covers user administration. All operations require the admin role.
type AdminService interface {
	ListUsers(ctx context.Context, actor Actor, filter UserFilter, page PaginationParams) ([]*User, int, error)
	SetUserApproval(ctx context.Context, actor Actor, userID string, approved bool) (*User, error)
	PlatformStats(ctx context.Context, actor Actor) (PlatformStats, error)
}
