package domain

// PaginationParams pages the admin user listing. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset is the number of users to skip before the requested page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
