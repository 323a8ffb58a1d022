package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Offset(t *testing.T) {
	tests := []struct {
		name string
		page PaginationParams
		want int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 20}, 0},
		{"third page", PaginationParams{Page: 3, PageSize: 20}, 40},
		{"page zero", PaginationParams{Page: 0, PageSize: 20}, 0},
		{"no page size", PaginationParams{Page: 4, PageSize: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Offset())
		})
	}
}
