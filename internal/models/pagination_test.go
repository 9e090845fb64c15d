package models

import "testing"

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int64
		wantTotalPages int
	}{
		{"even split", 1, 10, 100, 10},
		{"partial last page", 2, 10, 95, 10},
		{"single short page", 1, 10, 3, 1},
		{"empty collection", 1, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.page, tt.perPage, tt.total)
			if info.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPages)
			}
			if info.Total != int(tt.total) {
				t.Errorf("Total = %d, want %d", info.Total, tt.total)
			}
			if info.Page != tt.page || info.PerPage != tt.perPage {
				t.Errorf("Page/PerPage = %d/%d, want %d/%d", info.Page, info.PerPage, tt.page, tt.perPage)
			}
		})
	}
}
