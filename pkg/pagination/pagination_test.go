package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	cases := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"zero page", 0, 15, 1, 15},
		{"negative page", -3, 15, 1, 15},
		{"zero per page", 1, 0, 1, 15},
		{"per page above cap", 1, 500, 1, 100},
		{"valid untouched", 3, 25, 3, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &PaginationParams{Page: tc.page, PerPage: tc.perPage}
			p.Validate()
			if p.Page != tc.wantPage || p.PerPage != tc.wantPerPage {
				t.Fatalf("got page=%d per_page=%d, want page=%d per_page=%d",
					p.Page, p.PerPage, tc.wantPage, tc.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("Offset() = %d, want 20", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 25)
	if pag.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Fatal("page 2 of 3 should have next and prev")
	}

	last := NewPagination(3, 10, 25)
	if last.HasNext {
		t.Fatal("last page should not have next")
	}
}
