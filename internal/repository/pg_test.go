package repository

import "testing"

func TestPaginationNormalized(t *testing.T) {
	cases := []struct {
		name     string
		in       Pagination
		page     int
		size     int
		offset   int
		expected int
	}{
		{name: "defaults", in: Pagination{}, page: 1, size: DefaultPageSize, offset: 0},
		{name: "negative page", in: Pagination{Page: -3, Size: 10}, page: 1, size: 10, offset: 0},
		{name: "zero size", in: Pagination{Page: 2, Size: 0}, page: 2, size: DefaultPageSize, offset: DefaultPageSize},
		{name: "third page", in: Pagination{Page: 3, Size: 5}, page: 3, size: 5, offset: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in.Normalized()
			if p.Page != tc.page {
				t.Fatalf("page: expected %d, got %d", tc.page, p.Page)
			}
			if p.Size != tc.size {
				t.Fatalf("size: expected %d, got %d", tc.size, p.Size)
			}
			if p.Offset() != tc.offset {
				t.Fatalf("offset: expected %d, got %d", tc.offset, p.Offset())
			}
			if p.Limit() != tc.size {
				t.Fatalf("limit: expected %d, got %d", tc.size, p.Limit())
			}
		})
	}
}
