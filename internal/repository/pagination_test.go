package repository

import "testing"

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Size: 20}, 0},
		{Page{Number: 3, Size: 20}, 40},
		{Page{Number: 0, Size: 20}, 0},
		{Page{Number: -2, Size: 10}, 0},
	}
	for _, tc := range cases {
		if got := tc.page.Offset(); got != tc.want {
			t.Fatalf("offset of %+v want %d got %d", tc.page, tc.want, got)
		}
	}
}
