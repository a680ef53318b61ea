package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/services?"+rawQuery, nil)
	return c
}

func TestPagination(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 20},
		{"page=3&page_size=5", 3, 5},
		{"page=-1&page_size=500", 1, 100},
		{"page=abc&page_size=0", 1, 20},
	}
	for _, tc := range cases {
		page, pageSize := Pagination(newQueryContext(tc.query))
		if page != tc.page || pageSize != tc.pageSize {
			t.Fatalf("query %q want (%d,%d) got (%d,%d)", tc.query, tc.page, tc.pageSize, page, pageSize)
		}
	}
}

func TestQueryBool(t *testing.T) {
	if got := QueryBool(newQueryContext("active=true"), "active"); got == nil || !*got {
		t.Fatalf("expected true, got %v", got)
	}
	if got := QueryBool(newQueryContext("active=maybe"), "active"); got != nil {
		t.Fatalf("invalid bool should be ignored")
	}
	if got := QueryBool(newQueryContext(""), "active"); got != nil {
		t.Fatalf("missing bool should be nil")
	}
}
