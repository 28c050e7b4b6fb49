package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pageContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int32
		wantOffset int32
	}{
		{"defaults", "", DefaultPageSize, 0},
		{"second page", "page=2", DefaultPageSize, DefaultPageSize},
		{"custom size", "page=3&page_size=5", 5, 10},
		{"size capped", "page_size=10000", MaxPageSize, 0},
		{"garbage ignored", "page=zero&page_size=-4", DefaultPageSize, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := ParsePage(pageContext(t, tc.query))
			if limit != tc.wantLimit {
				t.Fatalf("limit: expected %d, got %d", tc.wantLimit, limit)
			}
			if offset != tc.wantOffset {
				t.Fatalf("offset: expected %d, got %d", tc.wantOffset, offset)
			}
		})
	}
}
