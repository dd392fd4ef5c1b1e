package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/admin/api/ingredients?"+rawQuery, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, DefaultPageSize},
		{"explicit", "page=3&pageSize=50", 3, 50},
		{"zero page falls back to first", "page=0", 1, DefaultPageSize},
		{"negative page falls back to first", "page=-2", 1, DefaultPageSize},
		{"page size capped", "pageSize=10000", 1, MaxPageSize},
		{"garbage values fall back", "page=abc&pageSize=xyz", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := pageParams(contextWithQuery(t, tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := contextWithQuery(t, "page=2&pageSize=10")
	data := []string{"a", "b"}

	resp := CreatePaginatedResponse(c, data, 25)

	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, int64(25), resp.TotalRows)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, data, resp.Data)
}

func TestCreatePaginatedResponseEmpty(t *testing.T) {
	c := contextWithQuery(t, "")

	resp := CreatePaginatedResponse(c, []string{}, 0)

	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, int64(0), resp.TotalRows)
}
