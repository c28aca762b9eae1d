package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// queryContext builds a gin context for a GET request with the given query string
func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/list?"+rawQuery, nil)
	return c
}

func TestFormatResponseStatusFlag(t *testing.T) {
	assert.True(t, FormatResponse(200, "ok", nil, nil).Status)
	assert.True(t, FormatResponse(204, "ok", nil, nil).Status)
	assert.True(t, FormatResponse(299, "ok", nil, nil).Status)
	assert.False(t, FormatResponse(199, "ok", nil, nil).Status)
	assert.False(t, FormatResponse(300, "ok", nil, nil).Status)
	assert.False(t, FormatResponse(500, "boom", nil, nil).Status)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := GetPaginationParams(queryContext(t, ""))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, "desc", p.Order)
}

func TestGetPaginationParamsExplicit(t *testing.T) {
	p := GetPaginationParams(queryContext(t, "page=3&limit=25&sortBy=amount&order=asc"))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "amount", p.SortBy)
	assert.Equal(t, "asc", p.Order)
}

func TestGetPaginationParamsInvalidFallsBack(t *testing.T) {
	// Non-numeric and non-positive values fall back to the defaults
	p := GetPaginationParams(queryContext(t, "page=abc&limit=-5&order=sideways"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "desc", p.Order)
}

func TestOrderClause(t *testing.T) {
	p := PaginationParams{SortBy: "createdAt", Order: "desc"}
	assert.Equal(t, "created_at desc", p.OrderClause())

	p = PaginationParams{SortBy: "amount", Order: "asc"}
	assert.Equal(t, "amount asc", p.OrderClause())

	// Anything that is not a plain identifier falls back to created_at
	p = PaginationParams{SortBy: "amount; DROP TABLE stakes", Order: "desc"}
	assert.Equal(t, "created_at desc", p.OrderClause())
}

func TestPaginationInfoMath(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 10}
	info := p.Info(25)
	assert.Equal(t, int64(25), info.TotalItems)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	// Exact multiple
	assert.Equal(t, 2, p.Info(20).TotalPages)
	// Empty result
	assert.Equal(t, 0, p.Info(0).TotalPages)
}
