package api

import (
	"strconv" // Query parameter parsing
	"strings" // Sort column normalization

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// PaginationInfo is the pagination block of the response envelope
type PaginationInfo struct {
	TotalItems  int64 `json:"totalItems"`  // Total matching rows
	TotalPages  int   `json:"totalPages"`  // ceil(totalItems / limit)
	CurrentPage int   `json:"currentPage"` // Requested page
}

// Response is the uniform envelope returned by every route
type Response struct {
	StatusCode int             `json:"status_code"`          // HTTP status code
	Status     bool            `json:"status"`               // true iff 200 <= code < 300
	Message    string          `json:"message"`              // Human-readable outcome
	Pagination *PaginationInfo `json:"pagination,omitempty"` // Present on list responses
	Data       any             `json:"data"`                 // Payload, null on failure
}

// FormatResponse builds the envelope for a status code, message and payload
func FormatResponse(statusCode int, message string, data any, pagination *PaginationInfo) Response {
	return Response{
		StatusCode: statusCode,
		Status:     statusCode >= 200 && statusCode < 300,
		Message:    message,
		Pagination: pagination,
		Data:       data,
	}
}

// PaginationParams are the list-endpoint query parameters
type PaginationParams struct {
	Page   int    // 1-based page number, default 1
	Limit  int    // Page size, default 10, no upper bound
	SortBy string // Sort field in camelCase, default "createdAt"
	Order  string // "asc" or "desc", default "desc"
}

// GetPaginationParams extracts pagination params from the query string.
// Non-numeric or non-positive page/limit values fall back to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page := 1   // Default page
	limit := 10 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v // Set limit if valid
		}
	}
	sortBy := c.DefaultQuery("sortBy", "createdAt") // Default sort field
	order := c.Query("order")                       // Default sort order is descending
	if order != "asc" {
		order = "desc"
	}
	return PaginationParams{Page: page, Limit: limit, SortBy: sortBy, Order: order}
}

// Apply adds offset, limit and ordering to a query
func (p PaginationParams) Apply(q *gorm.DB) *gorm.DB {
	return q.Offset((p.Page - 1) * p.Limit).Limit(p.Limit).Order(p.OrderClause())
}

// OrderClause renders the sort field and order as a SQL ORDER BY expression.
// The field is snake-cased to match column names; anything that is not a
// plain identifier falls back to created_at.
func (p PaginationParams) OrderClause() string {
	column := toSnakeCase(p.SortBy)
	if !isPlainIdentifier(column) {
		column = "created_at"
	}
	return column + " " + p.Order
}

// Info builds the pagination block for a total row count
func (p PaginationParams) Info(totalItems int64) *PaginationInfo {
	totalPages := int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
	return &PaginationInfo{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
	}
}

// toSnakeCase converts a camelCase field name to its snake_case column name
func toSnakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isPlainIdentifier reports whether s is safe to interpolate as a column name
func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
