package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Message used when a route succeeds without supplying its own
const defaultSuccessMessage = "Action was successful"

// Message used when a failure carries no text of its own
const genericErrorMessage = "An unexpected error occurred"

// Result is what a route body returns on success
type Result struct {
	Data       any             // Response payload
	Message    string          // Optional success message
	Pagination *PaginationInfo // Optional pagination block
}

// RouteFunc is a route body: it resolves identifiers, validates input and
// talks to the store, leaving response shaping to Handle.
type RouteFunc func(c *gin.Context) (*Result, error)

// Handle wraps a route body into a gin handler emitting the uniform envelope.
// Routes never classify their own failures; any error surfaces here as a 500
// envelope with the error's message and a null data field.
func Handle(fn RouteFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := fn(c)
		if err != nil {
			msg := err.Error()
			if msg == "" {
				msg = genericErrorMessage
			}
			c.JSON(http.StatusInternalServerError, FormatResponse(http.StatusInternalServerError, msg, nil, nil))
			return
		}
		msg := result.Message
		if msg == "" {
			msg = defaultSuccessMessage
		}
		c.JSON(http.StatusOK, FormatResponse(http.StatusOK, msg, result.Data, result.Pagination))
	}
}

// validateQueryParams fails when the request carries a query parameter outside
// the allowed set for the route
func validateQueryParams(c *gin.Context, allowed []string) error {
	for param := range c.Request.URL.Query() {
		found := false
		for _, a := range allowed {
			if param == a {
				found = true
				break
			}
		}
		if !found {
			return errInvalidQueryParam(param)
		}
	}
	return nil
}
