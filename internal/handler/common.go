// Package handler contains the HTTP handlers for the REST API.  Handlers
// bind and validate request bodies, call repositories or services, and
// translate sentinel errors into HTTP responses.
package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// dbTimeout bounds a single handler's database work.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// userID reads the authenticated user id set by the JWT middleware.
func userID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// parseDate parses a YYYY-MM-DD wire date as a UTC calendar date.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
