package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcourier/internal/desk"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error  string         `json:"error"`
	Code   string         `json:"code,omitempty"` // machine-readable error code
	Retry  bool           `json:"retry,omitempty"`
	Notice string         `json:"notice,omitempty"`
	State  *desk.Snapshot `json:"state,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// errorStatus maps desk errors to a status code and a machine-readable code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, desk.ErrNotFound):
		return http.StatusUnauthorized, "courier_not_found"
	case errors.Is(err, desk.ErrNoSession):
		return http.StatusUnauthorized, "no_session"
	case errors.Is(err, desk.ErrPrecondition):
		return http.StatusConflict, "precondition_failed"
	case errors.Is(err, desk.ErrActionDisabled):
		return http.StatusConflict, "action_disabled"
	case errors.Is(err, desk.ErrInvalidRow):
		return http.StatusBadRequest, "invalid_row"
	case errors.Is(err, desk.ErrConnectivity):
		return http.StatusServiceUnavailable, "database_unreachable"
	case errors.Is(err, desk.ErrCommitFailure):
		return http.StatusInternalServerError, "commit_failed"
	}
	return http.StatusInternalServerError, "internal"
}

// respondDeskError reports a failed desk event together with the state the
// desk is left in, so the front-end can re-render either way.
func respondDeskError(c *gin.Context, d *desk.Desk, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	snap := d.Snapshot()
	c.JSON(status, ErrorResponse{
		Error:  err.Error(),
		Code:   code,
		Retry:  desk.Retryable(err),
		Notice: snap.Notice,
		State:  &snap,
	})
}

// parseIntQuery reads a non-negative integer query parameter.
func parseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
