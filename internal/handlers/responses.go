package handlers

import (
	"net/http"

	"finance-ledger/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers never hand-roll error bodies: SendError covers client and
// business failures (4xx), SendSystemError covers internal failures where
// the underlying error must stay out of the response.

// TraceIDContextKey mirrors the middleware context key for the trace ID.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse aliases the standardized error envelope.
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	if id, ok := c.Get(TraceIDContextKey).(string); ok {
		return id
	}
	return ""
}

// SendError writes the standardized envelope for the given code, with the
// request's trace ID attached.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	resp := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(resp.GetHTTPStatus(), resp)
}

// SendSystemError hides the internal error behind the generic system
// envelope; the cause is preserved for logging by the caller.
func SendSystemError(c echo.Context, err error) error {
	resp, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, resp)
}
