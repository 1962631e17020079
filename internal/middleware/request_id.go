package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID on requests and responses
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is where the trace ID lives in the echo context
	TraceIDContextKey = "trace_id"
)

// RequestID tags every request with a trace ID. An incoming X-Trace-ID is
// honored so callers can correlate across services; otherwise a fresh UUID
// is minted. The ID is echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the request's trace ID, or "" before RequestID has run.
func GetTraceID(c echo.Context) string {
	if id, ok := c.Get(TraceIDContextKey).(string); ok {
		return id
	}
	return ""
}
