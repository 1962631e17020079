package middleware

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"finance-ledger/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// CustomHTTPErrorHandler turns any error escaping a handler into the
// standardized envelope. echo.HTTPError keeps its status, validator errors
// become 400 with per-field details, and everything else is wrapped as a
// generic system error so internals never reach the client.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	var (
		resp   *errors.ErrorResponse
		status int

		echoErr        *echo.HTTPError
		validationErrs validator.ValidationErrors
	)

	switch {
	case goerrors.As(err, &echoErr):
		status = echoErr.Code
		resp = errors.NewErrorResponse(
			statusToErrorCode(status),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
	case goerrors.As(err, &validationErrs):
		status = http.StatusBadRequest
		fieldErrors := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fieldErrors[fe.Field()] = fieldErrorMessage(fe)
		}
		resp = errors.NewValidationError(fieldErrors, traceID)
	default:
		resp, _ = errors.WrapSystemError(err, traceID)
		status = resp.GetHTTPStatus()
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request().Context(), level, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", resp.Error.Code,
		"status", status,
		"message", resp.Error.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(resp.Error.Code, c.Path(), strconv.Itoa(status)).Inc()

	if sendErr := c.JSON(status, resp); sendErr != nil {
		slog.Error("failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

func statusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity:
		return errors.ValidationGeneral
	case http.StatusUnauthorized:
		return errors.AuthMissingToken
	case http.StatusForbidden:
		return errors.AuthInsufficientPermission
	case http.StatusNotFound:
		return errors.AccountNotFound
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemInternalError
	}
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "positive_amount":
		return "must be greater than 0"
	case "alert_kind":
		return "must be a valid alert kind (balance_drop, target_amount)"
	case "currency_code":
		return "must be a three-letter currency code"
	case "utc_timestamp":
		return "must be a UTC timestamp in the form 2006-01-02T15:04:05Z"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
