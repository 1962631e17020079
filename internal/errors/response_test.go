package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

func (s *ResponseTestSuite) TestNewErrorResponse_Defaults() {
	resp := NewErrorResponse(AuthInvalidCredentials, s.traceID)

	s.Require().NotNil(resp)
	s.Equal("AUTH_001", resp.Error.Code)
	s.Equal("Invalid email or password", resp.Error.Message)
	s.Equal(s.traceID, resp.Error.TraceID)
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_Options() {
	resp := NewErrorResponse(
		AlertNotFound,
		s.traceID,
		WithMessage("no such rule"),
		WithDetails("ruleId: unknown"),
	)

	s.Equal("ALERT_001", resp.Error.Code)
	s.Equal("no such rule", resp.Error.Message)
	s.Equal([]string{"ruleId: unknown"}, resp.Error.Details)
	s.Equal(s.traceID, resp.Error.TraceID)
}

func (s *ResponseTestSuite) TestNewErrorResponse_LastOptionWins() {
	resp := NewErrorResponse(
		SystemInternalError,
		s.traceID,
		WithMessage("first"),
		WithMessage("second"),
		WithDetails("a", "b"),
		WithDetails("c"),
	)

	s.Equal("second", resp.Error.Message)
	s.Equal([]string{"c"}, resp.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError_FieldDetails() {
	resp := NewValidationError(map[string]string{
		"email":    "must be a valid email address",
		"password": "must be at least 8 characters long",
		"amount":   "must be greater than 0",
	}, s.traceID)

	s.Equal("VALIDATION_001", resp.Error.Code)
	s.Equal("Validation failed", resp.Error.Message)
	s.Len(resp.Error.Details, 3)

	// Map iteration order is unspecified, so match as a set.
	seen := make(map[string]bool)
	for _, d := range resp.Error.Details {
		seen[d] = true
	}
	s.True(seen["email: must be a valid email address"])
	s.True(seen["password: must be at least 8 characters long"])
	s.True(seen["amount: must be greater than 0"])
}

func (s *ResponseTestSuite) TestNewValidationError_NoFields() {
	resp := NewValidationError(map[string]string{}, s.traceID)

	s.Equal("VALIDATION_001", resp.Error.Code)
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestWrapSystemError_ReturnsCauseForLogging() {
	cause := errors.New("database connection failed")

	resp, err := WrapSystemError(cause, s.traceID)

	s.Equal("SYSTEM_001", resp.Error.Code)
	s.Equal("An unexpected error occurred. Please contact support with trace ID", resp.Error.Message)
	s.Equal(s.traceID, resp.Error.TraceID)
	s.Equal(cause, err)
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesInternals() {
	cause := errors.New("SQL error: table 'transactions' does not exist at /var/lib/postgresql/data")

	resp, _ := WrapSystemError(cause, s.traceID)

	s.NotContains(resp.Error.Message, "SQL")
	s.NotContains(resp.Error.Message, "table")
	s.NotContains(resp.Error.Message, "/var/lib/postgresql")
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestToJSON_RoundTrip() {
	resp := NewErrorResponse(AccountNotFound, s.traceID, WithDetails("account lookup by user failed"))

	raw, err := resp.ToJSON()
	s.Require().NoError(err)

	var decoded ErrorResponse
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Equal("ACCOUNT_001", decoded.Error.Code)
	s.Equal("Account not found", decoded.Error.Message)
	s.Equal(s.traceID, decoded.Error.TraceID)
	s.Contains(decoded.Error.Details, "account lookup by user failed")
}

func (s *ResponseTestSuite) TestToJSON_OmitsEmptyDetails() {
	raw, err := NewErrorResponse(AuthInvalidCredentials, s.traceID).ToJSON()
	s.Require().NoError(err)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(raw, &body))

	errorObj := body["error"].(map[string]interface{})
	_, hasDetails := errorObj["details"]
	s.False(hasDetails)
}

func (s *ResponseTestSuite) TestToJSON_WireFormat() {
	raw, err := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails("email: invalid format")).ToJSON()
	s.Require().NoError(err)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Require().Contains(body, "error")

	errorObj := body["error"].(map[string]interface{})
	s.IsType("", errorObj["code"])
	s.IsType("", errorObj["message"])
	s.IsType("", errorObj["trace_id"])
	s.IsType([]interface{}{}, errorObj["details"])
}

func (s *ResponseTestSuite) TestGetHTTPStatus_Mapping() {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationRequiredField, http.StatusBadRequest},
		{ValidationInvalidDate, http.StatusBadRequest},
		{TransactionInvalidAmount, http.StatusBadRequest},
		{AlertInvalidThreshold, http.StatusBadRequest},
		{TransferInvalidAmount, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInvalidTokenFormat, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{AccountNotFound, http.StatusNotFound},
		{TransactionNotFound, http.StatusNotFound},
		{ExpenseNotFound, http.StatusNotFound},
		{AlertNotFound, http.StatusNotFound},
		{TransferUnknownCurrencyPair, http.StatusNotFound},
		{AccountAlreadyExists, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemDatabaseError, http.StatusInternalServerError},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.want, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestGetHTTPStatus_UnknownCodeIs500() {
	s.Equal(http.StatusInternalServerError, GetHTTPStatus("UNKNOWN_999"))
}

func (s *ResponseTestSuite) TestResponseGetHTTPStatus() {
	s.Equal(http.StatusUnauthorized, NewErrorResponse(AuthInvalidCredentials, s.traceID).GetHTTPStatus())
}

func (s *ResponseTestSuite) TestClientAndServerErrorClassification() {
	for _, code := range []ErrorCode{ValidationGeneral, AuthInvalidCredentials, AuthInsufficientPermission, AccountNotFound, AccountAlreadyExists} {
		resp := NewErrorResponse(code, s.traceID)
		s.True(resp.IsClientError(), string(code))
		s.False(resp.IsServerError(), string(code))
	}
	for _, code := range []ErrorCode{SystemInternalError, SystemDatabaseError, SystemServiceUnavailable} {
		resp := NewErrorResponse(code, s.traceID)
		s.True(resp.IsServerError(), string(code))
		s.False(resp.IsClientError(), string(code))
	}
}

func (s *ResponseTestSuite) TestString() {
	str := NewErrorResponse(AccountNotFound, s.traceID).String()

	s.Contains(str, "ACCOUNT_001")
	s.Contains(str, "Account not found")
	s.Contains(str, s.traceID)
}
