package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ValidatorTestSuite defines the test suite for the custom validation rules
type ValidatorTestSuite struct {
	suite.Suite
	validator *Validator
}

// TestValidatorTestSuite runs the test suite
func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = NewValidator()
}

func (s *ValidatorTestSuite) TestGetValidator_Singleton() {
	first := GetValidator()
	second := GetValidator()
	s.Same(first, second)
}

func (s *ValidatorTestSuite) TestPositiveAmount() {
	type payload struct {
		Amount float64 `validate:"positive_amount"`
	}

	testCases := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"positive", 10.50, true},
		{"small fraction", 0.01, true},
		{"zero", 0, false},
		{"negative", -5, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.validator.GetValidate().Struct(payload{Amount: tc.amount})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestPositiveAmount_NonNumericField() {
	type payload struct {
		Amount string `validate:"positive_amount"`
	}

	s.Error(s.validator.GetValidate().Struct(payload{Amount: "100"}))
}

func (s *ValidatorTestSuite) TestAlertKind() {
	type payload struct {
		Kind string `validate:"alert_kind"`
	}

	testCases := []struct {
		name  string
		kind  string
		valid bool
	}{
		{"balance drop", "balance_drop", true},
		{"target amount", "target_amount", true},
		{"mixed case", "Balance_Drop", true},
		{"unknown", "low_balance", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.validator.GetValidate().Struct(payload{Kind: tc.kind})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestCurrencyCode() {
	type payload struct {
		Currency string `validate:"currency_code"`
	}

	testCases := []struct {
		name     string
		currency string
		valid    bool
	}{
		{"uppercase", "EUR", true},
		{"lowercase", "eur", true},
		{"mixed case", "Gbp", true},
		{"too long", "EURO", false},
		{"too short", "EU", false},
		{"digits", "EU1", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.validator.GetValidate().Struct(payload{Currency: tc.currency})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestUTCTimestamp() {
	type payload struct {
		Timestamp string `validate:"utc_timestamp"`
	}

	testCases := []struct {
		name      string
		timestamp string
		valid     bool
	}{
		{"valid", "2024-06-15T12:00:00Z", true},
		{"empty is optional", "", true},
		{"missing zone", "2024-06-15T12:00:00", false},
		{"offset zone", "2024-06-15T12:00:00+02:00", false},
		{"date only", "2024-06-15", false},
		{"garbage", "yesterday", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.validator.GetValidate().Struct(payload{Timestamp: tc.timestamp})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestTagNameFunc_UsesJSONNames() {
	type payload struct {
		TargetAmount float64 `json:"targetAmount" validate:"required,positive_amount"`
	}

	err := s.validator.GetValidate().Struct(payload{})
	s.Require().Error(err)
	s.Contains(err.Error(), "targetAmount")
}
