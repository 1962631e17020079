package handlers

import (
	"finance-ledger/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs the shared rule set into echo's Validator hook.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator backed by the shared rules.
func NewValidator() echo.Validator {
	return &CustomValidator{validate: validation.GetValidator().GetValidate()}
}

// Validate runs struct validation; the error handler middleware turns any
// validator.ValidationErrors into field-level details.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
