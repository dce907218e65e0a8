package utils

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate(dto) on bound request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator with struct-tag validation enabled.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
