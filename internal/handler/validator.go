package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator { return &Validator{v: validator.New()} }

func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }

// bindValid decodes the request body into dst and validates it. Malformed
// JSON answers 4002; failed validation answers 4001 with msg.
func bindValid(c echo.Context, dst interface{}, msg string) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, model.Fail(model.CodeInvalidJSON, "Invalid JSON payload."))
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, model.Fail(model.CodeValidation, msg))
	}
	return nil
}
