package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RegisterCustomValidators installs the currencycode binding tag on gin's
// validator engine. Called once from main before routes are registered.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return models.ValidateCurrencyCode(fl.Field().String()) == nil
		})
	}
}
