package handlers

import (
	"sync"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils/money"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the request validators used by the DTO binding tags.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			_, err := money.ParseAmount(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return domain.IsValidCurrency(domain.NormalizeCurrency(fl.Field().String()))
		})
		_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
			_, err := period.ParseMonth(fl.Field().String())
			return err == nil
		})
	})
}
