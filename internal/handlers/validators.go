package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// registerCustomValidators installs the domain enum validators on gin's
// binding engine so DTO tags can reference them.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("paymentfrequency", func(fl validator.FieldLevel) bool {
		switch domain.PaymentFrequency(fl.Field().String()) {
		case domain.FrequencyDaily, domain.FrequencyBiDaily, domain.FrequencyWeekly:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("interesttype", func(fl validator.FieldLevel) bool {
		switch domain.InterestType(fl.Field().String()) {
		case domain.InterestFixed, domain.InterestCompound:
			return true
		}
		return false
	})
}
