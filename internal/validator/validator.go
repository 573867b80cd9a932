// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finplan/internal/recurrence"
)

// validCurrencies contains the ISO 4217 currency codes accepted on
// planned transactions.
var validCurrencies = map[string]bool{
	"AED": true, "AUD": true, "BRL": true, "CAD": true, "CHF": true,
	"CNY": true, "CZK": true, "DKK": true, "EUR": true, "GBP": true,
	"HKD": true, "HUF": true, "IDR": true, "ILS": true, "INR": true,
	"JPY": true, "KRW": true, "MXN": true, "MYR": true, "NOK": true,
	"NZD": true, "PHP": true, "PLN": true, "RON": true, "SEK": true,
	"SGD": true, "THB": true, "TRY": true, "TWD": true, "USD": true,
	"ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("recurrence_rule", validateRecurrenceRule)
		_ = v.RegisterValidation("date_period", validateDatePeriod)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateRecurrenceRule(fl validator.FieldLevel) bool {
	_, err := recurrence.Parse(fl.Field().String())
	return err == nil
}

func validateDatePeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "current_month", "current_year":
		return true
	}
	return false
}
