// Package validator provides custom validation functions, registered both with
// Gin's binding engine (dev server) and on a standalone instance used by the
// client SDK to validate form input before it reaches the wire.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pennywise/internal/format"
	"pennywise/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustom(v)
	}
}

// New returns a standalone validator instance with the custom rules
// registered, for use outside of Gin request binding.
func New() *validator.Validate {
	v := validator.New()
	registerCustom(v)
	return v
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("date_format", validateDateFormat)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
	_ = v.RegisterValidation("frequency", validateFrequency)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	_, ok := format.SupportedCurrencies[fl.Field().String()]
	return ok
}

func validateDateFormat(fl validator.FieldLevel) bool {
	_, ok := format.SupportedDateFormats[fl.Field().String()]
	return ok
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validateAccountType(fl validator.FieldLevel) bool {
	for _, t := range models.AccountTypes {
		if string(t) == fl.Field().String() {
			return true
		}
	}
	return false
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	for _, p := range models.BudgetPeriods {
		if string(p) == fl.Field().String() {
			return true
		}
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch models.Frequency(fl.Field().String()) {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
		return true
	}
	return false
}
