// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("item_category", validateItemCategory)
		_ = v.RegisterValidation("item_type", validateItemType)
		_ = v.RegisterValidation("settlement_method", validateSettlementMethod)
		_ = v.RegisterValidation("day_of_month", validateDayOfMonth)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "USD", "VES", "EUR":
		return true
	}
	return false
}

func validateItemCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Bank", "Wallet", "Crypto", "Cash", "Debt", "Expense",
		"Receivable", "Income", "Shopping", "Savings":
		return true
	}
	return false
}

func validateItemType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asset", "liability":
		return true
	}
	return false
}

func validateSettlementMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "money", "asset_out", "asset_in":
		return true
	}
	return false
}

func validateDayOfMonth(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 1 && day <= 31
}
