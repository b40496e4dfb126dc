// Package errors provides custom error types for the Patrimonio API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Item errors.
var (
	ErrItemNotFound = &AppError{Code: "ITEM_NOT_FOUND", Message: "Financial item not found", StatusCode: http.StatusNotFound}
)

// Physical asset errors.
var (
	ErrAssetNotFound = &AppError{Code: "ASSET_NOT_FOUND", Message: "Physical asset not found", StatusCode: http.StatusNotFound}
)

// Settlement errors.
var (
	ErrItemNotSettleable       = &AppError{Code: "ITEM_NOT_SETTLEABLE", Message: "Only debts and receivables with a remaining balance can be settled", StatusCode: http.StatusBadRequest}
	ErrInvalidSettlementAmount = &AppError{Code: "INVALID_SETTLEMENT_AMOUNT", Message: "Settlement amount must be a positive finite number", StatusCode: http.StatusBadRequest}
	ErrCounterpartyRequired    = &AppError{Code: "COUNTERPARTY_REQUIRED", Message: "A valid counter-party account is required for a money settlement", StatusCode: http.StatusBadRequest}
	ErrCounterpartyNotLiquid   = &AppError{Code: "COUNTERPARTY_NOT_LIQUID", Message: "The counter-party account must be a liquid asset account", StatusCode: http.StatusBadRequest}
	ErrSettlementAssetRequired = &AppError{Code: "SETTLEMENT_ASSET_REQUIRED", Message: "The settlement method requires an asset reference", StatusCode: http.StatusBadRequest}
	ErrInvalidSettlementMethod = &AppError{Code: "INVALID_SETTLEMENT_METHOD", Message: "Unsupported settlement method", StatusCode: http.StatusBadRequest}
)

// Liquidation errors.
var (
	ErrInvalidSalePrice     = &AppError{Code: "INVALID_SALE_PRICE", Message: "Sale price must be a positive finite number", StatusCode: http.StatusBadRequest}
	ErrTargetAccountInvalid = &AppError{Code: "TARGET_ACCOUNT_INVALID", Message: "The target account must be a liquid asset account", StatusCode: http.StatusBadRequest}
)

// Rates errors.
var (
	ErrRatesNotFound   = &AppError{Code: "RATES_NOT_FOUND", Message: "Exchange rates have not been initialized", StatusCode: http.StatusNotFound}
	ErrInvalidRate     = &AppError{Code: "INVALID_RATE", Message: "Exchange rates must be non-negative", StatusCode: http.StatusBadRequest}
	ErrRatesFeedFailed = &AppError{Code: "RATES_FEED_FAILED", Message: "Could not fetch rates from the upstream feed", StatusCode: http.StatusBadGateway}
)
