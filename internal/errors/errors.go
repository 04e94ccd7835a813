// Package errors provides custom error types for the AssetSnapshot API.
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

// Owner errors.
var (
	ErrOwnerNotFound  = &AppError{Code: "OWNER_NOT_FOUND", Message: "Owner not found", StatusCode: http.StatusNotFound}
	ErrDuplicateOwner = &AppError{Code: "DUPLICATE_OWNER", Message: "An owner with this name already exists", StatusCode: http.StatusConflict}
)

// Bank and account errors.
var (
	ErrBankNotFound    = &AppError{Code: "BANK_NOT_FOUND", Message: "Bank not found", StatusCode: http.StatusNotFound}
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrLogNotFound     = &AppError{Code: "LOG_NOT_FOUND", Message: "Balance log not found", StatusCode: http.StatusNotFound}
)

// Asset errors.
var (
	ErrAssetNotFound    = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrAssetLogNotFound = &AppError{Code: "ASSET_LOG_NOT_FOUND", Message: "Asset log not found", StatusCode: http.StatusNotFound}
)

// Config option errors.
var (
	ErrDuplicateOption = &AppError{Code: "DUPLICATE_OPTION", Message: "Option already exists", StatusCode: http.StatusConflict}
)

// Import/export errors.
var (
	ErrMissingSheet  = &AppError{Code: "MISSING_SHEET", Message: "Workbook is missing a required sheet", StatusCode: http.StatusBadRequest}
	ErrImportFailed  = &AppError{Code: "IMPORT_FAILED", Message: "Import failed, no changes were applied", StatusCode: http.StatusBadRequest}
	ErrFXFetchFailed = &AppError{Code: "FX_FETCH_FAILED", Message: "Failed to fetch live exchange rates", StatusCode: http.StatusBadGateway}
)
