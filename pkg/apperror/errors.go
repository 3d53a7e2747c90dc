package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned to API clients.
const (
	CodeInsufficientFunds  = "PAY_001"
	CodeInvalidAmount      = "PAY_002"
	CodeDuplicateRequest   = "PAY_003"
	CodeAccountNotFound    = "ACC_001"
	CodeDuplicateAccountID = "ACC_002"
	CodeInvalidAccount     = "ACC_003"
	CodeRateLimitExceeded  = "RATE_001"
	CodeInternal           = "SYS_001"
	CodeRequestCancelled   = "SYS_002"
	CodeRequestTooLarge    = "SYS_003"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// ---- Transfers (PAY) ----

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient balance", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Transfer amount must be positive", http.StatusBadRequest)
}

// ErrDuplicateRequest is returned while a request with the same idempotency key is still being processed.
func ErrDuplicateRequest() *AppError {
	return New(CodeDuplicateRequest, "Request with this idempotency key is already in progress", http.StatusConflict)
}

// ---- Accounts (ACC) ----

// ErrAccountNotFound names the account id that could not be resolved.
func ErrAccountNotFound(id string) *AppError {
	return New(CodeAccountNotFound, fmt.Sprintf("Account %s not found", id), http.StatusNotFound)
}

func ErrDuplicateAccountID(id string) *AppError {
	return New(CodeDuplicateAccountID, fmt.Sprintf("Account id %s already exists!", id), http.StatusConflict)
}

func ErrInvalidAccount(message string) *AppError {
	return New(CodeInvalidAccount, message, http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrRequestCancelled(err error) *AppError {
	return Wrap(CodeRequestCancelled, "Request cancelled", http.StatusServiceUnavailable, err)
}

func ErrRequestTooLarge(limit int64) *AppError {
	return New(CodeRequestTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}
