package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[PAY_001] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("PAY_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestTransferErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientFunds", ErrInsufficientFunds(), "PAY_001", 402},
		{"InvalidAmount", ErrInvalidAmount(), "PAY_002", 400},
		{"DuplicateRequest", ErrDuplicateRequest(), "PAY_003", 409},
		{"AccountNotFound", ErrAccountNotFound("Id-1"), "ACC_001", 404},
		{"DuplicateAccountID", ErrDuplicateAccountID("Id-1"), "ACC_002", 409},
		{"InvalidAccount", ErrInvalidAccount("bad"), "ACC_003", 400},
		{"RateLimitExceeded", ErrRateLimitExceeded(), "RATE_001", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestAccountErrorMessages(t *testing.T) {
	assert.Equal(t, "Account missing-id not found", ErrAccountNotFound("missing-id").Message)
	assert.Equal(t, "Account id Id-123 already exists!", ErrDuplicateAccountID("Id-123").Message)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	sysErr := InternalError(inner)
	assert.Equal(t, "SYS_001", sysErr.Code)
	assert.Equal(t, 500, sysErr.HTTPStatus)
	assert.True(t, errors.Is(sysErr, inner))

	cancelErr := ErrRequestCancelled(context.Canceled)
	assert.Equal(t, "SYS_002", cancelErr.Code)
	assert.Equal(t, 503, cancelErr.HTTPStatus)
	assert.True(t, errors.Is(cancelErr, context.Canceled))

	tooLarge := ErrRequestTooLarge(1024)
	assert.Equal(t, "SYS_003", tooLarge.Code)
	assert.Equal(t, 413, tooLarge.HTTPStatus)
	assert.Contains(t, tooLarge.Message, "1024")
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("transfer: %w", ErrInsufficientFunds())

	assert.True(t, HasCode(ErrInsufficientFunds(), CodeInsufficientFunds))
	assert.True(t, HasCode(wrapped, CodeInsufficientFunds))
	assert.False(t, HasCode(wrapped, CodeInvalidAmount))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
