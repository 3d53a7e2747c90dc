package service

import (
	"context"
	"errors"
	"testing"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports/mocks"
	"account-transfer-service/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAccountService_CreateAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	svc := NewAccountService(store, zerolog.Nop())
	ctx := context.Background()

	store.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, acc *domain.Account) error {
			assert.Equal(t, "Id-123", acc.ID)
			return nil
		})

	acc, err := svc.CreateAccount(ctx, "Id-123", dec("1000"))
	require.NoError(t, err)
	assert.Equal(t, "Id-123", acc.ID)
	assert.True(t, acc.Balance().Equal(dec("1000")))
}

func TestAccountService_CreateAccount_ZeroBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	svc := NewAccountService(store, zerolog.Nop())

	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	acc, err := svc.CreateAccount(context.Background(), "Id-0", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, acc.Balance().IsZero())
}

func TestAccountService_CreateAccount_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		balance decimal.Decimal
		msg     string
	}{
		{"empty id", "", dec("10"), "Account id must not be empty."},
		{"blank id", "   ", dec("10"), "Account id must not be empty."},
		{"negative balance", "Id-1", dec("-1"), "Initial balance must be positive."},
		{"balance scale too large", "Id-1", dec("1e-2000000"), "Initial balance is out of range."},
		{"balance too large", "Id-1", dec("1e30"), "Initial balance is out of range."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockAccountStore(ctrl)
			svc := NewAccountService(store, zerolog.Nop())

			_, err := svc.CreateAccount(context.Background(), tt.id, tt.balance)
			assertAppError(t, err, apperror.CodeInvalidAccount)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestAccountService_CreateAccount_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	svc := NewAccountService(store, zerolog.Nop())

	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperror.ErrDuplicateAccountID("Id-1"))

	_, err := svc.CreateAccount(context.Background(), "Id-1", dec("5"))
	assertAppError(t, err, apperror.CodeDuplicateAccountID)
	assert.Contains(t, err.Error(), "Account id Id-1 already exists!")
}

func TestAccountService_CreateAccount_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	svc := NewAccountService(store, zerolog.Nop())

	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.CreateAccount(context.Background(), "Id-1", dec("5"))
	assertAppError(t, err, apperror.CodeInternal)
}

func TestAccountService_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	svc := NewAccountService(store, zerolog.Nop())
	ctx := context.Background()

	acc := domain.NewAccount("Id-1", dec("42"))
	store.EXPECT().Lookup(ctx, "Id-1").Return(acc, nil)
	store.EXPECT().Lookup(ctx, "nope").Return(nil, nil)
	store.EXPECT().Lookup(ctx, "err").Return(nil, errors.New("boom"))

	got, err := svc.GetAccount(ctx, "Id-1")
	require.NoError(t, err)
	assert.Same(t, acc, got)

	_, err = svc.GetAccount(ctx, "nope")
	assertAppError(t, err, apperror.CodeAccountNotFound)

	_, err = svc.GetAccount(ctx, "err")
	assertAppError(t, err, apperror.CodeInternal)
}
