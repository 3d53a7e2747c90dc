package service

import (
	"context"
	"errors"
	"testing"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports/mocks"
	"account-transfer-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistoryService_ListTransfers_LimitClamping(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default on zero", 0, 50},
		{"default on negative", -3, 50},
		{"passes through", 20, 20},
		{"clamped to max", 10_000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockAccountStore(ctrl)
			journal := mocks.NewMockTransferJournal(ctrl)
			svc := NewHistoryService(store, journal)
			ctx := context.Background()

			want := []domain.Transfer{{ID: uuid.New(), FromAccountID: "A", ToAccountID: "B", Amount: dec("1")}}
			store.EXPECT().Lookup(ctx, "A").Return(domain.NewAccount("A", dec("0")), nil)
			journal.EXPECT().ListByAccount(ctx, "A", tt.wantLimit).Return(want, nil)

			got, err := svc.ListTransfers(ctx, "A", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestHistoryService_ListTransfers_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	journal := mocks.NewMockTransferJournal(ctrl)
	svc := NewHistoryService(store, journal)

	store.EXPECT().Lookup(gomock.Any(), "ghost").Return(nil, nil)

	_, err := svc.ListTransfers(context.Background(), "ghost", 10)
	assertAppError(t, err, apperror.CodeAccountNotFound)
}

func TestHistoryService_ListTransfers_JournalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	journal := mocks.NewMockTransferJournal(ctrl)
	svc := NewHistoryService(store, journal)

	store.EXPECT().Lookup(gomock.Any(), "A").Return(domain.NewAccount("A", dec("0")), nil)
	journal.EXPECT().ListByAccount(gomock.Any(), "A", 10).Return(nil, errors.New("timeout"))

	_, err := svc.ListTransfers(context.Background(), "A", 10)
	assertAppError(t, err, apperror.CodeInternal)
}
