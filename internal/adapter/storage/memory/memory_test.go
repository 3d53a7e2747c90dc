package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStore_CreateAndLookup(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	acc := domain.NewAccount("Id-123", decimal.NewFromInt(1000))
	require.NoError(t, store.Create(ctx, acc))

	got, err := store.Lookup(ctx, "Id-123")
	require.NoError(t, err)
	assert.Same(t, acc, got)
}

func TestAccountStore_LookupMissing(t *testing.T) {
	store := NewAccountStore()

	got, err := store.Lookup(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAccountStore_DuplicateID(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, domain.NewAccount("Id-dup", decimal.Zero)))
	err := store.Create(ctx, domain.NewAccount("Id-dup", decimal.NewFromInt(5)))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeDuplicateAccountID, appErr.Code)
	assert.Equal(t, "Account id Id-dup already exists!", appErr.Message)

	got, _ := store.Lookup(ctx, "Id-dup")
	assert.True(t, got.Balance().IsZero(), "first account must be kept")
}

func TestAccountStore_ConcurrentCreateSameID(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	var created atomic.Int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Create(ctx, domain.NewAccount("Id-race", decimal.Zero)); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), created.Load())
	assert.Equal(t, 1, store.Len())
}

func TestAccountStore_ConcurrentCreateAndLookup(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("Id-%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Create(ctx, domain.NewAccount(id, decimal.Zero))
		}()
		go func() {
			defer wg.Done()
			_, err := store.Lookup(ctx, id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, store.Len())
}

func newTransfer(from, to string, amount int64, at time.Time) *domain.Transfer {
	return &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        decimal.NewFromInt(amount),
		CreatedAt:     at,
	}
}

func TestTransferJournal_ListByAccount(t *testing.T) {
	journal := NewTransferJournal()
	ctx := context.Background()
	now := time.Now().UTC()

	t1 := newTransfer("A", "B", 10, now)
	t2 := newTransfer("B", "C", 20, now.Add(time.Second))
	t3 := newTransfer("C", "A", 30, now.Add(2*time.Second))
	for _, tr := range []*domain.Transfer{t1, t2, t3} {
		require.NoError(t, journal.Record(ctx, tr))
	}

	got, err := journal.ListByAccount(ctx, "A", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, t3.ID, got[0].ID, "newest first")
	assert.Equal(t, t1.ID, got[1].ID)

	limited, err := journal.ListByAccount(ctx, "B", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, t2.ID, limited[0].ID)

	none, err := journal.ListByAccount(ctx, "Z", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
