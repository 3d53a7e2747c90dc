package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"account-transfer-service/internal/core/domain"
)

// AccountStore creates and resolves accounts. Implementations guard their own
// state: concurrent Create calls never yield two accounts with one id, and
// Lookup is safe alongside Create.
type AccountStore interface {
	// Create fails with ACC_002 if the id is already present.
	Create(ctx context.Context, account *domain.Account) error
	// Lookup returns nil, nil when no account has the id.
	Lookup(ctx context.Context, id string) (*domain.Account, error)
}

// TransferJournal is an append-only record of completed transfers.
type TransferJournal interface {
	Record(ctx context.Context, transfer *domain.Transfer) error
	// ListByAccount returns transfers involving accountID, newest first.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error)
}

// IdempotencyStore guards a request key against double execution.
type IdempotencyStore interface {
	// Get returns the stored response, or nil if the key is unknown or still in flight.
	Get(ctx context.Context, key string) ([]byte, error)
	// Reserve marks the key as in flight. Returns false if the key is already taken.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
