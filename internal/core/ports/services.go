package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"account-transfer-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Notifier receives post-transfer notifications. It is fire-and-forget:
// delivery failures are handled (logged) by the implementation.
type Notifier interface {
	Notify(ctx context.Context, account *domain.Account, message string)
}

// --- Service Ports (Business Logic) ---

// TransferService moves funds between two accounts.
type TransferService interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.Transfer, error)
}

// AccountService creates and reads accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// TransferHistoryService lists journaled transfers.
type TransferHistoryService interface {
	ListTransfers(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error)
}
