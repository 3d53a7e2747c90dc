package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is the receipt of a completed movement of funds between two accounts.
type Transfer struct {
	ID            uuid.UUID       `json:"id"`
	FromAccountID string          `json:"account_from_id"`
	ToAccountID   string          `json:"account_to_id"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsSelfTransfer reports whether funds moved within a single account.
func (t *Transfer) IsSelfTransfer() bool {
	return t.FromAccountID == t.ToAccountID
}

// Involves reports whether accountID is either side of the transfer.
func (t *Transfer) Involves(accountID string) bool {
	return t.FromAccountID == accountID || t.ToAccountID == accountID
}
