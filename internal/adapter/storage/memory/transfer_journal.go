package memory

import (
	"context"
	"sync"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
)

var _ ports.TransferJournal = (*TransferJournal)(nil)

// TransferJournal is an append-only in-memory transfer log.
type TransferJournal struct {
	mu        sync.RWMutex
	transfers []domain.Transfer
}

// NewTransferJournal creates an empty journal.
func NewTransferJournal() *TransferJournal {
	return &TransferJournal{}
}

func (j *TransferJournal) Record(_ context.Context, transfer *domain.Transfer) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.transfers = append(j.transfers, *transfer)
	return nil
}

// ListByAccount walks the log backwards so the newest entries come first.
// A non-positive limit returns every match.
func (j *TransferJournal) ListByAccount(_ context.Context, accountID string, limit int) ([]domain.Transfer, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []domain.Transfer
	for i := len(j.transfers) - 1; i >= 0; i-- {
		if !j.transfers[i].Involves(accountID) {
			continue
		}
		out = append(out, j.transfers[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
