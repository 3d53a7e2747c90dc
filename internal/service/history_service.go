package service

import (
	"context"
	"fmt"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type historyService struct {
	store   ports.AccountStore
	journal ports.TransferJournal
}

// NewHistoryService creates a TransferHistoryService reading from journal.
func NewHistoryService(store ports.AccountStore, journal ports.TransferJournal) ports.TransferHistoryService {
	return &historyService{store: store, journal: journal}
}

// ListTransfers returns the newest transfers involving accountID.
// limit is clamped to (0, 500]; zero or negative selects the default of 50.
func (s *historyService) ListTransfers(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error) {
	account, err := s.store.Lookup(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(accountID)
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	transfers, err := s.journal.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transfers: %w", err))
	}
	return transfers, nil
}
