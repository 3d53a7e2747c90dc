package memory

import (
	"context"
	"sync"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
)

var _ ports.AccountStore = (*AccountStore)(nil)

// AccountStore keeps accounts in a map guarded by a RWMutex.
// Accounts live for the lifetime of the process.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]*domain.Account)}
}

// Create registers the account, failing with ACC_002 if the id is taken.
func (s *AccountStore) Create(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return apperror.ErrDuplicateAccountID(account.ID)
	}
	s.accounts[account.ID] = account
	return nil
}

// Lookup returns the account with the id, or nil if there is none.
func (s *AccountStore) Lookup(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accounts[id], nil
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
