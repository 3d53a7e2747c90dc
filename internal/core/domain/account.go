package domain

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Account is a monetary account with its own exclusive lock.
// Debit, Credit and HeldBalance require the caller to hold the lock; the lock
// is exported through Lock/Unlock so that a transfer can hold two accounts at once.
type Account struct {
	ID string

	mu      sync.Mutex
	balance decimal.Decimal
}

// NewAccount creates an account with the given opening balance.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{ID: id, balance: balance}
}

// Lock acquires the account's lock.
func (a *Account) Lock() { a.mu.Lock() }

// Unlock releases the account's lock.
func (a *Account) Unlock() { a.mu.Unlock() }

// Debit subtracts amount from the balance. No bounds check is made here.
func (a *Account) Debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

// HeldBalance returns the balance for a caller that already holds the lock.
func (a *Account) HeldBalance() decimal.Decimal {
	return a.balance
}

// Balance returns a consistent snapshot of the balance.
// It must not be called while holding the account's lock.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// LockOrder returns the two accounts in the order their locks must be taken:
// the lexicographically smaller id first. Every code path that locks two
// accounts goes through here so that all transfers agree on one global order.
func LockOrder(a, b *Account) (first, second *Account) {
	if strings.Compare(a.ID, b.ID) <= 0 {
		return a, b
	}
	return b, a
}
