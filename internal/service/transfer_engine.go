package service

import (
	"context"
	"fmt"
	"time"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
	"account-transfer-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ ports.TransferService = (*TransferEngine)(nil)

// journalTimeout bounds the journal write, which outlives a cancelled request
// once funds have moved.
const journalTimeout = 5 * time.Second

// TransferEngine moves funds between two accounts of an AccountStore.
// It holds no state of its own beyond its collaborators.
type TransferEngine struct {
	store    ports.AccountStore
	notifier ports.Notifier
	journal  ports.TransferJournal // nil = transfers are not journaled
	log      zerolog.Logger
	now      func() time.Time
}

// NewTransferEngine creates a new TransferEngine.
func NewTransferEngine(
	store ports.AccountStore,
	notifier ports.Notifier,
	journal ports.TransferJournal,
	log zerolog.Logger,
) *TransferEngine {
	return &TransferEngine{
		store:    store,
		notifier: notifier,
		journal:  journal,
		log:      logger.Component(log, "transfer_engine"),
		now:      time.Now,
	}
}

// Transfer debits amount from fromID and credits it to toID.
//
// Both account locks are taken in the order given by domain.LockOrder, so
// transfers touching the same accounts can never wait on each other in a
// cycle. Funds are checked and moved while both locks are held; the journal
// and the notifier are called only after the locks are released.
func (e *TransferEngine) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.Transfer, error) {
	if !amount.IsPositive() || !domain.ValidMoney(amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	from, err := e.lookup(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := e.lookup(ctx, toID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, apperror.ErrRequestCancelled(err)
	}

	if err := e.move(from, to, amount); err != nil {
		e.log.Debug().
			Str("from", fromID).
			Str("to", toID).
			Str("amount", amount.String()).
			Err(err).
			Msg("transfer rejected")
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		CreatedAt:     e.now().UTC(),
	}

	if e.journal != nil {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
		err := e.journal.Record(recordCtx, transfer)
		cancel()
		if err != nil {
			e.log.Warn().Err(err).Str("transfer_id", transfer.ID.String()).Msg("failed to journal transfer")
		}
	}

	e.notifier.Notify(ctx, from, domain.SentMessage(amount, toID))
	e.notifier.Notify(ctx, to, domain.ReceivedMessage(amount, fromID))

	e.log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("from", fromID).
		Str("to", toID).
		Str("amount", amount.String()).
		Msg("transfer completed")

	return transfer, nil
}

// move applies the debit/credit pair under both account locks.
func (e *TransferEngine) move(from, to *domain.Account, amount decimal.Decimal) error {
	unlock := lockPair(from, to)
	defer unlock()

	if from.HeldBalance().LessThan(amount) {
		return apperror.ErrInsufficientFunds()
	}

	from.Debit(amount)
	to.Credit(amount)
	return nil
}

func (e *TransferEngine) lookup(ctx context.Context, id string) (*domain.Account, error) {
	account, err := e.store.Lookup(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup account %s: %w", id, err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(id)
	}
	return account, nil
}

// lockPair locks both accounts in global order and returns a func that
// releases them in reverse order. The same account is locked only once.
func lockPair(a, b *domain.Account) (unlock func()) {
	if a == b {
		a.Lock()
		return a.Unlock
	}

	first, second := domain.LockOrder(a, b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
