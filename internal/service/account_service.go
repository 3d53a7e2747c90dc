package service

import (
	"context"
	"fmt"
	"strings"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
	"account-transfer-service/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type accountService struct {
	store ports.AccountStore
	log   zerolog.Logger
}

// NewAccountService creates an AccountService over the given store.
func NewAccountService(store ports.AccountStore, log zerolog.Logger) ports.AccountService {
	return &accountService{store: store, log: logger.Component(log, "account_service")}
}

func (s *accountService) CreateAccount(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ErrInvalidAccount("Account id must not be empty.")
	}
	if balance.IsNegative() {
		return nil, apperror.ErrInvalidAccount("Initial balance must be positive.")
	}
	if !domain.ValidMoney(balance) {
		return nil, apperror.ErrInvalidAccount("Initial balance is out of range.")
	}

	account := domain.NewAccount(id, balance)
	if err := s.store.Create(ctx, account); err != nil {
		if apperror.HasCode(err, apperror.CodeDuplicateAccountID) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}

	s.log.Info().Str("account_id", id).Str("balance", balance.String()).Msg("account created")
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.store.Lookup(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound(id)
	}
	return account, nil
}
