package service

import (
	"context"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/logger"

	"github.com/rs/zerolog"
)

// LogNotifier writes every notification as a structured log line.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.Component(log, "notifier")}
}

func (n *LogNotifier) Notify(_ context.Context, account *domain.Account, message string) {
	n.log.Info().
		Str("account_id", account.ID).
		Str("message", message).
		Msg("transfer notification")
}

// MultiNotifier fans each notification out to all of its notifiers in order.
type MultiNotifier []ports.Notifier

func (m MultiNotifier) Notify(ctx context.Context, account *domain.Account, message string) {
	for _, n := range m {
		n.Notify(ctx, account, message)
	}
}
