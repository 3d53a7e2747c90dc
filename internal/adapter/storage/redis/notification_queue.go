package redis

import (
	"context"
	"encoding/json"
	"time"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const queuePushTimeout = 2 * time.Second

var _ ports.Notifier = (*NotificationQueue)(nil)

// NotificationQueue publishes notifications by appending their JSON form to
// a Redis list, for a separate consumer to deliver.
type NotificationQueue struct {
	client *goredis.Client
	key    string
	log    zerolog.Logger
}

// NewNotificationQueue creates a notifier pushing onto the list at key.
func NewNotificationQueue(client *goredis.Client, key string, log zerolog.Logger) *NotificationQueue {
	return &NotificationQueue{
		client: client,
		key:    key,
		log:    logger.Component(log, "notification_queue"),
	}
}

// Notify enqueues the message. Failures are logged and dropped.
// The push outlives cancellation of ctx but is bounded by its own timeout.
func (q *NotificationQueue) Notify(ctx context.Context, account *domain.Account, message string) {
	payload, err := json.Marshal(domain.Notification{
		AccountID: account.ID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		q.log.Error().Err(err).Str("account_id", account.ID).Msg("failed to marshal notification")
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), queuePushTimeout)
	defer cancel()

	if err := q.client.RPush(pushCtx, q.key, payload).Err(); err != nil {
		q.log.Warn().Err(err).Str("account_id", account.ID).Str("queue", q.key).Msg("failed to enqueue notification")
	}
}
