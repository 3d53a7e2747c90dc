package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/pkg/logger"

	"github.com/rs/zerolog"
)

// Webhook headers set on every delivery.
const (
	HeaderWebhookSignature = "X-Signature"
	HeaderWebhookTimestamp = "X-Timestamp"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier POSTs each notification to a fixed URL in the background.
// Failed deliveries are retried after each of retryIntervals and then dropped;
// the outcome is only ever logged.
type WebhookNotifier struct {
	url            string
	signer         *HMACSigner // nil = deliveries are unsigned
	httpClient     HTTPClient
	retryIntervals []time.Duration
	log            zerolog.Logger
	sleep          func(time.Duration)
	inflight       sync.WaitGroup
}

// NewWebhookNotifier creates a webhook notifier. An empty secret disables signing.
func NewWebhookNotifier(url, secret string, httpClient HTTPClient, retryIntervals []time.Duration, log zerolog.Logger) *WebhookNotifier {
	n := &WebhookNotifier{
		url:            url,
		httpClient:     httpClient,
		retryIntervals: retryIntervals,
		log:            logger.Component(log, "webhook_notifier"),
		sleep:          time.Sleep,
	}
	if secret != "" {
		n.signer = NewHMACSigner(secret)
	}
	return n
}

// Notify schedules delivery and returns immediately.
func (n *WebhookNotifier) Notify(_ context.Context, account *domain.Account, message string) {
	payload, err := json.Marshal(domain.Notification{
		AccountID: account.ID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		n.log.Error().Err(err).Str("account_id", account.ID).Msg("webhook: failed to marshal notification")
		return
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.deliverWithRetries(payload, account.ID)
	}()
}

// Wait blocks until all scheduled deliveries have finished.
func (n *WebhookNotifier) Wait() {
	n.inflight.Wait()
}

func (n *WebhookNotifier) deliverWithRetries(payload []byte, accountID string) {
	for attempt := 0; attempt <= len(n.retryIntervals); attempt++ {
		if attempt > 0 {
			n.sleep(n.retryIntervals[attempt-1])
		}

		status, err := n.deliver(payload)
		if err != nil {
			n.log.Warn().Err(err).Str("account_id", accountID).Int("attempt", attempt+1).Msg("webhook: delivery failed")
			continue
		}
		if status >= 200 && status < 300 {
			n.log.Debug().Str("account_id", accountID).Int("attempt", attempt+1).Int("status", status).Msg("webhook: delivered")
			return
		}

		n.log.Warn().Str("account_id", accountID).Int("attempt", attempt+1).Int("status", status).Msg("webhook: non-2xx response")
	}

	n.log.Error().Str("account_id", accountID).Msg("webhook: all retry attempts exhausted")
}

func (n *WebhookNotifier) deliver(payload []byte) (int, error) {
	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	if n.signer != nil {
		ts := time.Now().Unix()
		req.Header.Set(HeaderWebhookTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(HeaderWebhookSignature, n.signer.Sign(CanonicalPayload(ts, payload)))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
