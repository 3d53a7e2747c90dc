package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"account-transfer-service/internal/adapter/http/dto"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
	"account-transfer-service/pkg/logger"
	"account-transfer-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Idempotency headers.
const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

const (
	maxIdempotencyKeyLen = 128
	transferKeyPrefix    = "transfer:"

	// Release and Set run past a cancelled request so the key never stays in flight.
	idempotencyWriteTimeout = 2 * time.Second
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
	idempotency ports.IdempotencyStore // nil = Idempotency-Key is ignored
	ttl         time.Duration
	log         zerolog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService, idempotency ports.IdempotencyStore, ttl time.Duration, log zerolog.Logger) *TransferHandler {
	return &TransferHandler{
		transferSvc: transferSvc,
		idempotency: idempotency,
		ttl:         ttl,
		log:         logger.Component(log, "transfer_handler"),
	}
}

// Transfer handles POST /api/v1/transfers.
//
// With an Idempotency-Key header and a configured store, the first completed
// response for a key is replayed for every later request with that key, and
// a request arriving while the key is still in flight gets 409. Store errors
// degrade to processing the request without idempotency.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := bindJSON(c, &req, apperror.Validation); err != nil {
		response.Error(c, err)
		return
	}

	key := c.GetHeader(HeaderIdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		response.Error(c, apperror.Validation("Idempotency-Key is too long"))
		return
	}

	reserved := false
	if key != "" && h.idempotency != nil {
		key = transferKeyPrefix + key
		var done bool
		reserved, done = h.claim(c, key)
		if done {
			return
		}
	}

	ctx := c.Request.Context()
	amount := decimal.RequireFromString(req.Amount.String())

	transfer, err := h.transferSvc.Transfer(ctx, req.AccountFromID, req.AccountToID, amount)
	if err != nil {
		if reserved {
			h.release(ctx, key)
		}
		response.Error(c, err)
		return
	}

	body, err := json.Marshal(response.NewSuccess(c, toTransferResponse(transfer)))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	if reserved {
		h.store(ctx, key, body)
	}

	response.Raw(c, http.StatusCreated, body)
}

// claim replays a stored response or reserves key for this request.
// done is true when a response has already been written.
func (h *TransferHandler) claim(c *gin.Context, key string) (reserved, done bool) {
	ctx := c.Request.Context()

	if h.replay(c, key) {
		return false, true
	}

	ok, err := h.idempotency.Reserve(ctx, key, h.ttl)
	if err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("idempotency reserve failed, processing without it")
		return false, false
	}
	if ok {
		return true, false
	}

	// lost the race: the other request may have finished in between
	if h.replay(c, key) {
		return false, true
	}
	response.Error(c, apperror.ErrDuplicateRequest())
	return false, true
}

func (h *TransferHandler) release(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idempotencyWriteTimeout)
	defer cancel()

	if err := h.idempotency.Release(ctx, key); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

func (h *TransferHandler) store(ctx context.Context, key string, body []byte) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idempotencyWriteTimeout)
	defer cancel()

	if err := h.idempotency.Set(ctx, key, body, h.ttl); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
	}
}

func (h *TransferHandler) replay(c *gin.Context, key string) bool {
	cached, err := h.idempotency.Get(c.Request.Context(), key)
	if err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("idempotency lookup failed")
		return false
	}
	if cached == nil {
		return false
	}
	c.Header(HeaderIdempotentReplayed, "true")
	response.Raw(c, http.StatusCreated, cached)
	return true
}
