package handler

import (
	"strconv"

	"account-transfer-service/internal/adapter/http/dto"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"
	"account-transfer-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
	historySvc ports.TransferHistoryService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService, historySvc ports.TransferHistoryService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, historySvc: historySvc}
}

// CreateAccount handles POST /api/v1/accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := bindJSON(c, &req, apperror.ErrInvalidAccount); err != nil {
		response.Error(c, err)
		return
	}

	balance := decimal.Zero
	if req.Balance != "" {
		// already checked by the "decimal" validator
		balance = decimal.RequireFromString(req.Balance.String())
	}

	account, err := h.accountSvc.CreateAccount(c.Request.Context(), req.AccountID, balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account))
}

// GetAccount handles GET /api/v1/accounts/:id.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountSvc.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountResponse(account))
}

// ListTransfers handles GET /api/v1/accounts/:id/transfers?limit=N.
func (h *AccountHandler) ListTransfers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, apperror.Validation("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	accountID := c.Param("id")
	transfers, err := h.historySvc.ListTransfers(c.Request.Context(), accountID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		items = append(items, toTransferResponse(&transfers[i]))
	}
	response.OK(c, dto.TransferListResponse{AccountID: accountID, Transfers: items})
}
