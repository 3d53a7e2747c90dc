package dto

import "encoding/json"

// CreateAccountRequest is the request body for account creation.
// Balance accepts a JSON number or a decimal string and defaults to zero.
type CreateAccountRequest struct {
	AccountID string      `json:"account_id" binding:"required,max=64,safe_id"`
	Balance   json.Number `json:"balance" binding:"omitempty,decimal"`
}

// TransferRequest is the request body for a transfer between two accounts.
type TransferRequest struct {
	AccountFromID string      `json:"account_from_id" binding:"required,max=64,safe_id"`
	AccountToID   string      `json:"account_to_id" binding:"required,max=64,safe_id"`
	Amount        json.Number `json:"amount" binding:"required,decimal"`
}

// AccountResponse is the response body for an account.
type AccountResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// TransferResponse is the response body for a completed transfer.
type TransferResponse struct {
	ID            string `json:"id"`
	AccountFromID string `json:"account_from_id"`
	AccountToID   string `json:"account_to_id"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"created_at"`
}

// TransferListResponse is the response body for an account's transfer history.
type TransferListResponse struct {
	AccountID string             `json:"account_id"`
	Transfers []TransferResponse `json:"transfers"`
}
