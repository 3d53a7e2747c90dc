package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Notification is the delivered form of a message about a completed transfer.
type Notification struct {
	AccountID string    `json:"account_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SentMessage is the text sent to the debited party.
func SentMessage(amount decimal.Decimal, toID string) string {
	return fmt.Sprintf("Transferred %s to account %s", amount.String(), toID)
}

// ReceivedMessage is the text sent to the credited party.
func ReceivedMessage(amount decimal.Decimal, fromID string) string {
	return fmt.Sprintf("Received %s from account %s", amount.String(), fromID)
}
