package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a posted bank transaction. Amount is signed: negative is an outflow.
type Transaction struct {
	ID           uuid.UUID       `db:"id"`
	AccountID    uuid.UUID       `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	Date         time.Time       `db:"date"`
	MerchantName *string         `db:"merchant_name"`
	Description  string          `db:"description"`
	CategoryID   *uuid.UUID      `db:"category_id"`
	IconURL      *string         `db:"icon_url"`
	Pending      bool            `db:"pending"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// MerchantKey returns the trimmed merchant name, falling back to the description.
func (t *Transaction) MerchantKey() string {
	if t.MerchantName != nil {
		if name := strings.TrimSpace(*t.MerchantName); name != "" {
			return name
		}
	}
	return strings.TrimSpace(t.Description)
}

// IsOutflow reports whether the transaction moved money out of the account.
func (t *Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}
