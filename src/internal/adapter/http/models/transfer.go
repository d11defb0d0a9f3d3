package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

// Validate checks the identifiers only; amount rules belong to the engine.
func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromAccountID) == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if strings.TrimSpace(r.ToAccountID) == "" {
		errs = append(errs, "toAccountId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	TransferID    string          `json:"transferId"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	FromBalance   decimal.Decimal `json:"fromBalance"`
	ToBalance     decimal.Decimal `json:"toBalance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
