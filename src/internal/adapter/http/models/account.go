package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
