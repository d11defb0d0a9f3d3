package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        string
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

// HasSufficientFunds reports whether the balance covers amount.
func (a Account) HasSufficientFunds(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
