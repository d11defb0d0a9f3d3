package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const TransferStatusSuccess TransferStatus = "SUCCESS"

// Transfer is the outcome of a completed transfer call. Balances are the values
// persisted while both account locks were held.
type Transfer struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	FromBalance   decimal.Decimal
	ToBalance     decimal.Decimal
	Status        TransferStatus
	CreatedAt     time.Time
}

func (t Transfer) IsSelfTransfer() bool {
	return t.FromAccountID == t.ToAccountID
}
