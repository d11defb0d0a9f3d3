package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	SeedAccounts(ctx context.Context, balances map[string]decimal.Decimal) (int, error)
}
