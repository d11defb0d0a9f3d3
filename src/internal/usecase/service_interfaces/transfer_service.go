package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
	"github.com/api-sage/transfer-engine/src/internal/domain"
)

type TransferService interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (domain.Transfer, error)
	TransferMoney(ctx context.Context, fromID, toID string, amount decimal.Decimal) bool
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}
