package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/usecase/service_interfaces"
)

type AccountService struct {
	accountRepo domain.AccountRepository
}

func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	id := strings.TrimSpace(accountID)
	if id == "" {
		err := errors.New("accountId is required")
		return commons.FailureResponse[models.AccountResponse](commons.CodeValidationFailed, commons.MessageValidationFailed, err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.FailureResponse[models.AccountResponse](commons.CodeAccountNotFound, commons.MessageAccountNotFound), fmt.Errorf("%w: %q", domain.ErrAccountNotFound, id)
		}
		logger.Error("account service get account failed", err, logger.Fields{"accountId": id})
		return commons.FailureResponse[models.AccountResponse](commons.CodeServiceUnavailable, commons.MessageServiceUnavailable, "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse(commons.MessageAccountRetrieved, models.AccountResponse{
		AccountID: account.ID,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	}), nil
}

// SeedAccounts creates the given accounts, skipping ids that already exist.
// It returns how many accounts were created.
func (s *AccountService) SeedAccounts(ctx context.Context, balances map[string]decimal.Decimal) (int, error) {
	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	created := 0
	for _, id := range ids {
		_, err := s.accountRepo.Create(ctx, domain.Account{ID: id, Balance: balances[id]})
		if errors.Is(err, domain.ErrRecordExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed account %q: %w", id, err)
		}
		created++
	}

	logger.Info("account service seeded accounts", logger.Fields{
		"requested": len(ids),
		"created":   created,
	})
	return created, nil
}

var _ service_interfaces.AccountService = (*AccountService)(nil)
