package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/locktable"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/metrics"
	"github.com/api-sage/transfer-engine/src/internal/usecase/service_interfaces"
)

// TransferService moves funds between two accounts of an AccountStore.
//
// Both account locks are taken from the shared lock table in the table's
// global order, never in from/to order, so concurrent opposite transfers
// cannot deadlock. Balances are re-read, checked, mutated, saved and
// announced while both locks are held.
type TransferService struct {
	accounts        domain.AccountStore
	notifier        domain.Notifier
	locks           *locktable.Table
	lockWaitTimeout time.Duration
	now             func() time.Time
}

// NewTransferService builds the engine. A nil notifier discards notifications
// and a nil lock table gets a private one; lockWaitTimeout of zero waits for
// locks indefinitely.
func NewTransferService(
	accounts domain.AccountStore,
	notifier domain.Notifier,
	locks *locktable.Table,
	lockWaitTimeout time.Duration,
) *TransferService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if locks == nil {
		locks = locktable.New(locktable.DefaultShards)
	}

	return &TransferService{
		accounts:        accounts,
		notifier:        notifier,
		locks:           locks,
		lockWaitTimeout: lockWaitTimeout,
		now:             time.Now,
	}
}

// TransferMoney reports whether Transfer succeeded.
func (s *TransferService) TransferMoney(ctx context.Context, fromID, toID string, amount decimal.Decimal) bool {
	_, err := s.Transfer(ctx, fromID, toID, amount)
	return err == nil
}

// Transfer moves amount from fromID to toID. Failures are reported as errors
// matching one of domain.ErrInvalidAmount, domain.ErrAccountNotFound,
// domain.ErrInsufficientFunds, domain.ErrLockTimeout,
// domain.ErrStoreUnavailable or domain.ErrPersistenceFailed; none of them
// leaves a balance changed.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (domain.Transfer, error) {
	transfer, err := s.transfer(ctx, fromID, toID, amount)
	metrics.TransfersTotal.WithLabelValues(outcomeOf(err)).Inc()
	return transfer, err
}

func (s *TransferService) transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (domain.Transfer, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	if _, err := s.resolve(ctx, fromID); err != nil {
		return domain.Transfer{}, err
	}
	if _, err := s.resolve(ctx, toID); err != nil {
		return domain.Transfer{}, err
	}

	release, err := s.acquire(ctx, fromID, toID)
	if err != nil {
		return domain.Transfer{}, err
	}
	defer release()

	// Store reads are snapshots; only what is read under the locks is
	// authoritative.
	from, err := s.resolve(ctx, fromID)
	if err != nil {
		return domain.Transfer{}, err
	}
	to, err := s.resolve(ctx, toID)
	if err != nil {
		return domain.Transfer{}, err
	}

	if !from.HasSufficientFunds(amount) {
		return domain.Transfer{}, domain.ErrInsufficientFunds
	}

	result := domain.Transfer{
		ID:            uuid.NewString(),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Status:        domain.TransferStatusSuccess,
		CreatedAt:     s.now().UTC(),
	}

	if result.IsSelfTransfer() {
		result.FromBalance = from.Balance
		result.ToBalance = from.Balance
		return result, nil
	}

	debited, credited := from, to
	debited.Balance = from.Balance.Sub(amount)
	credited.Balance = to.Balance.Add(amount)

	if err := s.persist(ctx, from, to, debited, credited); err != nil {
		return domain.Transfer{}, err
	}

	s.notify(ctx, debited, fmt.Sprintf("Transferred $%s to account %s", amount.String(), toID))
	s.notify(ctx, credited, fmt.Sprintf("Received $%s from account %s", amount.String(), fromID))

	result.FromBalance = debited.Balance
	result.ToBalance = credited.Balance
	return result, nil
}

// TransferFunds is the request-model entry point used by the HTTP adapter.
func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.FailureResponse[models.TransferResponse](commons.CodeValidationFailed, commons.MessageValidationFailed, err.Error()), err
	}

	transfer, err := s.Transfer(ctx, strings.TrimSpace(req.FromAccountID), strings.TrimSpace(req.ToAccountID), req.Amount)
	if err != nil {
		code, message := failureOf(err)
		if code == commons.CodeServiceUnavailable || code == commons.CodeTransferFailed {
			logger.Error("transfer service transfer failed", err, logger.Fields{
				"fromAccountId": req.FromAccountID,
				"toAccountId":   req.ToAccountID,
			})
			return commons.FailureResponse[models.TransferResponse](code, message, "Unable to process transfer right now"), err
		}
		return commons.FailureResponse[models.TransferResponse](code, message, err.Error()), err
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"transferId":    transfer.ID,
		"fromAccountId": transfer.FromAccountID,
		"toAccountId":   transfer.ToAccountID,
		"amount":        transfer.Amount.String(),
	})

	return commons.SuccessResponse(commons.MessageTransferSuccessful, mapTransferToResponse(transfer)), nil
}

func (s *TransferService) resolve(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: %q", domain.ErrAccountNotFound, id)
		}
		return domain.Account{}, fmt.Errorf("%w: get account %q: %w", domain.ErrStoreUnavailable, id, err)
	}
	return account, nil
}

func (s *TransferService) acquire(ctx context.Context, fromID, toID string) (func(), error) {
	lockCtx := ctx
	if s.lockWaitTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockWaitTimeout)
		defer cancel()
	}

	start := time.Now()
	release, err := s.locks.AcquirePair(lockCtx, fromID, toID)
	metrics.LockWaitSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLockTimeout, err)
	}
	return release, nil
}

// persist saves both updated accounts. If either save fails the original
// snapshots are written back so the store never holds half a transfer.
func (s *TransferService) persist(ctx context.Context, from, to, debited, credited domain.Account) error {
	err := s.accounts.Save(ctx, debited)
	if err == nil {
		err = s.accounts.Save(ctx, credited)
	}
	if err == nil {
		return nil
	}

	for _, original := range []domain.Account{from, to} {
		if restoreErr := s.accounts.Save(context.WithoutCancel(ctx), original); restoreErr != nil {
			logger.Error("transfer service restore after failed save", restoreErr, logger.Fields{
				"accountId": original.ID,
			})
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
}

// notify delivers one notification. A panicking notifier is logged and counted
// as a failed delivery; the transfer has already been persisted.
func (s *TransferService) notify(ctx context.Context, account domain.Account, message string) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.NotificationsTotal.WithLabelValues(metrics.NotificationFailed).Inc()
			logger.Error("transfer service notifier panicked", fmt.Errorf("%v", rec), logger.Fields{
				"accountId": account.ID,
			})
		}
	}()
	s.notifier.Notify(ctx, account, message)
}

func failureOf(err error) (code, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return commons.CodeValidationFailed, commons.MessageValidationFailed
	case errors.Is(err, domain.ErrAccountNotFound):
		return commons.CodeAccountNotFound, commons.MessageAccountNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return commons.CodeInsufficientFunds, commons.MessageInsufficientFunds
	case errors.Is(err, domain.ErrLockTimeout), errors.Is(err, domain.ErrStoreUnavailable):
		return commons.CodeServiceUnavailable, commons.MessageServiceUnavailable
	default:
		return commons.CodeTransferFailed, commons.MessageTransferFailed
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrInvalidAmount):
		return metrics.OutcomeInvalidAmount
	case errors.Is(err, domain.ErrAccountNotFound):
		return metrics.OutcomeAccountNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return metrics.OutcomeInsufficientFunds
	case errors.Is(err, domain.ErrLockTimeout):
		return metrics.OutcomeLockTimeout
	case errors.Is(err, domain.ErrStoreUnavailable):
		return metrics.OutcomeStoreUnavailable
	default:
		return metrics.OutcomePersistenceFailed
	}
}

func mapTransferToResponse(transfer domain.Transfer) models.TransferResponse {
	return models.TransferResponse{
		TransferID:    transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        transfer.Amount,
		FromBalance:   transfer.FromBalance,
		ToBalance:     transfer.ToBalance,
		Status:        string(transfer.Status),
		CreatedAt:     transfer.CreatedAt,
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Account, string) {}

var _ service_interfaces.TransferService = (*TransferService)(nil)
