package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/transfer-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/transfer-engine/src/internal/domain"
)

// accountStoreStub counts calls and lets a test override either operation.
// Without overrides it delegates to an in-memory repository.
type accountStoreStub struct {
	repo   *memory.AccountRepository
	getFn  func(ctx context.Context, id string) (domain.Account, error)
	saveFn func(ctx context.Context, account domain.Account) error

	gets  atomic.Int64
	saves atomic.Int64
}

func newAccountStoreStub(t *testing.T, balances map[string]string) *accountStoreStub {
	t.Helper()

	repo := memory.NewAccountRepository()
	for id, balance := range balances {
		_, err := repo.Create(context.Background(), domain.Account{ID: id, Balance: decimal.RequireFromString(balance)})
		require.NoError(t, err)
	}
	return &accountStoreStub{repo: repo}
}

func (s *accountStoreStub) GetByID(ctx context.Context, id string) (domain.Account, error) {
	s.gets.Add(1)
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *accountStoreStub) Save(ctx context.Context, account domain.Account) error {
	s.saves.Add(1)
	if s.saveFn != nil {
		return s.saveFn(ctx, account)
	}
	return s.repo.Save(ctx, account)
}

func (s *accountStoreStub) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	account, err := s.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return account.Balance
}

type notification struct {
	AccountID string
	Message   string
}

type notifierStub struct {
	mu   sync.Mutex
	sent []notification
}

func (n *notifierStub) Notify(_ context.Context, account domain.Account, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{AccountID: account.ID, Message: message})
}

func (n *notifierStub) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
