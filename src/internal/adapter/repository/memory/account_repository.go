package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/transfer-engine/src/internal/domain"
)

// AccountRepository keeps accounts in process memory. Every read returns a
// copy, so callers see a snapshot as of the call and mutate it only through
// Save.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	now      func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]domain.Account),
		now:      time.Now,
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	id := strings.TrimSpace(account.ID)
	if id == "" {
		return domain.Account{}, fmt.Errorf("create account: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return domain.Account{}, fmt.Errorf("create account %q: %w", id, domain.ErrRecordExists)
	}

	account.ID = id
	account.UpdatedAt = r.now().UTC()
	r.accounts[id] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) Save(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return fmt.Errorf("save account %q: %w", account.ID, domain.ErrRecordNotFound)
	}

	account.UpdatedAt = r.now().UTC()
	r.accounts[account.ID] = account
	return nil
}
