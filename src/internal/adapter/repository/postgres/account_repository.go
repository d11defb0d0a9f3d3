package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	id,
	balance
) VALUES ($1, $2)
RETURNING updated_at`

	var updatedAt time.Time
	if err := r.db.QueryRowContext(ctx, query, account.ID, account.Balance).Scan(&updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, fmt.Errorf("create account %q: %w", account.ID, domain.ErrRecordExists)
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.UpdatedAt = updatedAt
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT id, balance, updated_at
FROM accounts
WHERE id = $1`

	var account domain.Account
	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&balance,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	account.Balance = balance
	return account, nil
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2::numeric,
    updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, account.ID, account.Balance.String())
	if err != nil {
		logger.Error("account repository save failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return fmt.Errorf("save account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save account rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save account %q: %w", account.ID, domain.ErrRecordNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
