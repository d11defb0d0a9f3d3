package domain

import "context"

// AccountStore is the narrow view of account storage used by the transfer
// engine. GetByID returns ErrRecordNotFound for unknown identifiers.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (Account, error)
	Save(ctx context.Context, account Account) error
}

type AccountRepository interface {
	AccountStore
	Create(ctx context.Context, account Account) (Account, error)
}
