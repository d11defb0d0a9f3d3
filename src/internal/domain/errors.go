package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrRecordExists = errors.New("Record already exists")

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLockTimeout       = errors.New("timed out waiting for account lock")
	ErrStoreUnavailable  = errors.New("account store unavailable")
	ErrPersistenceFailed = errors.New("failed to persist transfer")
)
