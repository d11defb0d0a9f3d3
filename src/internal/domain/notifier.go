package domain

import "context"

// Notifier delivers a message to an account holder. Delivery is best effort:
// implementations log and swallow their own failures.
type Notifier interface {
	Notify(ctx context.Context, account Account, message string)
}
