package locktable

import "context"

// Handle is a mutual-exclusion lock whose acquisition can be abandoned when a
// context ends. The zero value is not usable; handles come from Table.Handle.
type Handle struct {
	slot chan struct{}
}

func newHandle() *Handle {
	return &Handle{slot: make(chan struct{}, 1)}
}

// Lock blocks until the handle is held or ctx is done.
func (h *Handle) Lock(ctx context.Context) error {
	// Prefer the lock over an already-expired context when both are ready.
	select {
	case h.slot <- struct{}{}:
		return nil
	default:
	}

	select {
	case h.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryLock acquires the handle without blocking and reports whether it did.
func (h *Handle) TryLock() bool {
	select {
	case h.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases the handle. Unlocking a handle that is not held panics.
func (h *Handle) Unlock() {
	select {
	case <-h.slot:
	default:
		panic("locktable: unlock of unlocked handle")
	}
}
