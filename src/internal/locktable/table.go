// Package locktable provides the process-wide registry of per-account locks.
//
// A Table is created once at start-up and grows monotonically: the first
// reference to an account identifier creates its Handle and every later
// reference, from any goroutine, observes that same Handle. Entries are never
// removed.
//
// Two handles are always acquired in the order defined by Less, whichever
// account is the source of a transfer. Opposite transfers (A to B and B to A)
// therefore contend on the same first lock instead of deadlocking.
package locktable

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is the shard count used when New is given a non-positive one.
const DefaultShards = 64

type shard struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// Table maps account identifiers to their lock handles. It is safe for
// concurrent use.
type Table struct {
	shards []shard
	mask   uint64
}

// New returns an empty table with shards rounded up to a power of two.
func New(shards int) *Table {
	if shards <= 0 {
		shards = DefaultShards
	}
	n := 1
	for n < shards {
		n <<= 1
	}

	t := &Table{
		shards: make([]shard, n),
		mask:   uint64(n - 1),
	}
	for i := range t.shards {
		t.shards[i].handles = make(map[string]*Handle)
	}
	return t
}

// Handle returns the lock handle for id, creating it on first reference.
func (t *Table) Handle(id string) *Handle {
	s := &t.shards[xxhash.Sum64String(id)&t.mask]

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	if !ok {
		h = newHandle()
		s.handles[id] = h
	}
	return h
}

// Len reports how many identifiers have been referenced.
func (t *Table) Len() int {
	total := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		total += len(s.handles)
		s.mu.Unlock()
	}
	return total
}

// Less is the global acquisition order over account identifiers.
func Less(a, b string) bool {
	return a < b
}

// Ordered returns a and b sorted by Less.
func Ordered(a, b string) (first, second string) {
	if Less(b, a) {
		return b, a
	}
	return a, b
}

// releaseOnce unlocks handles in the given order on its first call only.
func releaseOnce(handles ...*Handle) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, h := range handles {
				h.Unlock()
			}
		})
	}
}

// AcquirePair locks the handles for a and b in global order and returns a
// function releasing both; calls after the first are no-ops. When a == b the
// single handle is locked once. If ctx ends before both locks are held,
// nothing stays locked and ctx.Err() is returned.
func (t *Table) AcquirePair(ctx context.Context, a, b string) (func(), error) {
	first, second := Ordered(a, b)

	h1 := t.Handle(first)
	if err := h1.Lock(ctx); err != nil {
		return nil, err
	}
	if first == second {
		return releaseOnce(h1), nil
	}

	h2 := t.Handle(second)
	if err := h2.Lock(ctx); err != nil {
		h1.Unlock()
		return nil, err
	}

	return releaseOnce(h2, h1), nil
}
