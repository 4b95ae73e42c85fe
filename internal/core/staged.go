package core

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/cache"
)

// StagedList is a short list of items with optimistic insertion: an item is
// staged under a temporary id, then either confirmed (replaced by the stored
// version) or failed (removed). Every transition invalidates the query cache.
type StagedList[T any] struct {
	id    func(T) string
	cache cache.QueryCache

	mu    sync.Mutex
	items []stagedItem[T]
	limit int
}

type stagedItem[T any] struct {
	key     string
	item    T
	pending bool
}

// NewStagedList creates a list keyed by id. A nil cache is allowed.
func NewStagedList[T any](id func(T) string, c cache.QueryCache) *StagedList[T] {
	if c == nil {
		c = cache.Noop{}
	}
	return &StagedList[T]{id: id, cache: c, limit: DefaultRecentLimit}
}

// Stage puts item at the front under a new temporary id and returns it.
func (l *StagedList[T]) Stage(ctx context.Context, item T) string {
	tempID := "temp-" + uuid.NewString()

	l.mu.Lock()
	l.items = slices.Insert(l.items, 0, stagedItem[T]{key: tempID, item: item, pending: true})
	l.trimLocked()
	l.mu.Unlock()

	l.cache.Invalidate(ctx)
	return tempID
}

// Confirm replaces the staged entry with the stored item. If the entry was
// trimmed away meanwhile, the item is added at the front.
func (l *StagedList[T]) Confirm(ctx context.Context, tempID string, stored T) {
	l.mu.Lock()
	entry := stagedItem[T]{key: l.id(stored), item: stored}
	if i := l.indexLocked(tempID); i >= 0 {
		l.items[i] = entry
	} else {
		l.items = slices.Insert(l.items, 0, entry)
		l.trimLocked()
	}
	l.mu.Unlock()

	l.cache.Invalidate(ctx)
}

// Fail removes the staged entry.
func (l *StagedList[T]) Fail(ctx context.Context, tempID string) {
	l.mu.Lock()
	if i := l.indexLocked(tempID); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
	l.mu.Unlock()

	l.cache.Invalidate(ctx)
}

// Replace updates a confirmed item in place, if present.
func (l *StagedList[T]) Replace(ctx context.Context, item T) {
	l.mu.Lock()
	if i := l.indexLocked(l.id(item)); i >= 0 {
		l.items[i].item = item
	}
	l.mu.Unlock()

	l.cache.Invalidate(ctx)
}

// Remove drops a confirmed item by id.
func (l *StagedList[T]) Remove(ctx context.Context, id string) {
	l.mu.Lock()
	if i := l.indexLocked(id); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
	l.mu.Unlock()

	l.cache.Invalidate(ctx)
}

// Reset replaces the confirmed contents, keeping pending entries in front.
func (l *StagedList[T]) Reset(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := slices.DeleteFunc(l.items, func(e stagedItem[T]) bool { return !e.pending })
	for _, it := range items {
		kept = append(kept, stagedItem[T]{key: l.id(it), item: it})
	}
	l.items = kept
	l.trimLocked()
}

// Items returns the current entries, pending ones included.
func (l *StagedList[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, len(l.items))
	for i, e := range l.items {
		out[i] = e.item
	}
	return out
}

// Len returns the number of entries.
func (l *StagedList[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Pending reports whether tempID is still staged.
func (l *StagedList[T]) Pending(tempID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(tempID)
	return i >= 0 && l.items[i].pending
}

func (l *StagedList[T]) indexLocked(key string) int {
	return slices.IndexFunc(l.items, func(e stagedItem[T]) bool { return e.key == key })
}

func (l *StagedList[T]) trimLocked() {
	if l.limit > 0 && len(l.items) > l.limit {
		l.items = l.items[:l.limit]
	}
}
