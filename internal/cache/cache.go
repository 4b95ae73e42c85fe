// Package cache holds search results between identical asset queries.
// The cache is advisory: callers fall through to the database on a miss,
// and every write to the inventory invalidates it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// QueryCache stores encoded query results by key.
type QueryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context)
}

// Key builds the cache key "<page>-<search>-<filters JSON>". Filter keys
// are serialized in sorted order so equal filters give equal keys.
func Key(page int, search string, filters map[string]string) string {
	if filters == nil {
		filters = map[string]string{}
	}
	encoded, err := json.Marshal(filters)
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf("%d-%s-%s", page, search, encoded)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte)        {}
func (Noop) Invalidate(context.Context)                 {}
