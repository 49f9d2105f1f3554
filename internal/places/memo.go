package places

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memo remembers category search results per coordinate for a short time.
// An expired entry is dropped when it is read, and a janitor sweeps the rest
// once per ttl so keys that are never asked for again do not pile up.
type Memo struct {
	searcher Searcher
	entries  *cache.Cache
	onHit    func()
	onMiss   func()
}

// NewMemo wraps searcher. A non-positive ttl disables memoization.
func NewMemo(searcher Searcher, ttl time.Duration) *Memo {
	if ttl <= 0 {
		ttl = time.Nanosecond
	}
	return &Memo{
		searcher: searcher,
		entries:  cache.New(ttl, ttl),
	}
}

// Observe registers counters for hits and misses.
func (m *Memo) Observe(onHit, onMiss func()) {
	m.onHit = onHit
	m.onMiss = onMiss
}

func (m *Memo) SearchKeyword(ctx context.Context, q KeywordQuery) ([]Place, error) {
	return m.searcher.SearchKeyword(ctx, q)
}

// SearchCategory serves from memory when the same coordinate, category,
// radius and size were searched recently. Failures are never memoized.
func (m *Memo) SearchCategory(ctx context.Context, q CategoryQuery) ([]Place, error) {
	key := memoKey(q)
	if cached, ok := m.entries.Get(key); ok {
		if m.onHit != nil {
			m.onHit()
		}
		return clonePlaces(cached.([]Place)), nil
	}
	m.entries.Delete(key)
	if m.onMiss != nil {
		m.onMiss()
	}

	result, err := m.searcher.SearchCategory(ctx, q)
	if err != nil {
		return nil, err
	}
	m.entries.SetDefault(key, clonePlaces(result))
	return result, nil
}

// Len reports how many results are held, expired or not.
func (m *Memo) Len() int {
	return m.entries.ItemCount()
}

// Flush drops every remembered result.
func (m *Memo) Flush() {
	m.entries.Flush()
}

func memoKey(q CategoryQuery) string {
	return fmt.Sprintf("%s|%.4f,%.4f|%d|%d", q.Category, q.Lat, q.Lng, q.Radius, q.Size)
}

func clonePlaces(in []Place) []Place {
	out := make([]Place, len(in))
	copy(out, in)
	return out
}
