// Package directory owns the searchable provider list: it loads the full
// collection and the featured subset from an external data provider and
// derives a filtered view from a free-text query.
package directory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/logging"
)

// Fetcher is the external directory data provider. The two reads are
// independent: one may fail without blocking the other.
type Fetcher interface {
	Providers(ctx context.Context) ([]models.Provider, error)
	Featured(ctx context.Context) ([]models.Provider, error)
}

// Engine derives the display list from the loaded providers plus the current
// query. Public operations are serialized per instance; the derived view is
// recomputed on demand and never mutates the loaded data.
type Engine struct {
	mu      sync.Mutex
	fetcher Fetcher
	log     logging.Logger

	providers []models.Provider
	featured  []models.Provider
	query     string
	loading   bool
}

func New(f Fetcher, log logging.Logger) *Engine {
	return &Engine{fetcher: f, log: log}
}

// Load fetches the full provider collection and, independently, the featured
// subset. A failure in one fetch does not block the other; on failure the
// previously loaded list stays in place and the error is returned so the
// presentation layer can show a notice. No automatic retry.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	var (
		wg        sync.WaitGroup
		all, feat []models.Provider
		allErr    error
		featErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		all, allErr = e.fetcher.Providers(ctx)
	}()
	go func() {
		defer wg.Done()
		feat, featErr = e.fetcher.Featured(ctx)
	}()
	wg.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	if allErr == nil {
		e.providers = all
	} else {
		e.log.Warn(ctx, "loading providers failed", "err", allErr)
	}
	if featErr == nil {
		e.featured = feat
	} else {
		e.log.Warn(ctx, "loading featured providers failed", "err", featErr)
	}
	e.loading = false

	return errors.Join(allErr, featErr)
}

// Refresh resets the query and re-loads both collections. A successful
// refresh fully replaces the prior collections; there is no partial merge.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.query = ""
	e.mu.Unlock()
	return e.Load(ctx)
}

// SetQuery replaces the free-text query. Idempotent for the same input.
func (e *Engine) SetQuery(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.query = q
}

// Query returns the current free-text query.
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// IsLoading reports whether a load is in flight.
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// View returns the derived display list for the current query.
func (e *Engine) View() []models.Provider {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Derive(e.providers, e.query)
}

// Featured returns the featured subset as loaded.
func (e *Engine) Featured() []models.Provider {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.featured
}

// Derive computes the filtered view of list for the given query. It is pure:
// inputs are never mutated. An empty (trimmed) query yields list unchanged.
// Otherwise a provider matches when its name or any of its service tags
// contains the query as a case-insensitive substring. The filter is stable:
// matches keep their relative order from list.
func Derive(list []models.Provider, query string) []models.Provider {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]models.Provider, 0, len(list))
	for _, p := range list {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Provider, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, s := range p.Services {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
