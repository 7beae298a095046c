package pagination

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// FetchPageFunc fetches a single page of items starting at skip, returning
// at most limit items in server order.
type FetchPageFunc[T any] func(ctx context.Context, skip, limit int) ([]T, error)

// Config holds accumulator configuration.
type Config struct {
	// PageSize is the number of items requested per fetch.
	PageSize int
}

// DefaultConfig returns safe default configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: 10,
	}
}

// Accumulator drains a paginated collection one page at a time.
type Accumulator[T any] struct {
	fetch  FetchPageFunc[T]
	config Config
}

// NewAccumulator creates an accumulator over fetch.
func NewAccumulator[T any](fetch FetchPageFunc[T], config Config) *Accumulator[T] {
	if config.PageSize <= 0 {
		config.PageSize = 10
	}

	return &Accumulator[T]{
		fetch:  fetch,
		config: config,
	}
}

// FetchAll fetches every page starting at skip 0, advancing the skip by the
// page size after each full page and accumulating items in order.
//
// Termination rule: accumulation stops at the first page shorter than the
// page size (an empty page included). A collection whose size is an exact
// multiple of the page size therefore costs one extra fetch that observes
// the empty page. A short page is always taken as the final page, so a
// server that returns short-but-not-final pages (e.g. filtering applied
// after slicing) will be under-read.
//
// On a fetch failure mid-sequence FetchAll returns the items accumulated so
// far together with the wrapped failure: accumulation is best-effort, not
// all-or-nothing.
func (a *Accumulator[T]) FetchAll(ctx context.Context) ([]T, error) {
	var items []T
	skip := 0
	pages := 0

	for {
		page, err := a.fetch(ctx, skip, a.config.PageSize)
		if err != nil {
			log.Warn().
				Err(err).
				Int("skip", skip).
				Int("accumulated", len(items)).
				Msg("Page fetch failed - returning partial results")
			return items, fmt.Errorf("fetch page at skip %d (partial data: %d items): %w",
				skip, len(items), err)
		}
		pages++

		items = append(items, page...)

		if len(page) < a.config.PageSize {
			break
		}
		skip += a.config.PageSize
	}

	log.Debug().
		Int("items", len(items)).
		Int("pages", pages).
		Msg("Pagination complete")

	return items, nil
}
