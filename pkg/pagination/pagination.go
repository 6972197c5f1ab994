// Package pagination collects page-numbered collections from the clinic API.
//
// The API reports the collection total alongside every page; the aggregator
// keeps fetching pages, starting at 1, until the accumulated record count
// reaches the total reported by the first page.
package pagination

import (
	"context"
	"errors"
	"fmt"
)

// ErrStalled is returned when a page contributes no records while the
// reported total has not been reached. Without this guard a server that
// reports an unreachable total would keep the aggregator looping forever.
var ErrStalled = errors.New("pagination: page returned no records before reported total was reached")

// FetchFunc returns one page of records plus the total the server reports
// for the whole collection. Pages are numbered from 1.
type FetchFunc[T any] func(ctx context.Context, page int) (records []T, total int, err error)

// Collect fetches pages until the accumulated record count reaches the total
// reported by page 1. The total is checked after every page, including the
// first, so an empty collection costs exactly one call.
func Collect[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	records, total, err := fetch(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch page 1: %w", err)
	}
	all := records
	for page := 2; len(all) < total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, _, err = fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w (page %d, %d of %d records)", ErrStalled, page, len(all), total)
		}
		all = append(all, records...)
	}
	return all, nil
}
