package soda

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Request is one bounded query against one dataset.
type Request struct {
	Endpoint string
	Query    Query
}

type Summary struct {
	Successful int
	Failed     int
}

// Executor runs independent dataset queries, optionally in parallel and
// optionally through the cache. Each query stays a one-shot bounded
// fetch; the executor never splits or pages a query.
type Executor struct {
	client *Client
	cache  *Cache
}

// NewExecutor builds an executor. A nil cache disables caching.
func NewExecutor(client *Client, cache *Cache) *Executor {
	return &Executor{
		client: client,
		cache:  cache,
	}
}

// FetchOne runs a single request, going through the cache when enabled.
func (ex *Executor) FetchOne(ctx context.Context, req Request, useCache bool) (*ResultSet, error) {
	if useCache && ex.cache != nil {
		if res, ok := ex.cache.Get(req.Endpoint, req.Query); ok {
			slog.InfoContext(ctx, "Query result found in cache",
				"resource", ResourceID(req.Endpoint))
			return res, nil
		}
	}

	res, err := ex.client.Fetch(ctx, req.Endpoint, req.Query)
	if err != nil {
		return nil, err
	}

	if useCache && ex.cache != nil {
		ex.cache.Set(req.Endpoint, req.Query, res)
	}

	return res, nil
}

// FetchAll runs the named requests with at most workers in flight.
// A failing dataset does not cancel the others; failures come back in
// their own map.
func (ex *Executor) FetchAll(
	ctx context.Context, workers uint8, requests map[string]Request,
	useCache bool,
) (map[string]*ResultSet, map[string]error) {
	var mu sync.Mutex
	summary := Summary{}

	results := make(map[string]*ResultSet, len(requests))
	failures := make(map[string]error)

	group, ctx := errgroup.WithContext(ctx)
	if workers == 0 {
		workers = 1
	}
	group.SetLimit(int(workers))

	for name, req := range requests {
		group.Go(func() error {
			slog.InfoContext(ctx, "Running query on dataset", "dataset", name)

			res, err := ex.FetchOne(ctx, req, useCache)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				slog.ErrorContext(ctx, "Query failed on dataset",
					"dataset", name, "error", err)
				failures[name] = err
				summary.Failed++
				return nil
			}

			slog.InfoContext(ctx, "Query successful on dataset",
				"dataset", name,
				"rows", res.RowCount,
				"duration", res.Duration,
			)
			results[name] = res
			summary.Successful++

			return nil
		})
	}

	group.Wait()

	slog.InfoContext(ctx, "Fetch summary",
		"successful", summary.Successful,
		"failed", summary.Failed,
	)

	return results, failures
}
