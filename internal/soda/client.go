package soda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// Client runs one-shot GET queries against SODA dataset endpoints.
// No retries, no backoff, no pagination: one call is one bounded query,
// and $limit/$offset only ever come from the caller.
type Client struct {
	http      *http.Client
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch issues a single GET against the endpoint with the query's
// parameters appended and decodes the JSON array response.
func (c *Client) Fetch(ctx context.Context, endpoint string, query Query) (*ResultSet, error) {
	target, err := query.URL(endpoint)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Fetching resource",
		"resource", ResourceID(endpoint),
		"url", target,
	)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", target, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &ResultSet{
		Records:  records,
		RowCount: len(records),
		Duration: time.Since(start),
	}, nil
}

// Check probes the endpoint with a $limit=1 query. Single attempt:
// a failing endpoint fails the check immediately.
func (c *Client) Check(ctx context.Context, endpoint string) error {
	_, err := c.Fetch(ctx, endpoint, NewQuery().Limit(1))
	return err
}
