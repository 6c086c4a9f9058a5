// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the HTTP client for the RAWG API.
//
// All calls are bounded by the configured timeout; a slow provider must never
// hold a search request hostage.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a RAWG API client.
//
// # Parameters
//   - baseURL: API root, e.g. https://api.rawg.io/api
//   - apiKey: RAWG API key credential.
//   - timeout: Hard deadline for every provider call.
//   - logger: Structured logger for provider-level events.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
			},
		},
		logger: logger.With(slog.String("component", "rawg_client")),
	}
}

// SearchGames performs a free-text search against the provider.
//
// Side effect: one network call. Returns [ErrUnavailable] or [ErrFormat]
// wrapped errors on failure; both are non-fatal to the caller.
func (c *Client) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	params := url.Values{
		"search":    {query},
		"page_size": {strconv.Itoa(limit)},
	}
	return c.listGames(ctx, params)
}

// MostPopular returns the provider's popularity-ranked listing.
//
// RAWG's "-added" ordering surfaces recently trending titles rather than
// all-time classics, which is what the discovery seeding wants.
func (c *Client) MostPopular(ctx context.Context, limit int) ([]Game, error) {
	params := url.Values{
		"ordering":  {"-added"},
		"page_size": {strconv.Itoa(limit)},
	}
	return c.listGames(ctx, params)
}

// listGames runs a GET /games call with the given query parameters.
func (c *Client) listGames(ctx context.Context, params url.Values) ([]Game, error) {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + "/games?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, response.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	c.logger.Debug("provider_call_finished",
		slog.Int("results", len(payload.Results)),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	return payload.Results, nil
}
