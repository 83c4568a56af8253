// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

// Package googlebooks implements the external catalog capability backed by
// the Google Books volumes API.
//
// # Architecture
//
// The client satisfies [book.Catalog] and is the only component that speaks
// the upstream wire format; everything past this package sees canonical
// [book.Book] records. Failures are classified into the catalog error
// sentinels so the orchestrator can degrade without inspecting transport
// details.
package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/folio-app/folio/internal/core/book"
	"github.com/folio-app/folio/internal/platform/constants"
	"github.com/folio-app/folio/pkg/isbn"
)

// Client talks to the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// Option customizes a [Client]; used by tests to point at stub servers.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(client *Client) {
		client.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// New constructs a catalog client. The API key is mandatory: the upstream
// quota is keyed, and an unkeyed deployment would fail on first use anyway.
func New(apiKey string, logger *slog.Logger, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("googlebooks: api key is required")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: constants.CatalogRequestTimeout},
		baseURL:    constants.CatalogBaseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// # Catalog Operations

/*
Search runs a free-text query against the volumes endpoint.

Parameters:
  - context: context.Context
  - query: string
  - maxResults: int

Returns:
  - []*book.Book: Normalized records tagged external (empty on no hits)
  - error: A catalog sentinel wrapping the transport failure
*/
func (client *Client) Search(context context.Context, query string, maxResults int) ([]*book.Book, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", client.apiKey)
	params.Set("printType", "books")
	params.Set("projection", "full")

	var response volumesResponse
	if err := client.getJSON(context, client.baseURL+"/volumes?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return []*book.Book{}, nil
	}

	records := make([]*book.Book, 0, len(response.Items))
	for _, item := range response.Items {
		records = append(records, normalizeVolume(item))
	}

	client.logger.Debug("catalog_search_completed",
		slog.String("query", query),
		slog.Int("results", len(records)),
	)
	return records, nil
}

/*
SearchByISBN resolves a single volume by ISBN.

Description: The identifier is normalized before querying; the dedicated
isbn: query qualifier makes the upstream do exact matching. A miss is
(nil, nil), not an error.

Parameters:
  - context: context.Context
  - rawISBN: string

Returns:
  - *book.Book: Best match, or nil when the catalog has no such volume
  - error: A catalog sentinel wrapping the transport failure
*/
func (client *Client) SearchByISBN(context context.Context, rawISBN string) (*book.Book, error) {
	normalized := isbn.Normalize(rawISBN)

	records, err := client.Search(context, "isbn:"+normalized, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

/*
GetByID fetches a single volume by its catalog volume ID.

Parameters:
  - context: context.Context
  - googleID: string

Returns:
  - *book.Book: The normalized volume, or nil when the ID is unknown upstream
  - error: A catalog sentinel wrapping the transport failure
*/
func (client *Client) GetByID(context context.Context, googleID string) (*book.Book, error) {
	params := url.Values{}
	params.Set("key", client.apiKey)

	requestURL := client.baseURL + "/volumes/" + url.PathEscape(googleID) + "?" + params.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", book.ErrCatalogUnavailable, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := classifyStatus(response.StatusCode); err != nil {
		return nil, err
	}

	var item volumeItem
	if err := json.NewDecoder(response.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%w: decoding volume: %v", book.ErrCatalogUnavailable, err)
	}
	return normalizeVolume(item), nil
}

// # Transport

// getJSON performs a GET and decodes the body, classifying failures.
func (client *Client) getJSON(context context.Context, requestURL string, target any) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", book.ErrCatalogUnavailable, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return classifyTransportError(err)
	}
	defer response.Body.Close()

	if err := classifyStatus(response.StatusCode); err != nil {
		return err
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decoding response: %v", book.ErrCatalogUnavailable, err)
	}
	return nil
}

// classifyStatus maps a non-2xx status to a catalog sentinel.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", book.ErrCatalogRateLimited, status)
	default:
		return fmt.Errorf("%w: status %d", book.ErrCatalogUnavailable, status)
	}
}

// classifyTransportError maps client-side failures to a catalog sentinel.
// Deadline expiry (either the request context or the client timeout) counts
// as a timeout; everything else is generic unavailability.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return fmt.Errorf("%w: %v", book.ErrCatalogTimeout, err)
	}
	return fmt.Errorf("%w: %v", book.ErrCatalogUnavailable, err)
}
