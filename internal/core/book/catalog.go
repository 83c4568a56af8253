package book

import (
	"context"
	"errors"
)

// # Catalog Error Taxonomy
//
// The concrete catalog client wraps its failures with these sentinels so the
// orchestrator can classify without importing the implementation package.
var (
	// ErrCatalogTimeout indicates the external request exceeded its deadline.
	ErrCatalogTimeout = errors.New("book: catalog request timed out")

	// ErrCatalogRateLimited indicates the upstream service throttled us.
	ErrCatalogRateLimited = errors.New("book: catalog rate limited")

	// ErrCatalogUnavailable covers every other upstream failure.
	ErrCatalogUnavailable = errors.New("book: catalog upstream error")
)

// Catalog defines the external book-metadata catalog capability.
//
// Implementations return records already normalized to the canonical [Book]
// shape, tagged [SourceExternal], with ID set to the catalog's own volume
// identifier.
type Catalog interface {

	// Search returns up to maxResults records for a free-text query.
	// An empty result set is not an error.
	Search(context context.Context, query string, maxResults int) ([]*Book, error)

	// SearchByISBN returns the best record for a normalized ISBN,
	// or (nil, nil) when the catalog has no match.
	SearchByISBN(context context.Context, isbn string) (*Book, error)

	// GetByID returns the record for a catalog volume ID,
	// or (nil, nil) when the catalog has no match.
	GetByID(context context.Context, externalID string) (*Book, error)
}
