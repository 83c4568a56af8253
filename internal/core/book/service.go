package book

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/folio-app/folio/internal/platform/constants"
	"github.com/folio-app/folio/internal/platform/dberr"
	"github.com/folio-app/folio/internal/platform/validate"
	"github.com/folio-app/folio/pkg/isbn"
	"github.com/folio-app/folio/pkg/pointer"
)

// Service is the hybrid search orchestrator.
//
// # Policy
//
// Local-first: the persisted store is always consulted before the external
// catalog, minimizing external API consumption and latency for known books.
// Every external hit is write-through cached inline; no background work is
// ever spawned. External failures degrade to local-only results rather than
// surfacing as hard errors.
type Service struct {
	repo    Repository
	catalog Catalog
	cache   ResultCache
	logger  *slog.Logger
}

// NewService constructs a [Service] with its collaborators injected.
//
// cache may be nil; the orchestrator then skips the volatile result cache
// entirely (useful in tests and degraded deployments).
func NewService(repo Repository, catalog Catalog, cache ResultCache, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// # Free-Text Search

/*
SearchBooks serves a free-text query from the persisted store first, topping
up from the external catalog when the local catalogue cannot fill the cap.

Description: Newly fetched external records are write-through cached one by
one; a record that fails to persist is still returned, tagged with its
external provenance. Catalog-level failures degrade to local-only results.

Parameters:
  - context: context.Context
  - query: string
  - options: SearchOptions

Returns:
  - []*Book: Deduplicated, capped result set (never nil on success)
  - error: Only internal failures that left no partial data to serve
*/
func (service *Service) SearchBooks(context context.Context, query string, options SearchOptions) ([]*Book, error) {

	// Blank queries return immediately: no store, cache, or network access.
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []*Book{}, nil
	}

	options = normalizeOptions(options)

	// Volatile cache first. Any failure is just a miss.
	if service.cache != nil {
		cached, err := service.cache.Get(context, trimmed, options)
		if err != nil {
			service.logger.Warn("search_cache_read_failed", slog.Any("error", err))
		}
		if cached != nil {
			service.logger.Debug("search_cache_hit", slog.String("query", trimmed))
			return cached, nil
		}
	}

	// Step 1: persisted store.
	localResults := service.searchLocal(context, trimmed, options.MaxResults)

	// Step 2: short-circuit when local results suffice or external is off.
	if len(localResults) >= options.MaxResults || !options.IncludeExternal {
		results := truncate(localResults, options.MaxResults)
		service.storeInCache(context, trimmed, options, results)
		return results, nil
	}

	// Step 3: top up from the external catalog.
	remaining := options.MaxResults - len(localResults)
	externalResults, err := service.catalog.Search(context, trimmed, remaining)
	if err != nil {
		// Graceful degradation: the user still gets every local match.
		// Degraded sets are not cached, so recovery is picked up immediately.
		service.logger.Warn("catalog_search_degraded",
			slog.String("query", trimmed),
			slog.String("reason", classifyCatalogError(err)),
			slog.Any("error", err),
		)
		return truncate(localResults, options.MaxResults), nil
	}

	// Step 4: write-through cache each external record.
	cachedResults := service.cacheExternalResults(context, externalResults)

	// Step 5: merge, deduplicate (first-seen wins), cap.
	merged := Deduplicate(append(localResults, cachedResults...))
	results := truncate(merged, options.MaxResults)

	service.storeInCache(context, trimmed, options, results)
	return results, nil
}

// searchLocal queries the persisted store, treating failures as "no local
// results" so the external path can still serve the request.
func (service *Service) searchLocal(context context.Context, query string, limit int) []*Book {
	results, err := service.repo.FindByText(context, query, limit)
	if err != nil {
		service.logger.Warn("local_search_failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return nil
	}
	return results
}

// # ISBN Lookup

/*
SearchByISBN resolves a single record by ISBN, local-first.

Description: Hyphens and whitespace are stripped before matching. A local
match on either ISBN column wins outright; otherwise the external catalog is
consulted and any hit is write-through cached. A total miss — including any
catalog failure — resolves to not-found rather than an upstream error.

Parameters:
  - context: context.Context
  - rawISBN: string

Returns:
  - *Book: The resolved record (persisted when caching succeeded)
  - error: Validation failure or not-found
*/
func (service *Service) SearchByISBN(context context.Context, rawISBN string) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldISBN, rawISBN).ISBN(FieldISBN, rawISBN)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	normalized := isbn.Normalize(rawISBN)

	// Local exact match on either ISBN column.
	local, err := service.repo.FindByIdentifiers(context, Identifiers{
		ISBN13: normalized,
		ISBN10: normalized,
	})
	if err == nil {
		return local, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		// Store trouble is not fatal here: the external catalog can still
		// resolve the lookup.
		service.logger.Warn("local_isbn_lookup_failed", slog.Any("error", err))
	}

	// External fallback.
	external, err := service.catalog.SearchByISBN(context, normalized)
	if err != nil {
		service.logger.Warn("catalog_isbn_lookup_failed",
			slog.String("isbn", normalized),
			slog.String("reason", classifyCatalogError(err)),
			slog.Any("error", err),
		)
		return nil, dberr.ErrNotFound
	}
	if external == nil {
		return nil, dberr.ErrNotFound
	}

	return service.cacheExternalRecord(context, external), nil
}

// # Direct Lookup

/*
GetBookByID returns a persisted record by its store ID.

Description: Pure store lookup; there is deliberately no external fallback,
and store errors propagate since no substitute data source exists.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Hydrated record
  - error: Not-found or storage failures
*/
func (service *Service) GetBookByID(context context.Context, id string) (*Book, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validate.RequiredError("id", "This field is required")
	}
	return service.repo.FindByID(context, id)
}

// ListRecent returns the newest catalogue entries for discovery surfaces.
func (service *Service) ListRecent(context context.Context, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListRecent(context, limit, offset)
}

// # Write-Through Cache

// cacheExternalResults persists a batch of external records one by one.
// Partial failure never aborts the batch: a record that cannot be persisted
// is passed through tagged [SourceExternal].
func (service *Service) cacheExternalResults(context context.Context, externalResults []*Book) []*Book {
	cached := make([]*Book, 0, len(externalResults))
	for _, record := range externalResults {
		cached = append(cached, service.cacheExternalRecord(context, record))
	}
	return cached
}

// cacheExternalRecord runs the idempotent write-through step for one record.
//
// # Flow
//  1. Find an existing row by any identifier — if present, return it.
//  2. Otherwise insert. A unique-index collision means a concurrent call won
//     the race; re-read and return the winner's row.
//  3. Any store failure falls back to the raw external record.
func (service *Service) cacheExternalRecord(context context.Context, record *Book) *Book {
	ids := Identifiers{
		GoogleID: pointer.Val(record.GoogleID),
		ISBN13:   pointer.Val(record.ISBN13),
		ISBN10:   pointer.Val(record.ISBN10),
	}

	existing, err := service.repo.FindByIdentifiers(context, ids)
	if err == nil {
		return existing
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return service.fallbackExternal(record, err)
	}

	// Insert a copy: Insert assigns a fresh store ID, and the original must
	// keep its catalog identity in case persistence fails.
	persisted := *record
	persisted.Source = SourcePersisted

	insertErr := service.repo.Insert(context, &persisted)
	if insertErr == nil {
		service.logger.Info("book_cached",
			slog.String("book_id", persisted.ID),
			slog.String("title", persisted.Title),
		)
		return &persisted
	}

	if dberr.IsDuplicate(insertErr) {
		if winner, findErr := service.repo.FindByIdentifiers(context, ids); findErr == nil {
			return winner
		}
	}

	return service.fallbackExternal(record, insertErr)
}

// fallbackExternal returns the raw external record when persistence failed.
func (service *Service) fallbackExternal(record *Book, cause error) *Book {
	service.logger.Warn("book_cache_write_failed",
		slog.String("title", record.Title),
		slog.Any("error", cause),
	)
	record.Source = SourceExternal
	return record
}

// # Helpers

// storeInCache best-effort persists a result set to the volatile cache.
func (service *Service) storeInCache(context context.Context, query string, options SearchOptions, results []*Book) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Set(context, query, options, results); err != nil {
		service.logger.Warn("search_cache_write_failed", slog.Any("error", err))
	}
}

// normalizeOptions applies defaults and clamps the result cap.
func normalizeOptions(options SearchOptions) SearchOptions {
	if options.MaxResults <= 0 {
		options.MaxResults = constants.DefaultSearchMaxResults
	}
	if options.MaxResults > constants.MaxSearchMaxResults {
		options.MaxResults = constants.MaxSearchMaxResults
	}
	return options
}

// truncate caps a result set without reallocating. A nil set comes back as
// an empty one, so callers always serialize a sequence, never null.
func truncate(results []*Book, max int) []*Book {
	if results == nil {
		return []*Book{}
	}
	if len(results) > max {
		return results[:max]
	}
	return results
}

// classifyCatalogError maps a catalog failure to a stable log label.
func classifyCatalogError(err error) string {
	switch {
	case errors.Is(err, ErrCatalogTimeout):
		return "timeout"
	case errors.Is(err, ErrCatalogRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrCatalogUnavailable):
		return "upstream_error"
	default:
		return "unknown"
	}
}
