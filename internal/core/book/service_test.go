package book_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-app/folio/internal/core/book"
	"github.com/folio-app/folio/internal/platform/apperr"
	"github.com/folio-app/folio/internal/platform/dberr"
)

// # Fakes

// fakeRepository is an in-memory [book.Repository] with call counters.
type fakeRepository struct {
	records []*book.Book
	nextID  int

	findByTextCalls        int
	findByIdentifiersCalls int
	insertCalls            int

	findByTextErr error
	insertErr     error
}

func (repository *fakeRepository) FindByIdentifiers(_ context.Context, ids book.Identifiers) (*book.Book, error) {
	repository.findByIdentifiersCalls++
	for _, record := range repository.records {
		if ids.ID != "" && record.ID == ids.ID {
			return record, nil
		}
		if ids.GoogleID != "" && record.GoogleID != nil && *record.GoogleID == ids.GoogleID {
			return record, nil
		}
		if ids.ISBN13 != "" && record.ISBN13 != nil && *record.ISBN13 == ids.ISBN13 {
			return record, nil
		}
		if ids.ISBN10 != "" && record.ISBN10 != nil && *record.ISBN10 == ids.ISBN10 {
			return record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *fakeRepository) FindByText(_ context.Context, query string, limit int) ([]*book.Book, error) {
	repository.findByTextCalls++
	if repository.findByTextErr != nil {
		return nil, repository.findByTextErr
	}
	if len(repository.records) > limit {
		return repository.records[:limit], nil
	}
	return repository.records, nil
}

func (repository *fakeRepository) Insert(_ context.Context, record *book.Book) error {
	repository.insertCalls++
	if repository.insertErr != nil {
		return repository.insertErr
	}
	repository.nextID++
	record.ID = fmt.Sprintf("db-%d", repository.nextID)
	record.Source = book.SourcePersisted
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	repository.records = append(repository.records, record)
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*book.Book, error) {
	for _, record := range repository.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *fakeRepository) ListRecent(_ context.Context, limit, offset int) ([]*book.Book, int, error) {
	return repository.records, len(repository.records), nil
}

// fakeCatalog is a scripted [book.Catalog] with call counters.
type fakeCatalog struct {
	searchResults []*book.Book
	searchErr     error
	isbnResult    *book.Book
	isbnErr       error

	searchCalls       int
	isbnCalls         int
	lastMaxResults    int
	lastSearchedQuery string
}

func (catalog *fakeCatalog) Search(_ context.Context, query string, maxResults int) ([]*book.Book, error) {
	catalog.searchCalls++
	catalog.lastSearchedQuery = query
	catalog.lastMaxResults = maxResults
	if catalog.searchErr != nil {
		return nil, catalog.searchErr
	}
	if len(catalog.searchResults) > maxResults {
		return catalog.searchResults[:maxResults], nil
	}
	return catalog.searchResults, nil
}

func (catalog *fakeCatalog) SearchByISBN(_ context.Context, rawISBN string) (*book.Book, error) {
	catalog.isbnCalls++
	if catalog.isbnErr != nil {
		return nil, catalog.isbnErr
	}
	return catalog.isbnResult, nil
}

func (catalog *fakeCatalog) GetByID(_ context.Context, googleID string) (*book.Book, error) {
	return nil, nil
}

// fakeResultCache is an in-memory [book.ResultCache].
type fakeResultCache struct {
	entries  map[string][]*book.Book
	getCalls int
	setCalls int
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{entries: map[string][]*book.Book{}}
}

func (cache *fakeResultCache) key(query string, options book.SearchOptions) string {
	return fmt.Sprintf("%s:%d:%t", query, options.MaxResults, options.IncludeExternal)
}

func (cache *fakeResultCache) Get(_ context.Context, query string, options book.SearchOptions) ([]*book.Book, error) {
	cache.getCalls++
	return cache.entries[cache.key(query, options)], nil
}

func (cache *fakeResultCache) Set(_ context.Context, query string, options book.SearchOptions, results []*book.Book) error {
	cache.setCalls++
	cache.entries[cache.key(query, options)] = results
	return nil
}

// # Helpers

func newTestService(repository book.Repository, catalog book.Catalog, cache book.ResultCache) *book.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(repository, catalog, cache, logger)
}

func externalRecord(googleID, title, isbn13 string) *book.Book {
	record := &book.Book{
		ID:       googleID,
		GoogleID: &googleID,
		Title:    title,
		Authors:  []string{"Test Author"},
		Source:   book.SourceExternal,
	}
	if isbn13 != "" {
		record.ISBN13 = &isbn13
	}
	return record
}

func persistedRecord(id, title, isbn13 string) *book.Book {
	record := &book.Book{
		ID:      id,
		Title:   title,
		Authors: []string{"Test Author"},
		Source:  book.SourcePersisted,
	}
	if isbn13 != "" {
		record.ISBN13 = &isbn13
	}
	return record
}

// # Free-Text Search

/*
TestService_SearchBooks_EmptyQuery verifies that blank queries short-circuit
without touching the store, the cache, or the network.
*/
func TestService_SearchBooks_EmptyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"tabs_and_newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &fakeRepository{}
			catalog := &fakeCatalog{}
			cache := newFakeResultCache()
			service := newTestService(repository, catalog, cache)

			results, err := service.SearchBooks(context.Background(), tt.query, book.SearchOptions{IncludeExternal: true})

			require.NoError(t, err)
			assert.Empty(t, results)
			assert.NotNil(t, results)
			assert.Zero(t, repository.findByTextCalls)
			assert.Zero(t, catalog.searchCalls)
			assert.Zero(t, cache.getCalls)
		})
	}
}

/*
TestService_SearchBooks_LocalShortCircuit verifies that a full page of local
matches never reaches the external catalog.
*/
func TestService_SearchBooks_LocalShortCircuit(t *testing.T) {
	repository := &fakeRepository{records: []*book.Book{
		persistedRecord("db-1", "Dune", "9780441172719"),
		persistedRecord("db-2", "Dune Messiah", "9780441172696"),
	}}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune Encyclopedia", ""),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      2,
		IncludeExternal: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Zero(t, catalog.searchCalls)
	for _, record := range results {
		assert.Equal(t, book.SourcePersisted, record.Source)
	}
}

/*
TestService_SearchBooks_ExcludeExternal verifies that IncludeExternal=false
keeps the search local even when the store cannot fill the page.
*/
func TestService_SearchBooks_ExcludeExternal(t *testing.T) {
	repository := &fakeRepository{records: []*book.Book{
		persistedRecord("db-1", "Dune", "9780441172719"),
	}}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune Messiah", ""),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: false,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, catalog.searchCalls)

	// Zero-value options mean local-only too; the external default lives at
	// the HTTP boundary.
	results, err = service.SearchBooks(context.Background(), "dune", book.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, catalog.searchCalls)
}

/*
TestService_SearchBooks_WriteThroughCache verifies that external hits are
persisted inline exactly once: a repeated search re-resolves existing rows
instead of inserting duplicates.
*/
func TestService_SearchBooks_WriteThroughCache(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
		externalRecord("vol-2", "Dune Messiah", "9780441172696"),
	}}
	service := newTestService(repository, catalog, nil)

	first, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 2, repository.insertCalls)

	// Every returned record was persisted and carries a store identity.
	for _, record := range first {
		assert.Equal(t, book.SourcePersisted, record.Source)
		assert.NotEqual(t, *record.GoogleID, record.ID)
	}

	// Second pass: same catalog payload, but rows already exist.
	second, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 2, repository.insertCalls)
	assert.Len(t, repository.records, 2)
}

/*
TestService_SearchBooks_Deduplicates verifies that a record present both
locally and in the external payload appears exactly once, with the local
instance winning.
*/
func TestService_SearchBooks_Deduplicates(t *testing.T) {
	local := persistedRecord("db-1", "Dune", "9780441172719")
	repository := &fakeRepository{records: []*book.Book{local}, nextID: 1}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
		externalRecord("vol-2", "Dune Messiah", ""),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "db-1", results[0].ID)
	assert.Equal(t, "Dune Messiah", results[1].Title)
}

/*
TestService_SearchBooks_DegradesOnCatalogFailure verifies graceful
degradation: catalog failures surface as local-only results, never errors.
*/
func TestService_SearchBooks_DegradesOnCatalogFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rate_limited", fmt.Errorf("%w: status 429", book.ErrCatalogRateLimited)},
		{"timeout", fmt.Errorf("%w: deadline exceeded", book.ErrCatalogTimeout)},
		{"unavailable", fmt.Errorf("%w: status 503", book.ErrCatalogUnavailable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &fakeRepository{records: []*book.Book{
				persistedRecord("db-1", "Dune", "9780441172719"),
			}}
			catalog := &fakeCatalog{searchErr: tt.err}
			service := newTestService(repository, catalog, nil)

			results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
				MaxResults:      10,
				IncludeExternal: true,
			})

			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "db-1", results[0].ID)
		})
	}
}

/*
TestService_SearchBooks_DegradedEmptyIsNotNil verifies that degradation with
zero local matches still yields an empty sequence, never a nil one, so the
HTTP layer serializes [] rather than null.
*/
func TestService_SearchBooks_DegradedEmptyIsNotNil(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalog
		options book.SearchOptions
	}{
		{
			"catalog_down_empty_store",
			&fakeCatalog{searchErr: fmt.Errorf("%w: status 429", book.ErrCatalogRateLimited)},
			book.SearchOptions{MaxResults: 10, IncludeExternal: true},
		},
		{
			"external_off_empty_store",
			&fakeCatalog{},
			book.SearchOptions{MaxResults: 10, IncludeExternal: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeRepository{}, tt.catalog, nil)

			results, err := service.SearchBooks(context.Background(), "dune", tt.options)

			require.NoError(t, err)
			require.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

/*
TestService_SearchBooks_KeepsUnpersistedExternal verifies that a record
whose write-through insert fails is still returned, tagged with external
provenance.
*/
func TestService_SearchBooks_KeepsUnpersistedExternal(t *testing.T) {
	repository := &fakeRepository{insertErr: apperr.Internal(fmt.Errorf("connection reset"))}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, book.SourceExternal, results[0].Source)
	assert.Equal(t, "vol-1", results[0].ID)
}

/*
TestService_SearchBooks_InsertRaceResolved verifies that a unique-index
collision during write-through resolves to the row the concurrent winner
created.
*/
func TestService_SearchBooks_InsertRaceResolved(t *testing.T) {
	winner := persistedRecord("db-9", "Dune", "9780441172719")

	repository := &racingRepository{winner: winner}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "db-9", results[0].ID)
	assert.Equal(t, book.SourcePersisted, results[0].Source)
}

// racingRepository simulates losing an insert race: the first identifier
// lookup misses, the insert collides, and the re-read finds the winner's row.
type racingRepository struct {
	fakeRepository
	winner *book.Book
}

func (repository *racingRepository) FindByIdentifiers(ctx context.Context, ids book.Identifiers) (*book.Book, error) {
	repository.findByIdentifiersCalls++
	if repository.findByIdentifiersCalls == 1 {
		return nil, dberr.ErrNotFound
	}
	return repository.winner, nil
}

func (repository *racingRepository) Insert(ctx context.Context, record *book.Book) error {
	repository.insertCalls++
	return dberr.ErrDuplicate
}

/*
TestService_SearchBooks_LocalStoreFailure verifies that a failing persisted
store does not take search down while the catalog still answers.
*/
func TestService_SearchBooks_LocalStoreFailure(t *testing.T) {
	repository := &fakeRepository{
		findByTextErr: apperr.Internal(fmt.Errorf("connection refused")),
	}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
	}}
	service := newTestService(repository, catalog, nil)

	results, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
		MaxResults:      10,
		IncludeExternal: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, catalog.searchCalls)
}

/*
TestService_SearchBooks_ClampsMaxResults verifies the result cap defaults
and its hard upper bound.
*/
func TestService_SearchBooks_ClampsMaxResults(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{"zero_uses_default", 0, 20},
		{"negative_uses_default", -5, 20},
		{"oversized_clamped", 1000, 40},
		{"in_range_kept", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &fakeRepository{}
			catalog := &fakeCatalog{}
			service := newTestService(repository, catalog, nil)

			_, err := service.SearchBooks(context.Background(), "dune", book.SearchOptions{
				MaxResults:      tt.requested,
				IncludeExternal: true,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, catalog.lastMaxResults)
		})
	}
}

/*
TestService_SearchBooks_ResultCache verifies that a cached result set is
served without touching the store or the catalog.
*/
func TestService_SearchBooks_ResultCache(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{searchResults: []*book.Book{
		externalRecord("vol-1", "Dune", "9780441172719"),
	}}
	cache := newFakeResultCache()
	service := newTestService(repository, catalog, cache)

	options := book.SearchOptions{MaxResults: 10, IncludeExternal: true}

	first, err := service.SearchBooks(context.Background(), "dune", options)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.setCalls)

	second, err := service.SearchBooks(context.Background(), "dune", options)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Second call was answered entirely from the result cache.
	assert.Equal(t, 1, repository.findByTextCalls)
	assert.Equal(t, 1, catalog.searchCalls)
}

// # ISBN Lookup

/*
TestService_SearchByISBN_NormalizesHyphens verifies that hyphenated and
plain spellings of the same ISBN resolve to the same record.
*/
func TestService_SearchByISBN_NormalizesHyphens(t *testing.T) {
	repository := &fakeRepository{records: []*book.Book{
		persistedRecord("db-1", "Clean Code", "9780132350884"),
	}}
	catalog := &fakeCatalog{}
	service := newTestService(repository, catalog, nil)

	hyphenated, err := service.SearchByISBN(context.Background(), "978-0-13-235088-4")
	require.NoError(t, err)

	plain, err := service.SearchByISBN(context.Background(), "9780132350884")
	require.NoError(t, err)

	assert.Equal(t, hyphenated.ID, plain.ID)
	assert.Zero(t, catalog.isbnCalls)
}

/*
TestService_SearchByISBN_ExternalFallback verifies the local-miss path:
the catalog answer is write-through cached and returned persisted.
*/
func TestService_SearchByISBN_ExternalFallback(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{isbnResult: externalRecord("vol-1", "Clean Code", "9780132350884")}
	service := newTestService(repository, catalog, nil)

	record, err := service.SearchByISBN(context.Background(), "9780132350884")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, book.SourcePersisted, record.Source)
	assert.Equal(t, 1, repository.insertCalls)
	assert.Equal(t, 1, catalog.isbnCalls)
}

/*
TestService_SearchByISBN_MissAndFailureResolveNotFound verifies that both a
clean catalog miss and a catalog failure resolve to not-found.
*/
func TestService_SearchByISBN_MissAndFailureResolveNotFound(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalog
	}{
		{"clean_miss", &fakeCatalog{}},
		{"catalog_down", &fakeCatalog{isbnErr: fmt.Errorf("%w: status 503", book.ErrCatalogUnavailable)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeRepository{}, tt.catalog, nil)

			record, err := service.SearchByISBN(context.Background(), "9780132350884")

			require.Error(t, err)
			assert.Nil(t, record)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 404, ae.HTTPStatus)
		})
	}
}

/*
TestService_SearchByISBN_RejectsMalformed verifies input validation on the
identifier before any data source is consulted.
*/
func TestService_SearchByISBN_RejectsMalformed(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{}
	service := newTestService(repository, catalog, nil)

	record, err := service.SearchByISBN(context.Background(), "not-an-isbn")

	require.Error(t, err)
	assert.Nil(t, record)
	assert.Zero(t, repository.findByIdentifiersCalls)
	assert.Zero(t, catalog.isbnCalls)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// # Direct Lookup

/*
TestService_GetBookByID covers the pure store lookup and its failure modes.
*/
func TestService_GetBookByID(t *testing.T) {
	repository := &fakeRepository{records: []*book.Book{
		persistedRecord("db-1", "Dune", "9780441172719"),
	}}
	service := newTestService(repository, &fakeCatalog{}, nil)

	t.Run("found", func(t *testing.T) {
		record, err := service.GetBookByID(context.Background(), "db-1")
		require.NoError(t, err)
		assert.Equal(t, "Dune", record.Title)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.GetBookByID(context.Background(), "db-404")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("blank_id", func(t *testing.T) {
		_, err := service.GetBookByID(context.Background(), "  ")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}
