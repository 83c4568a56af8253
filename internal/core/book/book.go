/*
Package book implements the hybrid book search-and-cache pipeline.

It is the heart of the Folio catalogue: free-text and ISBN lookups are served
local-first from the persisted store, topped up from the external catalog when
needed, and every external hit is write-through cached so the local catalogue
grows organically.

# Architecture

  - Book: the canonical, source-agnostic record shape.
  - Repository: abstract persisted-store capability (Postgres in production).
  - Catalog: abstract external catalog capability (Google Books in production).
  - ResultCache: optional volatile cache for whole result sets (Redis).
  - Service: the search orchestrator tying the above together.

All collaborators are injected through constructors; nothing in this package
reaches for ambient globals.
*/
package book

import "time"

// Source marks the provenance of a specific returned record instance.
type Source string

const (
	// SourcePersisted tags records served from the local persisted store,
	// including external records that were successfully write-through cached.
	SourcePersisted Source = "database"

	// SourceExternal tags records fetched from the external catalog in this
	// call that could not be (or were not yet) persisted.
	SourceExternal Source = "google-books"
)

// Book is the canonical record shape shared by both sources.
//
// # Identity
//
// ID is unique within whichever source produced the instance: a UUIDv7 for
// persisted rows, the external catalog's volume ID for raw external records.
// The two namespaces are never unified; GoogleID carries the external
// identifier for persisted rows that were cached from the catalog.
type Book struct {
	ID            string     `json:"id"`
	GoogleID      *string    `json:"google_id,omitempty"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	PageCount     *int       `json:"page_count,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	ISBN10        *string    `json:"isbn10,omitempty"`
	ISBN13        *string    `json:"isbn13,omitempty"`
	Source        Source     `json:"source"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SearchOptions tunes a single [Service.SearchBooks] invocation.
type SearchOptions struct {
	// MaxResults caps the merged result set. Zero or negative values fall
	// back to the platform default; excessive values are clamped.
	MaxResults int

	// IncludeExternal controls whether the external catalog may be consulted
	// when the persisted store cannot fill MaxResults on its own.
	//
	// Unlike MaxResults, the zero value is NOT replaced with a default: a
	// zero-value SearchOptions means local-only. The HTTP layer turns an
	// absent include_external parameter into true; direct callers opt in
	// explicitly.
	IncludeExternal bool
}

// # Field Identifiers

// Global field names for validation in the book domain.
const (
	FieldQuery      = "q"
	FieldISBN       = "isbn"
	FieldMaxResults = "max_results"
)
