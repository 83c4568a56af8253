package book

import "context"

// Identifiers is the OR-match filter for [Repository.FindByIdentifiers].
// Empty fields are ignored; at least one must be set.
type Identifiers struct {
	ID       string
	GoogleID string
	ISBN13   string
	ISBN10   string
}

// IsZero reports whether no identifier is set.
func (ids Identifiers) IsZero() bool {
	return ids.ID == "" && ids.GoogleID == "" && ids.ISBN13 == "" && ids.ISBN10 == ""
}

// Repository defines the data access contract for the persisted book store.
//
// Implementations must treat Insert as atomic insert-if-absent: concurrent
// writers racing on the same external record are resolved by the store's
// unique indexes, surfaced to callers as a duplicate-classified error.
type Repository interface {

	// FindByIdentifiers returns the first record matching ANY of the provided
	// non-empty identifiers (logical OR). Absence is an error classified as
	// not-found.
	FindByIdentifiers(context context.Context, ids Identifiers) (*Book, error)

	// FindByText returns up to limit records whose title contains the query
	// (case-insensitive) or whose author list contains one of the query terms
	// exactly. Exact title matches sort first, then most-recently-created.
	FindByText(context context.Context, query string, limit int) ([]*Book, error)

	// Insert persists a new record, assigning its ID and timestamps in place.
	Insert(context context.Context, book *Book) error

	// FindByID returns the record with the given persisted-store ID.
	FindByID(context context.Context, id string) (*Book, error)

	// ListRecent returns the most-recently-created records with a total count
	// for pagination. Used for the discovery/empty-state surface.
	ListRecent(context context.Context, limit, offset int) ([]*Book, int, error)
}
