package book

import (
	"strings"

	"github.com/folio-app/folio/pkg/pointer"
	"github.com/folio-app/folio/pkg/slug"
)

// Deduplicate removes duplicate records from a merged result set.
//
// # Identity
//
// Two records are duplicates when they share ANY of these keys:
//
//   - external catalog ID
//   - ISBN-13
//   - ISBN-10
//   - folded (title, authors) pair
//
// The earlier-seen record wins and is kept; later duplicates are dropped.
// Order is otherwise preserved, so local-first ordering survives the merge.
func Deduplicate(records []*Book) []*Book {
	seen := make(map[string]struct{}, len(records)*2)
	deduped := make([]*Book, 0, len(records))

	for _, record := range records {
		keys := identityKeys(record)

		isDuplicate := false
		for _, key := range keys {
			if _, found := seen[key]; found {
				isDuplicate = true
				break
			}
		}
		if isDuplicate {
			continue
		}

		for _, key := range keys {
			seen[key] = struct{}{}
		}
		deduped = append(deduped, record)
	}

	return deduped
}

// identityKeys builds the namespaced identity keys for one record.
// Namespacing prevents a volume ID from ever colliding with an ISBN.
func identityKeys(record *Book) []string {
	keys := make([]string, 0, 4)

	if googleID := pointer.Val(record.GoogleID); googleID != "" {
		keys = append(keys, "g:"+googleID)
	}
	if isbn13 := pointer.Val(record.ISBN13); isbn13 != "" {
		keys = append(keys, "i13:"+isbn13)
	}
	if isbn10 := pointer.Val(record.ISBN10); isbn10 != "" {
		keys = append(keys, "i10:"+isbn10)
	}

	keys = append(keys, "t:"+titleAuthorKey(record))
	return keys
}

// titleAuthorKey folds title and authors into an accent- and case-insensitive
// key, so "Les Misérables / Victor Hugo" and "les miserables / victor hugo"
// collapse together even when neither carries an identifier.
func titleAuthorKey(record *Book) string {
	return slug.From(record.Title) + "|" + slug.From(strings.Join(record.Authors, ","))
}
