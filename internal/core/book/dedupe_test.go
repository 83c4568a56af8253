package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-app/folio/internal/core/book"
)

/*
TestDeduplicate_FirstSeenWins verifies that ordering decides which instance
survives when two records share an identity.
*/
func TestDeduplicate_FirstSeenWins(t *testing.T) {
	local := persistedRecord("db-1", "Dune", "9780441172719")
	external := externalRecord("vol-1", "Dune", "9780441172719")

	results := book.Deduplicate([]*book.Book{local, external})

	require.Len(t, results, 1)
	assert.Equal(t, "db-1", results[0].ID)

	reversed := book.Deduplicate([]*book.Book{external, local})

	require.Len(t, reversed, 1)
	assert.Equal(t, "vol-1", reversed[0].ID)
}

/*
TestDeduplicate_Identities exercises each identity dimension in isolation.
*/
func TestDeduplicate_Identities(t *testing.T) {
	t.Run("shared_google_id", func(t *testing.T) {
		googleID := "vol-1"
		first := &book.Book{ID: "a", GoogleID: &googleID, Title: "Dune"}
		second := &book.Book{ID: "b", GoogleID: &googleID, Title: "Dune (Reissue)"}

		results := book.Deduplicate([]*book.Book{first, second})
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].ID)
	})

	t.Run("shared_isbn10", func(t *testing.T) {
		isbn10 := "0441172717"
		first := &book.Book{ID: "a", ISBN10: &isbn10, Title: "Dune"}
		second := &book.Book{ID: "b", ISBN10: &isbn10, Title: "Dune"}

		results := book.Deduplicate([]*book.Book{first, second})
		require.Len(t, results, 1)
	})

	t.Run("title_author_fold", func(t *testing.T) {
		// No hard identifiers: fall back to folded title+authors identity.
		first := &book.Book{ID: "a", Title: "Émile Zola", Authors: []string{"Henri Mitterand"}}
		second := &book.Book{ID: "b", Title: "emile zola", Authors: []string{"Henri MITTERAND"}}

		results := book.Deduplicate([]*book.Book{first, second})
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].ID)
	})

	t.Run("same_title_different_authors_kept", func(t *testing.T) {
		first := &book.Book{ID: "a", Title: "Collected Poems", Authors: []string{"W. B. Yeats"}}
		second := &book.Book{ID: "b", Title: "Collected Poems", Authors: []string{"Sylvia Plath"}}

		results := book.Deduplicate([]*book.Book{first, second})
		require.Len(t, results, 2)
	})
}

/*
TestDeduplicate_CrossDimension verifies that records are collapsed when ANY
identity dimension matches, not all of them.
*/
func TestDeduplicate_CrossDimension(t *testing.T) {
	isbn13 := "9780441172719"
	googleA := "vol-1"
	googleB := "vol-2"

	// Same ISBN-13 under different catalog volume IDs.
	first := &book.Book{ID: "a", GoogleID: &googleA, ISBN13: &isbn13, Title: "Dune"}
	second := &book.Book{ID: "b", GoogleID: &googleB, ISBN13: &isbn13, Title: "Dune"}

	results := book.Deduplicate([]*book.Book{first, second})
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, book.Deduplicate(nil))
	assert.Empty(t, book.Deduplicate([]*book.Book{}))
}
