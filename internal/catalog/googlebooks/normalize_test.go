// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

package googlebooks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-app/folio/internal/core/book"
)

/*
TestParsePublishedDate covers the partial date formats the upstream catalog
serves.
*/
func TestParsePublishedDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *time.Time
	}{
		{"year_only", "1965", timePtr(1965, time.January, 1)},
		{"year_month", "1965-06", timePtr(1965, time.June, 1)},
		{"full_date", "1965-06-15", timePtr(1965, time.June, 15)},
		{"empty", "", nil},
		{"garbage", "not-a-date", nil},
		{"wrong_length", "19", nil},
		{"invalid_month", "1965-13", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := parsePublishedDate(tt.raw)

			if tt.expected == nil {
				assert.Nil(t, parsed)
				return
			}
			require.NotNil(t, parsed)
			assert.True(t, tt.expected.Equal(*parsed))
		})
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	value := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &value
}

/*
TestBestCoverImage verifies the size preference order and the https rewrite.
*/
func TestBestCoverImage(t *testing.T) {
	tests := []struct {
		name     string
		links    *imageLinks
		expected string
	}{
		{"nil_links", nil, ""},
		{"no_images", &imageLinks{}, ""},
		{
			"large_preferred",
			&imageLinks{Large: "https://img/large", Thumbnail: "https://img/thumb"},
			"https://img/large",
		},
		{
			"falls_back_to_thumbnail",
			&imageLinks{Thumbnail: "https://img/thumb"},
			"https://img/thumb",
		},
		{
			"http_rewritten",
			&imageLinks{Medium: "http://books.google.com/cover?id=1"},
			"https://books.google.com/cover?id=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bestCoverImage(tt.links))
		})
	}
}

/*
TestNormalizeVolume verifies the mapping from the upstream wire shape to the
canonical record.
*/
func TestNormalizeVolume(t *testing.T) {
	item := volumeItem{
		ID: "vol-1",
		VolumeInfo: volumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			PublishedDate: "1965",
			PageCount:     412,
			Description:   "Spice and sand.",
			ImageLinks:    &imageLinks{Thumbnail: "http://img/thumb"},
			IndustryIdentifiers: []industryIdentifier{
				{Type: "ISBN_10", Identifier: "0441172717"},
				{Type: "ISBN_13", Identifier: "9780441172719"},
				{Type: "ISBN_13", Identifier: "9999999999999"},
				{Type: "OTHER", Identifier: "OCLC:123"},
			},
		},
	}

	record := normalizeVolume(item)

	assert.Equal(t, "vol-1", record.ID)
	require.NotNil(t, record.GoogleID)
	assert.Equal(t, "vol-1", *record.GoogleID)
	assert.Equal(t, "Dune", record.Title)
	assert.Equal(t, []string{"Frank Herbert"}, record.Authors)
	assert.Equal(t, book.SourceExternal, record.Source)

	require.NotNil(t, record.PageCount)
	assert.Equal(t, 412, *record.PageCount)
	require.NotNil(t, record.PublishedDate)
	assert.Equal(t, 1965, record.PublishedDate.Year())
	require.NotNil(t, record.CoverURL)
	assert.Equal(t, "https://img/thumb", *record.CoverURL)

	// First identifier of each type wins.
	require.NotNil(t, record.ISBN10)
	assert.Equal(t, "0441172717", *record.ISBN10)
	require.NotNil(t, record.ISBN13)
	assert.Equal(t, "9780441172719", *record.ISBN13)
}

/*
TestNormalizeVolume_Sparse verifies placeholders and omissions for volumes
with minimal metadata.
*/
func TestNormalizeVolume_Sparse(t *testing.T) {
	record := normalizeVolume(volumeItem{ID: "vol-2"})

	assert.Equal(t, "Unknown Title", record.Title)
	assert.NotNil(t, record.Authors)
	assert.Empty(t, record.Authors)
	assert.Nil(t, record.PageCount)
	assert.Nil(t, record.Description)
	assert.Nil(t, record.PublishedDate)
	assert.Nil(t, record.CoverURL)
	assert.Nil(t, record.ISBN10)
	assert.Nil(t, record.ISBN13)
}
