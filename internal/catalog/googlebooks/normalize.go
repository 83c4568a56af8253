// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

package googlebooks

import (
	"strings"
	"time"

	"github.com/folio-app/folio/internal/core/book"
	"github.com/folio-app/folio/pkg/pointer"
)

// # Wire Types

// volumesResponse is the envelope of the volumes list endpoint.
type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

// volumeItem is a single search hit or a direct volume fetch.
type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	PublishedDate       string               `json:"publishedDate"`
	PageCount           int                  `json:"pageCount"`
	Description         string               `json:"description"`
	ImageLinks          *imageLinks          `json:"imageLinks"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
	Small     string `json:"small"`
	Medium    string `json:"medium"`
	Large     string `json:"large"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// # Normalization

// unknownTitle is the placeholder for volumes the catalog serves untitled.
const unknownTitle = "Unknown Title"

// normalizeVolume maps one upstream volume onto the canonical record shape,
// tagged [book.SourceExternal]. ID and GoogleID both carry the volume ID
// until the record is persisted and assigned a store ID.
func normalizeVolume(item volumeItem) *book.Book {
	info := item.VolumeInfo

	record := &book.Book{
		ID:       item.ID,
		GoogleID: &item.ID,
		Title:    info.Title,
		Authors:  info.Authors,
		Source:   book.SourceExternal,
	}
	if record.Title == "" {
		record.Title = unknownTitle
	}
	if record.Authors == nil {
		record.Authors = []string{}
	}
	if info.PageCount > 0 {
		record.PageCount = pointer.To(info.PageCount)
	}
	if info.Description != "" {
		record.Description = pointer.To(info.Description)
	}
	if published := parsePublishedDate(info.PublishedDate); published != nil {
		record.PublishedDate = published
	}
	if cover := bestCoverImage(info.ImageLinks); cover != "" {
		record.CoverURL = pointer.To(cover)
	}

	// First identifier of each type wins; later duplicates are ignored.
	for _, identifier := range info.IndustryIdentifiers {
		switch identifier.Type {
		case "ISBN_10":
			if record.ISBN10 == nil {
				record.ISBN10 = pointer.To(identifier.Identifier)
			}
		case "ISBN_13":
			if record.ISBN13 == nil {
				record.ISBN13 = pointer.To(identifier.Identifier)
			}
		}
	}

	return record
}

// parsePublishedDate handles the catalog's partial date formats.
//
// # Format
//
// "YYYY" resolves to January 1st, "YYYY-MM" to the 1st of the month, and
// "YYYY-MM-DD" to the exact day. Anything else is treated as absent.
func parsePublishedDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	var layout string
	switch len(raw) {
	case 4:
		layout = "2006"
	case 7:
		layout = "2006-01"
	case 10:
		layout = "2006-01-02"
	default:
		return nil
	}

	parsed, err := time.Parse(layout, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// bestCoverImage picks the largest available cover, rewritten to https.
// Returns "" when no image is offered.
func bestCoverImage(links *imageLinks) string {
	if links == nil {
		return ""
	}
	for _, candidate := range []string{links.Large, links.Medium, links.Small, links.Thumbnail} {
		if candidate == "" {
			continue
		}
		if rest, insecure := strings.CutPrefix(candidate, "http://"); insecure {
			return "https://" + rest
		}
		return candidate
	}
	return ""
}
