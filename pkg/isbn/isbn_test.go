// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

package isbn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folio-app/folio/pkg/isbn"
)

/*
TestNormalize verifies hyphen and whitespace stripping.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hyphenated_isbn13", "978-0-13-235088-4", "9780132350884"},
		{"spaced", "978 0132350884", "9780132350884"},
		{"already_clean", "9780132350884", "9780132350884"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbn.Normalize(tt.input))
		})
	}
}

/*
TestValid checks the ISBN-10/ISBN-13 shape rules.
*/
func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"isbn13", "9780132350884", true},
		{"isbn13_hyphenated", "978-0-13-235088-4", true},
		{"isbn10", "0132350882", true},
		{"isbn10_check_x", "080442957X", true},
		{"isbn10_lowercase_x", "080442957x", true},
		{"x_not_last", "08044X9571", false},
		{"isbn13_with_letter", "978013235088X", false},
		{"wrong_length", "12345", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbn.Valid(tt.input))
		})
	}
}
