// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

/*
Package isbn provides normalization and sanity checks for book identifiers.

ISBNs arrive from users and external catalogs in wildly inconsistent shapes
("978-0-13-235088-4", "978 0132350884", "0132350882"). All storage and lookup
code operates on the normalized form only.
*/
package isbn

import "strings"

// Normalize strips hyphens and whitespace from an ISBN.
//
// It performs no validity check; pair it with [Valid] when the input
// comes from an untrusted source.
func Normalize(raw string) string {
	normalized := strings.ReplaceAll(raw, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return normalized
}

// Valid reports whether the value is a plausible ISBN-10 or ISBN-13 after
// normalization.
//
// # Rules
//
//   - ISBN-10: ten characters, first nine digits, last digit or 'X'.
//   - ISBN-13: thirteen digits.
//
// Checksum verification is deliberately omitted: the external catalog is the
// authority on identifier correctness, and rejecting a typo'd checksum here
// would only block the lookup that corrects it.
func Valid(raw string) bool {
	normalized := Normalize(raw)

	switch len(normalized) {
	case 10:
		for i, r := range normalized {
			if r >= '0' && r <= '9' {
				continue
			}
			// 'X' represents the value 10 in the ISBN-10 check digit position.
			if i == 9 && (r == 'X' || r == 'x') {
				continue
			}
			return false
		}
		return true

	case 13:
		for _, r := range normalized {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true

	default:
		return false
	}
}
