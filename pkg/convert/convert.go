// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions with
explicit defaults. This is highly useful in API handler contexts parsing query
parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToBoolD parses a boolean string ("true", "1", "false", "0"), returning the
// provided default if the string is empty or cannot be parsed.
func ToBoolD(str string, def bool) bool {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as a boolean
	if v, err := strconv.ParseBool(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}
