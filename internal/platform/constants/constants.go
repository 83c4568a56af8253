// Copyright (c) 2026 Folio. All rights reserved.
// Author: hello@folio-app.dev

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Catalog: Deadlines and result caps for the external book catalog.
  - Rate Limiting: Burst capacities and IP tracking TTLs.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "folio-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	//
	// It must stay above [CatalogRequestTimeout] so a slow external catalog
	// call can still degrade gracefully instead of tearing down the request.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # External Catalog

const (
	// CatalogBaseURL is the default Google Books volumes API root.
	CatalogBaseURL = "https://www.googleapis.com/books/v1"

	// CatalogRequestTimeout bounds every single request to the external book catalog.
	CatalogRequestTimeout = 10 * time.Second

	// DefaultSearchMaxResults is the result cap applied when the caller does not specify one.
	DefaultSearchMaxResults = 20

	// MaxSearchMaxResults is the hard upper bound for a single search.
	// It matches the page-size ceiling of the Google Books volumes API.
	MaxSearchMaxResults = 40
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "folio.app"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore = "core"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixSearch namespaces cached search result sets.
	RedisPrefixSearch = "books:search:"
)

// # Volatile Cache Timing

const (
	// SearchCacheTTL is how long a cached search result set stays valid.
	// Short on purpose: the persisted catalog grows on every external hit,
	// and a stale entry would hide freshly cached books.
	SearchCacheTTL = 5 * time.Minute
)
