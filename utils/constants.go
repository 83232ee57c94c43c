package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (86400 seconds = 24 hours)
	AccessTokenTTLSeconds = 86400

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// SessionTimeout is the default session timeout (24 hours)
	SessionTimeout = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Cache constants
const (
	// CacheKeyPrefix namespaces every Redis key written by the service
	CacheKeyPrefix = "simorgh:"

	// RevokedTokenKeyPrefix is the Redis key prefix for revoked token IDs
	RevokedTokenKeyPrefix = CacheKeyPrefix + "revoked_token:"

	// CategoryTreeCacheKey is the Redis key holding the serialized category tree
	CategoryTreeCacheKey = CacheKeyPrefix + "category_tree"

	// CategoryTreeCacheTTL is how long the category tree stays cached
	CategoryTreeCacheTTL = 15 * time.Minute
)

// Listing constants
const (
	// PopularTagsLimit caps the number of tags returned by the popular listing
	PopularTagsLimit = 10

	// DefaultPageSize is the page size used when the client does not ask for one
	DefaultPageSize = 20

	// MaxPageSize caps the page size a client may request
	MaxPageSize = 100
)
