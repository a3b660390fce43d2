// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// UserTokenTTL is the lifetime of a regular user session token.
const UserTokenTTL = 24 * time.Hour

// AdminTokenTTL is the lifetime of a local admin session token.
const AdminTokenTTL = 12 * time.Hour
