// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, upload constraints, and cross-cutting
keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.
  - Uploads: Size and content-type restrictions for documents and images.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "acadex-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Generous enough for multipart document uploads.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// SessionPurgeInterval is how often expired refresh sessions are
	// physically removed from the database.
	SessionPurgeInterval = 6 * time.Hour

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "acadex.app"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refreshToken"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Upload Constraints

const (
	// MaxDocumentBytes is the upper bound for curriculum document uploads (10 MiB).
	MaxDocumentBytes = 10 * 1024 * 1024

	// MaxImageBytes is the upper bound for logo/avatar image uploads (5 MiB).
	MaxImageBytes = 5 * 1024 * 1024

	// MultipartMemoryLimit is how much of a multipart body is held in memory
	// before spilling to temporary files.
	MultipartMemoryLimit = 8 * 1024 * 1024
)

// DocumentContentTypes lists the accepted MIME types for curriculum files.
var DocumentContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// ImageContentTypes lists the accepted MIME types for logo/avatar images.
var ImageContentTypes = []string{
	"image/png",
	"image/jpeg",
}

// # HTTP Headers

const (
	HeaderXRequestID         = "X-Request-ID"
	HeaderXRealIP            = "X-Real-IP"
	HeaderXForwardedFor      = "X-Forwarded-For"
	HeaderOrigin             = "Origin"
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
)
