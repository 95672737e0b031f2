// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID, or apperr.NotFound.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, or apperr.NotFound.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username, or apperr.NotFound.
	FindByUsername(context context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
//
// Implementations must treat a session as active only when it is unrevoked
// AND unexpired; FindActiveByTokenHash enforces both conditions in one query
// so the rotation flow cannot race a clock check against a revocation check.
type SessionRepository interface {

	// Create persists a new tracking session for an authenticated login.
	Create(context context.Context, session *Session) error

	// FindActiveByTokenHash returns the active session matching the token hash.
	// Revoked, expired, and unknown tokens all surface as apperr.NotFound.
	FindActiveByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke stamps RevokedAt on a specific session. Revoking an already
	// revoked session is a no-op, not an error.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the userID.
	RevokeAll(context context.Context, userID string) error

	// RevokeOthers revokes all of the user's active sessions except one.
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	// DeleteExpired physically removes sessions whose ExpiresAt is in the past.
	// Maintenance only; the rotation protocol never depends on it.
	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token associated with a userID for a limited duration.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	Get(context context.Context, token string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(context context.Context, token string) error
}
