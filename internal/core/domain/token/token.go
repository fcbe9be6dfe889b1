package token

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/user"
	"time"
)

// Token is an opaque single-use credential proving control of an email
// address or a pending password reset.
type Token string

// VerificationToken ties a pending signup to a one-time code. The store does
// not enforce uniqueness of the identifier, repeated signup requests may
// accumulate several live tokens for the same email.
type VerificationToken struct {
	Token      Token
	Identifier c.Email
	ExpiresAt  time.Time
}

// PasswordResetToken ties a reset request to a user. Exactly one row may
// exist per user at a time, a new request replaces the previous row.
type PasswordResetToken struct {
	Token     Token
	UserID    user.ID
	ExpiresAt time.Time
}
