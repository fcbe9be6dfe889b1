package token

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/user"
	"context"
	"time"
)

type CreateVerificationTokenInput struct {
	Token      Token
	Identifier c.Email
	ExpiresAt  time.Time
}

// VerificationTokenRepository persists signup verification tokens. Expiry is
// part of the lookup predicate: an expired row is reported as absent, never
// as "found but expired".
type VerificationTokenRepository interface {
	Create(ctx context.Context, input CreateVerificationTokenInput) (VerificationToken, error)
	GetByToken(ctx context.Context, t Token, now time.Time) (VerificationToken, error)
	DeleteByIdentifier(ctx context.Context, identifier c.Email) (deleted int64, err error)
}

type UpsertPasswordResetTokenInput struct {
	UserID    user.ID
	Token     Token
	ExpiresAt time.Time
}

// PasswordResetTokenRepository persists password reset tokens, one row per
// user. Upsert replaces any previous token for the user, implicitly
// invalidating it.
type PasswordResetTokenRepository interface {
	Upsert(ctx context.Context, input UpsertPasswordResetTokenInput) (PasswordResetToken, error)
	GetByToken(ctx context.Context, t Token, now time.Time) (PasswordResetToken, error)
	GetByTokenWithUser(ctx context.Context, t Token, now time.Time) (PasswordResetToken, user.User, error)
	DeleteByUserID(ctx context.Context, userID user.ID) error
}
