package token

import (
	c "authbox/internal/core/domain/common"
	"context"
)

type VerificationTokenSender interface {
	SendVerificationToken(ctx context.Context, identifier c.Email, t Token) error
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, email c.Email, t Token) error
}
