package user

import (
	c "authbox/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Email           c.Optional[c.Email]
	Name            c.Optional[string]
	Image           c.Optional[string]
	PasswordHash    c.Optional[PasswordHash]
	CreatedAt       time.Time
	EmailVerifiedAt c.Optional[time.Time]
}

// UpdateUserInput is a partial update, only the flagged fields change.
type UpdateUserInput struct {
	ID                   ID
	DoNameUpdate         bool
	Name                 c.Optional[string]
	DoImageUpdate        bool
	Image                c.Optional[string]
	DoPasswordHashUpdate bool
	PasswordHash         c.Optional[PasswordHash]
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, passwordHash PasswordHash) error
	Update(ctx context.Context, input UpdateUserInput) (User, error)
}
