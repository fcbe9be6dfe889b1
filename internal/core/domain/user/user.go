package user

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// User is an account record. An account either carries an email + password
// hash (email sign-in) or was created by an external identity provider and
// has no password at all.
type User struct {
	ID              ID
	Email           c.Optional[c.Email]
	Name            c.Optional[string]
	Image           c.Optional[string]
	PasswordHash    c.Optional[PasswordHash]
	CreatedAt       time.Time
	EmailVerifiedAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.PasswordHash.IsPresent && !u.Email.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("user %d has a password but no email", u.ID))
	}
	return nil
}

func (u *User) HasPassword() bool {
	return u.PasswordHash.IsPresent
}

func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt.IsPresent
}
