package response

import (
	"authbox/internal/core/domain/user"
	"time"
)

type User struct {
	ID              int64      `json:"id"`
	Email           *string    `json:"email,omitempty"`
	Name            *string    `json:"name,omitempty"`
	Image           *string    `json:"image,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	if du.Email.IsPresent {
		email := string(du.Email.Value)
		u.Email = &email
	}
	if du.Name.IsPresent {
		name := du.Name.Value
		u.Name = &name
	}
	if du.Image.IsPresent {
		image := du.Image.Value
		u.Image = &image
	}
	u.CreatedAt = du.CreatedAt
	if du.EmailVerifiedAt.IsPresent {
		verifiedAt := du.EmailVerifiedAt.Value
		u.EmailVerifiedAt = &verifiedAt
	}
}
