package user

import (
	c "authbox/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if input.Email.IsPresent && u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:              maxID + 1,
		Email:           input.Email,
		Name:            input.Name,
		Image:           input.Image,
		PasswordHash:    input.PasswordHash,
		CreatedAt:       input.CreatedAt,
		EmailVerifiedAt: input.EmailVerifiedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email.IsPresent && u.Email.Value == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, passwordHash PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = c.NewOptional(passwordHash, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.ID {
			if input.DoNameUpdate {
				r.Users[ix].Name = input.Name
			}
			if input.DoImageUpdate {
				r.Users[ix].Image = input.Image
			}
			if input.DoPasswordHashUpdate {
				r.Users[ix].PasswordHash = input.PasswordHash
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

type SentPasswordChangedAlert struct {
	User      User
	ChangedAt time.Time
}

type FakePasswordChangedAlertSender struct {
	Sent        []SentPasswordChangedAlert
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedAlertSender() *FakePasswordChangedAlertSender {
	return &FakePasswordChangedAlertSender{}
}

func (s *FakePasswordChangedAlertSender) SendPasswordChangedAlert(
	ctx context.Context,
	u User,
	changedAt time.Time,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password changed alert for user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentPasswordChangedAlert{User: u, ChangedAt: changedAt})
	return nil
}

func (s *FakePasswordChangedAlertSender) SentCount() int {
	return len(s.Sent)
}
