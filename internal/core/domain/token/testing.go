package token

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/user"
	"context"
	"fmt"
	"sync"
	"time"
)

type FakeTokenGenerator struct {
	Token Token
}

func NewFakeTokenGenerator(t string) *FakeTokenGenerator {
	return &FakeTokenGenerator{Token: Token(t)}
}

func (g *FakeTokenGenerator) GenerateToken(length int) Token {
	return g.Token
}

type FakeVerificationTokenRepository struct {
	Tokens      []VerificationToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeVerificationTokenRepository() *FakeVerificationTokenRepository {
	return &FakeVerificationTokenRepository{Tokens: make([]VerificationToken, 0, 10)}
}

func (r *FakeVerificationTokenRepository) Create(
	ctx context.Context,
	input CreateVerificationTokenInput,
) (vt VerificationToken, err error) {
	if r.ReturnError {
		return vt, fmt.Errorf("could not create verification token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	vt = VerificationToken{
		Token:      input.Token,
		Identifier: input.Identifier,
		ExpiresAt:  input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, vt)
	return vt, nil
}

func (r *FakeVerificationTokenRepository) GetByToken(
	ctx context.Context,
	t Token,
	now time.Time,
) (vt VerificationToken, err error) {
	if r.ReturnError {
		return vt, fmt.Errorf("could not get verification token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, vt := range r.Tokens {
		if vt.Token == t && vt.ExpiresAt.After(now) {
			return vt, nil
		}
	}
	return vt, ErrTokenDoesNotExist
}

func (r *FakeVerificationTokenRepository) DeleteByIdentifier(
	ctx context.Context,
	identifier c.Email,
) (deleted int64, err error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete verification tokens for %s", identifier)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, vt := range r.Tokens {
		if vt.Identifier == identifier {
			deleted++
			continue
		}
		kept = append(kept, vt)
	}
	r.Tokens = kept
	return deleted, nil
}

type FakePasswordResetTokenRepository struct {
	Tokens         map[user.ID]PasswordResetToken
	UserRepository user.UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakePasswordResetTokenRepository(userRepository user.UserRepository) *FakePasswordResetTokenRepository {
	return &FakePasswordResetTokenRepository{
		Tokens:         make(map[user.ID]PasswordResetToken),
		UserRepository: userRepository,
	}
}

func (r *FakePasswordResetTokenRepository) Upsert(
	ctx context.Context,
	input UpsertPasswordResetTokenInput,
) (rt PasswordResetToken, err error) {
	if r.ReturnError {
		return rt, fmt.Errorf("could not upsert password reset token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rt = PasswordResetToken{
		Token:     input.Token,
		UserID:    input.UserID,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens[input.UserID] = rt
	return rt, nil
}

func (r *FakePasswordResetTokenRepository) GetByToken(
	ctx context.Context,
	t Token,
	now time.Time,
) (rt PasswordResetToken, err error) {
	if r.ReturnError {
		return rt, fmt.Errorf("could not get password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, rt := range r.Tokens {
		if rt.Token == t && rt.ExpiresAt.After(now) {
			return rt, nil
		}
	}
	return rt, ErrTokenDoesNotExist
}

func (r *FakePasswordResetTokenRepository) GetByTokenWithUser(
	ctx context.Context,
	t Token,
	now time.Time,
) (rt PasswordResetToken, u user.User, err error) {
	rt, err = r.GetByToken(ctx, t, now)
	if err != nil {
		return rt, u, err
	}
	u, err = r.UserRepository.GetByID(ctx, rt.UserID)
	if err != nil {
		return rt, u, err
	}
	return rt, u, nil
}

func (r *FakePasswordResetTokenRepository) DeleteByUserID(ctx context.Context, userID user.ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete password reset token for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[userID]; !ok {
		return ErrTokenDoesNotExist
	}
	delete(r.Tokens, userID)
	return nil
}

type SentVerificationToken struct {
	Identifier c.Email
	Token      Token
}

type FakeVerificationTokenSender struct {
	Sent        []SentVerificationToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeVerificationTokenSender() *FakeVerificationTokenSender {
	return &FakeVerificationTokenSender{}
}

func (s *FakeVerificationTokenSender) SendVerificationToken(
	ctx context.Context,
	identifier c.Email,
	t Token,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send verification token to %s", identifier)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentVerificationToken{Identifier: identifier, Token: t})
	return nil
}

func (s *FakeVerificationTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakeVerificationTokenSender) LastSent() SentVerificationToken {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type SentPasswordResetToken struct {
	Email c.Email
	Token Token
}

type FakePasswordResetTokenSender struct {
	Sent        []SentPasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	email c.Email,
	t Token,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token to %s", email)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentPasswordResetToken{Email: email, Token: t})
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSent() SentPasswordResetToken {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
