package sendpasswordresettoken

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/logging"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"authbox/internal/core/services"
	"context"
	"errors"
	"fmt"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("send-password-reset-token::%s", i.Email)
}

// Token is absent when the request was silently ignored: the response must
// not reveal whether a resettable account exists for the email.
type Result struct {
	Token c.Optional[token.PasswordResetToken]
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.PasswordResetTokenRepository
	tokenGenerator  token.Generator
	tokenSender     token.PasswordResetTokenSender
	tokenLength     int
	tokenValidFor   time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.PasswordResetTokenRepository,
	tokenGenerator token.Generator,
	tokenSender token.PasswordResetTokenSender,
	tokenLength int,
	tokenValidFor time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		tokenGenerator:  tokenGenerator,
		tokenSender:     tokenSender,
		tokenLength:     tokenLength,
		tokenValidFor:   tokenValidFor,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for an unknown email, request ignored.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !u.HasPassword() {
		s.log.Info(
			ctx,
			"Password reset requested for an account without a password, request ignored.",
			logging.Entry("userID", u.ID),
		)
		return result, nil
	}

	resetToken, err := s.tokenRepository.Upsert(ctx, token.UpsertPasswordResetTokenInput{
		UserID:    u.ID,
		Token:     s.tokenGenerator.GenerateToken(s.tokenLength),
		ExpiresAt: s.now().Add(s.tokenValidFor),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not upsert password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.tokenSender.SendPasswordResetToken(ctx, input.Email, resetToken.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, token.ErrDeliveryFailed
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", resetToken.ExpiresAt),
	)
	return Result{Token: c.NewOptional(resetToken, true)}, nil
}
