package verifypasswordresettoken

import (
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/logging"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Token token.Token
}

type Result struct {
	Token token.PasswordResetToken
}

type service struct {
	log             logging.Logger
	tokenRepository token.PasswordResetTokenRepository
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository token.PasswordResetTokenRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	resetToken, err := s.tokenRepository.GetByToken(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		s.log.Info(ctx, "Password reset token is invalid or has expired.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}
	return Result{Token: resetToken}, nil
}
