package sendverificationtoken

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
	return fmt.Sprintf("send-verification-token::%s", i.Email)
}

type Result struct {
	Token token.VerificationToken
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.VerificationTokenRepository
	tokenGenerator  token.Generator
	tokenSender     token.VerificationTokenSender
	tokenLength     int
	tokenValidFor   time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.VerificationTokenRepository,
	tokenGenerator token.Generator,
	tokenSender token.VerificationTokenSender,
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
	_, err = s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err == nil {
		s.log.Info(
			ctx,
			"Email is already registered, verification token not issued.",
			logging.Entry("email", input.Email),
		)
		return result, user.ErrEmailAlreadyExists
	}
	if !errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Error(
			ctx,
			"Could not check whether the email is registered.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	verificationToken, err := s.tokenRepository.Create(ctx, token.CreateVerificationTokenInput{
		Token:      s.tokenGenerator.GenerateToken(s.tokenLength),
		Identifier: input.Email,
		ExpiresAt:  s.now().Add(s.tokenValidFor),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create verification token.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.tokenSender.SendVerificationToken(ctx, verificationToken.Identifier, verificationToken.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		// The token row stays, a retried request simply issues another one.
		s.log.Error(
			ctx,
			"Could not send verification token.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, token.ErrDeliveryFailed
	}

	s.log.Info(
		ctx,
		"Verification token has been sent.",
		logging.Entry("email", input.Email),
		logging.Entry("expiresAt", verificationToken.ExpiresAt),
	)
	return Result{Token: verificationToken}, nil
}
