package signupwithemail

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/logging"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"authbox/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Token    token.Token
	Name     string
	Password user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.VerificationTokenRepository
	passwordHasher  user.PasswordHasher
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.VerificationTokenRepository,
	passwordHasher user.PasswordHasher,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		passwordHasher:  passwordHasher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	verificationToken, err := s.tokenRepository.GetByToken(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		s.log.Info(ctx, "Verification token is invalid or has expired.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get verification token.", logging.Entry("err", err))
		return result, err
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdUser, err := s.userRepository.Create(ctx, user.CreateUserInput{
		Email:           c.NewOptional(verificationToken.Identifier, true),
		Name:            c.NewOptional(input.Name, input.Name != ""),
		PasswordHash:    c.NewOptional(passwordHash, true),
		CreatedAt:       s.now(),
		EmailVerifiedAt: c.NewOptional(s.now(), true),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		// The email got registered between the token request and this call.
		s.log.Info(
			ctx,
			"User with the email already exists.",
			logging.Entry("email", verificationToken.Identifier),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", verificationToken.Identifier),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The account is created at this point, token cleanup is best effort.
	deleted, err := s.tokenRepository.DeleteByIdentifier(ctx, verificationToken.Identifier)
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not delete consumed verification tokens.",
			logging.Entry("email", verificationToken.Identifier),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(
			ctx,
			"Consumed verification tokens deleted.",
			logging.Entry("email", verificationToken.Identifier),
			logging.Entry("deleted", deleted),
		)
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
