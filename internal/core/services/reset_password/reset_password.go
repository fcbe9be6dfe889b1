package reset_password

import (
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
	Token       token.Token
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.PasswordResetTokenRepository
	passwordHasher  user.PasswordHasher
	alertSender     user.PasswordChangedAlertSender
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.PasswordResetTokenRepository,
	passwordHasher user.PasswordHasher,
	alertSender user.PasswordChangedAlertSender,
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
	if alertSender == nil {
		panic(e.NewNilArgumentError("alertSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		passwordHasher:  passwordHasher,
		alertSender:     alertSender,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	resetToken, u, err := s.tokenRepository.GetByTokenWithUser(ctx, input.Token, s.now())
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

	if !u.HasPassword() {
		s.log.Info(
			ctx,
			"Password reset attempted for an account without a password.",
			logging.Entry("userID", u.ID),
		)
		return result, user.ErrPasswordNotSet
	}
	if s.passwordHasher.ValidatePassword(input.NewPassword, u.PasswordHash.Value) {
		return result, user.ErrPasswordNotChanged
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The password is changed at this point, everything below is best effort.
	if err := s.tokenRepository.DeleteByUserID(ctx, resetToken.UserID); err != nil {
		s.log.Warning(
			ctx,
			"Could not delete consumed password reset token.",
			logging.Entry("userID", resetToken.UserID),
			logging.Entry("err", err),
		)
	}
	if err := s.alertSender.SendPasswordChangedAlert(ctx, u, s.now()); err != nil {
		s.log.Error(
			ctx,
			"Could not send password changed alert.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return result, nil
}
