package services

import (
	"authbox/internal/app/deps"
	drl "authbox/internal/core/domain/rate_limiter"
	"authbox/internal/core/services"
	ratelimiting "authbox/internal/core/services/rate_limiting"
	resetpassword "authbox/internal/core/services/reset_password"
	sendpasswordresettoken "authbox/internal/core/services/send_password_reset_token"
	sendverificationtoken "authbox/internal/core/services/send_verification_token"
	signupwithemail "authbox/internal/core/services/sign_up_with_email"
	verifypasswordresettoken "authbox/internal/core/services/verify_password_reset_token"
	verifysignuptoken "authbox/internal/core/services/verify_signup_token"
)

type Services struct {
	SendVerificationToken    services.Service[sendverificationtoken.Input, sendverificationtoken.Result]
	VerifySignUpToken        services.Service[verifysignuptoken.Input, verifysignuptoken.Result]
	SignUpWithEmail          services.Service[signupwithemail.Input, signupwithemail.Result]
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendVerificationToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		sendverificationtoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.VerificationTokenRepository,
			deps.TokenGenerator,
			deps.VerificationTokenSender,
			deps.Config.TokenLength,
			deps.Config.TokenValidFor,
			deps.Now,
		),
	)
	s.VerifySignUpToken = verifysignuptoken.New(
		deps.Logger,
		deps.VerificationTokenRepository,
		deps.Now,
	)
	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.VerificationTokenRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetTokenRepository,
			deps.TokenGenerator,
			deps.PasswordResetTokenSender,
			deps.Config.TokenLength,
			deps.Config.TokenValidFor,
			deps.Now,
		),
	)
	s.VerifyPasswordResetToken = verifypasswordresettoken.New(
		deps.Logger,
		deps.PasswordResetTokenRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenRepository,
		deps.PasswordHasher,
		deps.PasswordChangedAlertSender,
		deps.Now,
	)

	return s
}
