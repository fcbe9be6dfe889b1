package app

import (
	"authbox/internal/app/deps"
	"authbox/internal/app/services"
	resetpassword "authbox/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "authbox/internal/http/handlers/auth/send_password_reset_token"
	sendverificationtoken "authbox/internal/http/handlers/auth/send_verification_token"
	signupwithemail "authbox/internal/http/handlers/auth/sign_up_with_email"
	verifypasswordresettoken "authbox/internal/http/handlers/auth/verify_password_reset_token"
	verifysignuptoken "authbox/internal/http/handlers/auth/verify_signup_token"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(
		http.MethodPost,
		"/signup/token",
		sendverificationtoken.New(s.SendVerificationToken, isTestMode),
	)
	authRouter.Method(http.MethodPost, "/signup/token/verify", verifysignuptoken.New(s.VerifySignUpToken))
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token/verify",
		verifypasswordresettoken.New(s.VerifyPasswordResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
