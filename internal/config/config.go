package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	Secret         string   `env:"SECRET,required"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	BcryptHasherCost int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	TokenLength      int           `env:"TOKEN_LENGTH" envDefault:"8"`
	TokenValidFor    time.Duration `env:"TOKEN_VALID_DURATION" envDefault:"24h"`

	AwsRegion                       string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                    string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                    string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                  string `env:"AWS_EMAIL_SENDER"`
	AwsEmailVerificationTemplate    string `env:"AWS_EMAIL_VERIFICATION_TEMPLATE" envDefault:"verification-token"`
	AwsEmailPasswordResetTemplate   string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset-token"`
	AwsEmailPasswordChangedTemplate string `env:"AWS_EMAIL_PASSWORD_CHANGED_TEMPLATE" envDefault:"password-changed"`

	RabbitmqAlertExchange string `env:"RABBITMQ_ALERT_EXCHANGE" envDefault:"authbox-alerts"`
	RabbitmqAlertQueue    string `env:"RABBITMQ_ALERT_QUEUE" envDefault:"password-changed-alert"`

	// Session handling is delegated to an external layer, these options are
	// only validated and passed through.
	SessionStrategy   string   `env:"SESSION_STRATEGY" envDefault:"jwt"`
	IdentityProviders []string `env:"IDENTITY_PROVIDERS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
