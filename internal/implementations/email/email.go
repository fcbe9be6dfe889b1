package email

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                  string
	verificationTemplate    string
	passwordResetTemplate   string
	passwordChangedTemplate string
	tokenValidFor           time.Duration
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	verificationTemplate string,
	passwordResetTemplate string,
	passwordChangedTemplate string,
	tokenValidFor time.Duration,
) *EmailSender {
	return &EmailSender{
		ses:                     ses.NewFromConfig(awsConfig),
		sender:                  sender,
		verificationTemplate:    verificationTemplate,
		passwordResetTemplate:   passwordResetTemplate,
		passwordChangedTemplate: passwordChangedTemplate,
		tokenValidFor:           tokenValidFor,
	}
}

func (s *EmailSender) SendVerificationToken(ctx context.Context, identifier c.Email, t token.Token) error {
	if identifier == "" {
		return errors.New("identifier is not defined")
	}
	return s.sendTemplated(ctx, string(identifier), s.verificationTemplate, tokenTemplateParams{
		Token:      string(t),
		ValidHours: int(s.tokenValidFor.Hours()),
	})
}

func (s *EmailSender) SendPasswordResetToken(ctx context.Context, email c.Email, t token.Token) error {
	if email == "" {
		return errors.New("email is not defined")
	}
	return s.sendTemplated(ctx, string(email), s.passwordResetTemplate, tokenTemplateParams{
		Token:      string(t),
		ValidHours: int(s.tokenValidFor.Hours()),
	})
}

func (s *EmailSender) SendPasswordChangedAlert(ctx context.Context, u user.User, changedAt time.Time) error {
	if !u.Email.IsPresent {
		return errors.New("user email is not defined")
	}
	return s.sendTemplated(ctx, string(u.Email.Value), s.passwordChangedTemplate, passwordChangedTemplateParams{
		ChangedAt: carbon.CreateFromStdTime(changedAt).ToDayDateTimeString(),
	})
}

func (s *EmailSender) sendTemplated(ctx context.Context, to string, template string, params interface{}) error {
	templateParamsBytes, err := json.Marshal(params)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{to},
			},
			Template:     &template,
			TemplateData: &templateParams,
		},
	)
	return err
}

type tokenTemplateParams struct {
	Token      string `json:"token"`
	ValidHours int    `json:"validHours"`
}

type passwordChangedTemplateParams struct {
	ChangedAt string `json:"changedAt"`
}
