package sendverificationtoken

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/logging"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"authbox/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	TOKEN        = "cafe0123"
	EMAIL        = c.Email("test@test.test")
	TOKEN_LENGTH = 8
)

var NOW time.Time = time.Date(2023, 1, 15, 12, 30, 0, 0, time.UTC)

const TOKEN_VALID_FOR = 24 * time.Hour

type testSuite struct {
	suite.Suite
	Logger    *logging.FakeLogger
	UserRepo  *user.FakeUserRepository
	TokenRepo *token.FakeVerificationTokenRepository
	Generator *token.FakeTokenGenerator
	Sender    *token.FakeVerificationTokenSender
	Service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepo = user.NewFakeUserRepository()
	suite.TokenRepo = token.NewFakeVerificationTokenRepository()
	suite.Generator = token.NewFakeTokenGenerator(TOKEN)
	suite.Sender = token.NewFakeVerificationTokenSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepo,
		suite.TokenRepo,
		suite.Generator,
		suite.Sender,
		TOKEN_LENGTH,
		TOKEN_VALID_FOR,
		func() time.Time { return NOW },
	)
}

func TestSendVerificationTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(token.Token(TOKEN), result.Token.Token)
	assert.Equal(EMAIL, result.Token.Identifier)
	assert.Equal(NOW.Add(TOKEN_VALID_FOR), result.Token.ExpiresAt)

	assert.Len(suite.TokenRepo.Tokens, 1)
	assert.Equal(1, suite.Sender.SentCount())
	assert.Equal(EMAIL, suite.Sender.LastSent().Identifier)
	assert.Equal(token.Token(TOKEN), suite.Sender.LastSent().Token)
}

func (suite *testSuite) TestEmailAlreadyRegistered() {
	suite.UserRepo.Create(context.Background(), user.CreateUserInput{
		Email:     c.NewOptional(EMAIL, true),
		CreatedAt: NOW,
	})

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
	assert.Len(suite.TokenRepo.Tokens, 0)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestRepeatedRequestsAccumulateTokens() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})
	suite.Require().Nil(err)

	suite.Generator.Token = token.Token("beef4567")
	_, err = suite.Service.Run(context.Background(), Input{Email: EMAIL})
	suite.Require().Nil(err)

	assert := suite.Require()
	assert.Len(suite.TokenRepo.Tokens, 2)
	assert.Equal(2, suite.Sender.SentCount())
	assert.Equal(token.Token("beef4567"), suite.Sender.LastSent().Token)
}

func (suite *testSuite) TestSendErrorKeepsTokenRow() {
	suite.Sender.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, token.ErrDeliveryFailed)
	assert.Len(suite.TokenRepo.Tokens, 1)
}
