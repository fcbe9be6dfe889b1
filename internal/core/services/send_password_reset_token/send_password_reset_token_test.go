package sendpasswordresettoken

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
	TokenRepo *token.FakePasswordResetTokenRepository
	Generator *token.FakeTokenGenerator
	Sender    *token.FakePasswordResetTokenSender
	Service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepo = user.NewFakeUserRepository()
	suite.TokenRepo = token.NewFakePasswordResetTokenRepository(suite.UserRepo)
	suite.Generator = token.NewFakeTokenGenerator(TOKEN)
	suite.Sender = token.NewFakePasswordResetTokenSender()
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

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(passwordHash c.Optional[user.PasswordHash]) user.User {
	u, err := suite.UserRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewOptional(EMAIL, true),
		PasswordHash: passwordHash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestSuccess() {
	u := suite.createUser(c.NewOptional(user.PasswordHash("test-hash"), true))

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.Token.IsPresent)
	assert.Equal(token.Token(TOKEN), result.Token.Value.Token)
	assert.Equal(u.ID, result.Token.Value.UserID)
	assert.Equal(NOW.Add(TOKEN_VALID_FOR), result.Token.Value.ExpiresAt)

	assert.Len(suite.TokenRepo.Tokens, 1)
	assert.Equal(1, suite.Sender.SentCount())
	assert.Equal(EMAIL, suite.Sender.LastSent().Email)
	assert.Equal(token.Token(TOKEN), suite.Sender.LastSent().Token)
}

func (suite *testSuite) TestUnknownEmailSilentlyIgnored() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.Token.IsPresent)
	assert.Len(suite.TokenRepo.Tokens, 0)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestAccountWithoutPasswordSilentlyIgnored() {
	suite.createUser(c.Optional[user.PasswordHash]{})

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.Token.IsPresent)
	assert.Len(suite.TokenRepo.Tokens, 0)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestRepeatedRequestReplacesToken() {
	u := suite.createUser(c.NewOptional(user.PasswordHash("test-hash"), true))

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})
	suite.Require().Nil(err)

	suite.Generator.Token = token.Token("beef4567")
	_, err = suite.Service.Run(context.Background(), Input{Email: EMAIL})
	suite.Require().Nil(err)

	assert := suite.Require()
	assert.Len(suite.TokenRepo.Tokens, 1)
	assert.Equal(token.Token("beef4567"), suite.TokenRepo.Tokens[u.ID].Token)

	// The replaced token must no longer resolve.
	_, err = suite.TokenRepo.GetByToken(context.Background(), token.Token(TOKEN), NOW)
	assert.ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestSendError() {
	suite.createUser(c.NewOptional(user.PasswordHash("test-hash"), true))
	suite.Sender.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	suite.Require().ErrorIs(err, token.ErrDeliveryFailed)
}
