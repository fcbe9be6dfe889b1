package verifypasswordresettoken

import (
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
	TOKEN   = "cafe0123"
	USER_ID = user.ID(123)
)

var NOW time.Time = time.Date(2023, 1, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger    *logging.FakeLogger
	TokenRepo *token.FakePasswordResetTokenRepository
	Service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.TokenRepo = token.NewFakePasswordResetTokenRepository(user.NewFakeUserRepository())
	suite.Service = New(
		suite.Logger,
		suite.TokenRepo,
		func() time.Time { return NOW },
	)
}

func TestVerifyPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	suite.TokenRepo.Tokens[USER_ID] = token.PasswordResetToken{
		Token:     TOKEN,
		UserID:    USER_ID,
		ExpiresAt: NOW.Add(time.Hour),
	}

	result, err := suite.Service.Run(context.Background(), Input{Token: TOKEN})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(token.Token(TOKEN), result.Token.Token)
	assert.Equal(USER_ID, result.Token.UserID)
	assert.Len(suite.TokenRepo.Tokens, 1)
}

func (suite *testSuite) TestUnknownToken() {
	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN})

	suite.Require().ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestExpiredToken() {
	suite.TokenRepo.Tokens[USER_ID] = token.PasswordResetToken{
		Token:     TOKEN,
		UserID:    USER_ID,
		ExpiresAt: NOW.Add(-time.Second),
	}

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN})

	suite.Require().ErrorIs(err, token.ErrTokenDoesNotExist)
}
