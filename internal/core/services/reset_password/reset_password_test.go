package reset_password

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
	OLD_PASSWORD = user.RawPassword("old-password")
	NEW_PASSWORD = user.RawPassword("new-password")
)

var NOW time.Time = time.Date(2023, 1, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger      *logging.FakeLogger
	UserRepo    *user.FakeUserRepository
	TokenRepo   *token.FakePasswordResetTokenRepository
	Hasher      *user.FakePasswordHasher
	AlertSender *user.FakePasswordChangedAlertSender
	Service     services.Service[Input, Result]
	User        user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepo = user.NewFakeUserRepository()
	suite.TokenRepo = token.NewFakePasswordResetTokenRepository(suite.UserRepo)
	suite.Hasher = user.NewFakePasswordHasher()
	suite.AlertSender = user.NewFakePasswordChangedAlertSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepo,
		suite.TokenRepo,
		suite.Hasher,
		suite.AlertSender,
		func() time.Time { return NOW },
	)

	oldHash, err := suite.Hasher.HashPassword(OLD_PASSWORD)
	suite.Require().Nil(err)
	suite.User, err = suite.UserRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewOptional(EMAIL, true),
		PasswordHash: c.NewOptional(oldHash, true),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.TokenRepo.Tokens[suite.User.ID] = token.PasswordResetToken{
		Token:     TOKEN,
		UserID:    suite.User.ID,
		ExpiresAt: NOW.Add(time.Hour),
	}
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)

	u, err := suite.UserRepo.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.True(suite.Hasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash.Value))

	// The consumed token must be gone and the alert sent.
	assert.Len(suite.TokenRepo.Tokens, 0)
	assert.Equal(1, suite.AlertSender.SentCount())
	assert.Equal(suite.User.ID, suite.AlertSender.Sent[0].User.ID)
	assert.Equal(NOW, suite.AlertSender.Sent[0].ChangedAt)
}

func (suite *testSuite) TestUnknownToken() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: "unknown", NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.ErrorIs(err, token.ErrTokenDoesNotExist)
	assert.Equal(0, suite.AlertSender.SentCount())
}

func (suite *testSuite) TestExpiredToken() {
	suite.TokenRepo.Tokens[suite.User.ID] = token.PasswordResetToken{
		Token:     TOKEN,
		UserID:    suite.User.ID,
		ExpiresAt: NOW.Add(-time.Second),
	}

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	suite.Require().ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestPasswordNotSet() {
	suite.UserRepo.Users[0].PasswordHash = c.Optional[user.PasswordHash]{}

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	suite.Require().ErrorIs(err, user.ErrPasswordNotSet)
}

func (suite *testSuite) TestSamePassword() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: TOKEN, NewPassword: OLD_PASSWORD},
	)

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrPasswordNotChanged)

	u, getErr := suite.UserRepo.GetByID(context.Background(), suite.User.ID)
	assert.Nil(getErr)
	assert.True(suite.Hasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash.Value))
	assert.Len(suite.TokenRepo.Tokens, 1)
	assert.Equal(0, suite.AlertSender.SentCount())
}

func (suite *testSuite) TestAlertFailureDoesNotFailReset() {
	suite.AlertSender.ReturnError = true

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)

	u, getErr := suite.UserRepo.GetByID(context.Background(), suite.User.ID)
	assert.Nil(getErr)
	assert.True(suite.Hasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash.Value))
}
