package user

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/user"
	"authbox/internal/db"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2023, 1, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	type test struct {
		id    string
		input user.CreateUserInput
	}
	cases := []test{
		{
			id: "verified",
			input: user.CreateUserInput{
				Email:           c.NewOptional(c.Email(EMAIL), true),
				Name:            c.NewOptional("Test User", true),
				PasswordHash:    c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
				CreatedAt:       NOW,
				EmailVerifiedAt: c.NewOptional(NOW, true),
			},
		},
		{
			id: "passwordless",
			input: user.CreateUserInput{
				Email:     c.NewOptional(c.Email("oauth@test.test"), true),
				Image:     c.NewOptional("https://test.test/avatar.png", true),
				CreatedAt: NOW,
			},
		},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			u, err := suite.repo.Create(context.Background(), testcase.input)

			assert := suite.Require()
			assert.Nil(err)
			assert.NotEqual(user.ID(0), u.ID)
			assert.Equal(testcase.input.Email, u.Email)
			assert.Equal(testcase.input.Name, u.Name)
			assert.Equal(testcase.input.Image, u.Image)
			assert.Equal(testcase.input.PasswordHash, u.PasswordHash)
			assert.True(testcase.input.CreatedAt.Equal(u.CreatedAt))
			assert.Equal(testcase.input.EmailVerifiedAt.IsPresent, u.EmailVerifiedAt.IsPresent)
		})
	}
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	input := user.CreateUserInput{
		Email:        c.NewOptional(c.Email(EMAIL), true),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	}
	_, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)

	_, err = suite.repo.Create(context.Background(), input)
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (s *testSuite) TestGetByEmail() {
	created := s.createUser()

	u, err := s.repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	s.Nil(err)
	s.Equal(created.ID, u.ID)
	s.Equal(created.Email, u.Email)

	_, err = s.repo.GetByEmail(context.Background(), c.NewEmail("unknown@test.test"))
	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (s *testSuite) TestSetPassword() {
	u := s.createUser()

	newPassword := user.PasswordHash("new-password-hash")
	err := s.repo.SetPassword(context.Background(), u.ID, newPassword)
	s.Nil(err)

	userAfterUpdate := s.getUserByID(u.ID)
	s.True(userAfterUpdate.PasswordHash.IsPresent)
	s.Equal(newPassword, userAfterUpdate.PasswordHash.Value)
}

func (s *testSuite) TestSetPasswordReturnsErrorIfUserDoesNotExist() {
	u := s.createUser()

	err := s.repo.SetPassword(context.Background(), user.ID(111222333), user.PasswordHash("new-password-hash"))
	s.True(errors.Is(err, user.ErrUserDoesNotExist))

	userAfterUpdate := s.getUserByID(u.ID)
	s.Equal(u.PasswordHash, userAfterUpdate.PasswordHash)
}

func (s *testSuite) TestUpdate() {
	u := s.createUser()

	updated, err := s.repo.Update(context.Background(), user.UpdateUserInput{
		ID:           u.ID,
		DoNameUpdate: true,
		Name:         c.NewOptional("Renamed User", true),
	})
	s.Nil(err)
	s.True(updated.Name.IsPresent)
	s.Equal("Renamed User", updated.Name.Value)
	s.Equal(u.PasswordHash, updated.PasswordHash)
	s.Equal(u.Image, updated.Image)
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.repo.Create(
		context.Background(),
		user.CreateUserInput{
			Email:           c.NewOptional(c.NewEmail(EMAIL), true),
			PasswordHash:    c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			CreatedAt:       NOW,
			EmailVerifiedAt: c.NewOptional(NOW, true),
		},
	)
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u
}

func (s *testSuite) getUserByID(id user.ID) user.User {
	s.T().Helper()
	u, err := s.repo.GetByID(context.Background(), id)
	if err != nil {
		s.FailNowf("could not get user by ID", "id: %v, err: %v", id, err)
	}
	return u
}
