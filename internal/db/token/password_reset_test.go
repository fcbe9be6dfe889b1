package token

import (
	c "authbox/internal/core/domain/common"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"authbox/internal/db"
	dbuser "authbox/internal/db/user"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type testPasswordResetSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *PgxPasswordResetTokenRepository
	userRepo *dbuser.PgxUserRepository
	user     user.User
}

func (suite *testPasswordResetSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxPasswordResetTokenRepository(suite.pool)
	suite.userRepo = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testPasswordResetSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testPasswordResetSuite) SetupTest() {
	u, err := suite.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewOptional(EMAIL, true),
		PasswordHash: c.NewOptional(user.PasswordHash("test-password-hash"), true),
		CreatedAt:    NOW,
	})
	if err != nil {
		suite.FailNowf("could not create user", "err: %v", err)
	}
	suite.user = u
}

func (suite *testPasswordResetSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxPasswordResetTokenRepository(t *testing.T) {
	suite.Run(t, new(testPasswordResetSuite))
}

func (s *testPasswordResetSuite) TestUpsertAndGet() {
	created := s.upsertToken(TOKEN, NOW.Add(time.Hour))

	rt, err := s.repo.GetByToken(context.Background(), created.Token, NOW)
	s.Nil(err)
	s.Equal(created.Token, rt.Token)
	s.Equal(s.user.ID, rt.UserID)
	s.True(created.ExpiresAt.Equal(rt.ExpiresAt))
}

func (s *testPasswordResetSuite) TestUpsertReplacesToken() {
	s.upsertToken("token-1", NOW.Add(time.Hour))
	s.upsertToken("token-2", NOW.Add(2*time.Hour))

	_, err := s.repo.GetByToken(context.Background(), token.Token("token-1"), NOW)
	s.ErrorIs(err, token.ErrTokenDoesNotExist)

	rt, err := s.repo.GetByToken(context.Background(), token.Token("token-2"), NOW)
	s.Nil(err)
	s.Equal(s.user.ID, rt.UserID)
	s.True(NOW.Add(2 * time.Hour).Equal(rt.ExpiresAt))
}

func (s *testPasswordResetSuite) TestExpiredTokenNotFound() {
	s.upsertToken(TOKEN, NOW.Add(time.Hour))

	_, err := s.repo.GetByToken(context.Background(), token.Token(TOKEN), NOW.Add(2*time.Hour))
	s.ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (s *testPasswordResetSuite) TestGetByTokenWithUser() {
	created := s.upsertToken(TOKEN, NOW.Add(time.Hour))

	rt, u, err := s.repo.GetByTokenWithUser(context.Background(), created.Token, NOW)
	s.Nil(err)
	s.Equal(created.Token, rt.Token)
	s.Equal(s.user.ID, u.ID)
	s.Equal(s.user.Email, u.Email)
	s.Equal(s.user.PasswordHash, u.PasswordHash)
}

func (s *testPasswordResetSuite) TestGetByTokenWithUserUnknownToken() {
	_, _, err := s.repo.GetByTokenWithUser(context.Background(), token.Token(TOKEN), NOW)
	s.ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (s *testPasswordResetSuite) TestDeleteByUserID() {
	s.upsertToken(TOKEN, NOW.Add(time.Hour))

	err := s.repo.DeleteByUserID(context.Background(), s.user.ID)
	s.Nil(err)

	_, err = s.repo.GetByToken(context.Background(), token.Token(TOKEN), NOW)
	s.ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (s *testPasswordResetSuite) TestDeleteByUserIDNoToken() {
	err := s.repo.DeleteByUserID(context.Background(), s.user.ID)
	s.ErrorIs(err, token.ErrTokenDoesNotExist)
}

func (s *testPasswordResetSuite) upsertToken(t string, expiresAt time.Time) token.PasswordResetToken {
	s.T().Helper()
	rt, err := s.repo.Upsert(context.Background(), token.UpsertPasswordResetTokenInput{
		UserID:    s.user.ID,
		Token:     token.Token(t),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.FailNowf("could not upsert password reset token", "err: %v", err)
	}
	return rt
}
