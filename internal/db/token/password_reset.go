package token

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/token"
	"authbox/internal/core/domain/user"
	"authbox/internal/db"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxPasswordResetTokenRepository struct {
	db db.Conn
}

func NewPgxPasswordResetTokenRepository(conn db.Conn) *PgxPasswordResetTokenRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("conn"))
	}
	return &PgxPasswordResetTokenRepository{db: conn}
}

func (r *PgxPasswordResetTokenRepository) Upsert(
	ctx context.Context,
	input token.UpsertPasswordResetTokenInput,
) (rt token.PasswordResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (user_id, token, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id)
		 DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
		 RETURNING user_id, token, expires_at`,
		int64(input.UserID),
		string(input.Token),
		input.ExpiresAt,
	)
	return scanPasswordResetToken(row)
}

func (r *PgxPasswordResetTokenRepository) GetByToken(
	ctx context.Context,
	t token.Token,
	now time.Time,
) (rt token.PasswordResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT user_id, token, expires_at
		 FROM password_reset_token
		 WHERE token = $1 AND expires_at > $2`,
		string(t),
		now,
	)
	rt, err = scanPasswordResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rt, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return rt, err
	}
	return rt, nil
}

func (r *PgxPasswordResetTokenRepository) GetByTokenWithUser(
	ctx context.Context,
	t token.Token,
	now time.Time,
) (rt token.PasswordResetToken, u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT rt.user_id, rt.token, rt.expires_at,
		        u.id, u.email, u.name, u.image, u.password_hash, u.created_at, u.email_verified_at
		 FROM password_reset_token rt
		 JOIN "user" u ON u.id = rt.user_id
		 WHERE rt.token = $1 AND rt.expires_at > $2`,
		string(t),
		now,
	)

	var (
		tokenUserID     int64
		tokenValue      string
		expiresAt       time.Time
		userID          int64
		email           sql.NullString
		name            sql.NullString
		image           sql.NullString
		passwordHash    sql.NullString
		createdAt       time.Time
		emailVerifiedAt sql.NullTime
	)
	err = row.Scan(
		&tokenUserID, &tokenValue, &expiresAt,
		&userID, &email, &name, &image, &passwordHash, &createdAt, &emailVerifiedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return rt, u, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return rt, u, err
	}

	rt = token.PasswordResetToken{
		Token:     token.Token(tokenValue),
		UserID:    user.ID(tokenUserID),
		ExpiresAt: expiresAt,
	}
	u = user.User{
		ID:              user.ID(userID),
		Email:           c.NewOptional(c.Email(email.String), email.Valid),
		Name:            c.NewOptional(name.String, name.Valid),
		Image:           c.NewOptional(image.String, image.Valid),
		PasswordHash:    c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid),
		CreatedAt:       createdAt,
		EmailVerifiedAt: c.NewOptional(emailVerifiedAt.Time, emailVerifiedAt.Valid),
	}
	if err = u.Validate(); err != nil {
		return rt, u, err
	}
	return rt, u, nil
}

func (r *PgxPasswordResetTokenRepository) DeleteByUserID(ctx context.Context, userID user.ID) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM password_reset_token WHERE user_id = $1`,
		int64(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return token.ErrTokenDoesNotExist
	}
	return nil
}

func scanPasswordResetToken(row pgx.Row) (rt token.PasswordResetToken, err error) {
	var (
		userID    int64
		t         string
		expiresAt time.Time
	)
	err = row.Scan(&userID, &t, &expiresAt)
	if err != nil {
		return rt, err
	}
	return token.PasswordResetToken{
		Token:     token.Token(t),
		UserID:    user.ID(userID),
		ExpiresAt: expiresAt,
	}, nil
}
