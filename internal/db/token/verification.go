package token

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/token"
	"authbox/internal/db"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxVerificationTokenRepository struct {
	db db.Conn
}

func NewPgxVerificationTokenRepository(conn db.Conn) *PgxVerificationTokenRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("conn"))
	}
	return &PgxVerificationTokenRepository{db: conn}
}

func (r *PgxVerificationTokenRepository) Create(
	ctx context.Context,
	input token.CreateVerificationTokenInput,
) (vt token.VerificationToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO verification_token (token, identifier, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING token, identifier, expires_at`,
		string(input.Token),
		string(input.Identifier),
		input.ExpiresAt,
	)
	return scanVerificationToken(row)
}

func (r *PgxVerificationTokenRepository) GetByToken(
	ctx context.Context,
	t token.Token,
	now time.Time,
) (vt token.VerificationToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT token, identifier, expires_at
		 FROM verification_token
		 WHERE token = $1 AND expires_at > $2`,
		string(t),
		now,
	)
	vt, err = scanVerificationToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return vt, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return vt, err
	}
	return vt, nil
}

func (r *PgxVerificationTokenRepository) DeleteByIdentifier(
	ctx context.Context,
	identifier c.Email,
) (deleted int64, err error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM verification_token WHERE identifier = $1`,
		string(identifier),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanVerificationToken(row pgx.Row) (vt token.VerificationToken, err error) {
	var (
		t          string
		identifier string
		expiresAt  time.Time
	)
	err = row.Scan(&t, &identifier, &expiresAt)
	if err != nil {
		return vt, err
	}
	return token.VerificationToken{
		Token:      token.Token(t),
		Identifier: c.Email(identifier),
		ExpiresAt:  expiresAt,
	}, nil
}
