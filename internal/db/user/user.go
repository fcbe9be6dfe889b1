package user

import (
	c "authbox/internal/core/domain/common"
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/user"
	"authbox/internal/db"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, name, image, password_hash, created_at, email_verified_at`

type PgxUserRepository struct {
	db db.Conn
}

func NewPgxRepository(conn db.Conn) *PgxUserRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("conn"))
	}
	return &PgxUserRepository{db: conn}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, name, image, password_hash, created_at, email_verified_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		encodeEmail(input.Email),
		encodeString(input.Name),
		encodeString(input.Image),
		encodePasswordHash(input.PasswordHash),
		input.CreatedAt,
		encodeOptionalTime(input.EmailVerifiedAt),
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, passwordHash user.PasswordHash) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(passwordHash),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			name = CASE WHEN $2 THEN $3 ELSE name END,
			image = CASE WHEN $4 THEN $5 ELSE image END,
			password_hash = CASE WHEN $6 THEN $7 ELSE password_hash END
		 WHERE id = $1
		 RETURNING `+userColumns,
		int64(input.ID),
		input.DoNameUpdate,
		encodeString(input.Name),
		input.DoImageUpdate,
		encodeString(input.Image),
		input.DoPasswordHashUpdate,
		encodePasswordHash(input.PasswordHash),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func encodeEmail(email c.Optional[c.Email]) sql.NullString {
	return sql.NullString{String: string(email.Value), Valid: email.IsPresent}
}

func encodeString(s c.Optional[string]) sql.NullString {
	return sql.NullString{String: s.Value, Valid: s.IsPresent}
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id              int64
		email           sql.NullString
		name            sql.NullString
		image           sql.NullString
		passwordHash    sql.NullString
		createdAt       time.Time
		emailVerifiedAt sql.NullTime
	)
	err = row.Scan(&id, &email, &name, &image, &passwordHash, &createdAt, &emailVerifiedAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:              user.ID(id),
		Email:           c.NewOptional(c.Email(email.String), email.Valid),
		Name:            c.NewOptional(name.String, name.Valid),
		Image:           c.NewOptional(image.String, image.Valid),
		PasswordHash:    c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid),
		CreatedAt:       createdAt,
		EmailVerifiedAt: c.NewOptional(emailVerifiedAt.Time, emailVerifiedAt.Valid),
	}, nil
}
