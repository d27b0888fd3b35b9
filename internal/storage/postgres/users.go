package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const userColumns = `id, login, email, password_hash, is_active, reset_password_uid, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.IsActive, &u.ResetPasswordUID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	u := model.User{Login: login, Email: email, PasswordHash: passwordHash, IsActive: true}
	err := r.storage.pool.QueryRow(ctx, query, login, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreatePending(ctx context.Context, login, email, uid string) (*model.User, error) {
	const query = `INSERT INTO users (login, email, password_hash, is_active, reset_password_uid)
                   VALUES ($1, $2, '', FALSE, $3) RETURNING id, created_at`
	u := model.User{Login: login, Email: email, ResetPasswordUID: uid}
	err := r.storage.pool.QueryRow(ctx, query, login, email, uid).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, domainErrors.ErrNotFound
	}
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByResetUID(ctx context.Context, uid string) (*model.User, error) {
	if uid == "" {
		return nil, domainErrors.ErrNotFound
	}
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE reset_password_uid=$1`, uid))
}

func (r *userRepository) SetResetUID(ctx context.Context, userID int64, uid string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET reset_password_uid=$1 WHERE id=$2`, uid, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1, reset_password_uid='', is_active=TRUE WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
