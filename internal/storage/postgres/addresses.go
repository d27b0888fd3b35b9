package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const addressColumns = `id, user_id, province, city, district, address, contact_name, contact_phone`

func scanAddress(row pgx.Row, a *model.Address) error {
	return row.Scan(&a.ID, &a.UserID, &a.Province, &a.City, &a.District, &a.Address, &a.ContactName, &a.ContactPhone)
}

func (r *addressRepository) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	const query = `INSERT INTO user_addresses (user_id, province, city, district, address, contact_name, contact_phone)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	stored := address
	err := r.storage.pool.QueryRow(ctx, query,
		address.UserID, address.Province, address.City, address.District, address.Address, address.ContactName, address.ContactPhone,
	).Scan(&stored.ID)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	var a model.Address
	if err := scanAddress(r.storage.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM user_addresses WHERE id=$1`, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+addressColumns+` FROM user_addresses WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		var a model.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) Update(ctx context.Context, address model.Address) error {
	const query = `UPDATE user_addresses
                   SET province=$1, city=$2, district=$3, address=$4, contact_name=$5, contact_phone=$6
                   WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query,
		address.Province, address.City, address.District, address.Address, address.ContactName, address.ContactPhone, address.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM user_addresses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
