package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/apperr"
)

type AdoptersRepo struct {
	db *sql.DB
}

func NewAdoptersRepo(db *sql.DB) *AdoptersRepo {
	return &AdoptersRepo{db: db}
}

var adopterConstraints = map[string]string{
	"adopters_email_key": "E-mail já cadastrado.",
}

func (r *AdoptersRepo) Create(ctx context.Context, a adopters.Adopter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adopters (
			id, name, email, phone, address,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.Name,
		a.Email,
		a.Phone,
		a.Address,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return mapUnique(err, adopterConstraints)
	}
	return nil
}

func (r *AdoptersRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adopters.Adopter{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM adopters
		WHERE id = $1
	`, id)

	var a adopters.Adopter
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adopters.Adopter{}, apperr.ErrNotFound
		}
		return adopters.Adopter{}, err
	}

	return a, nil
}

func (r *AdoptersRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM adopters
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adopters.Adopter, 0)
	for rows.Next() {
		var a adopters.Adopter
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Email,
			&a.Phone,
			&a.Address,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AdoptersRepo) Update(ctx context.Context, a adopters.Adopter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adopters
		SET
			name = $2,
			email = $3,
			phone = $4,
			address = $5,
			updated_at = $6
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Email,
		a.Phone,
		a.Address,
		a.UpdatedAt,
	)
	if err != nil {
		return mapUnique(err, adopterConstraints)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *AdoptersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adopters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
