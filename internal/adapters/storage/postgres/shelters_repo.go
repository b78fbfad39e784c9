package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/shelters"
)

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

var shelterConstraints = map[string]string{
	"shelters_name_key":  "Nome de abrigo já cadastrado.",
	"shelters_email_key": "E-mail já cadastrado.",
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelters (
			id, name, address, phone, email,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		s.ID,
		s.Name,
		s.Address,
		s.Phone,
		s.Email,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return mapUnique(err, shelterConstraints)
	}
	return nil
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return shelters.Shelter{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, phone, email, created_at, updated_at
		FROM shelters
		WHERE id = $1
	`, id)

	var s shelters.Shelter
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.Phone,
		&s.Email,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return shelters.Shelter{}, apperr.ErrNotFound
		}
		return shelters.Shelter{}, err
	}

	return s, nil
}

func (r *SheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, phone, email, created_at, updated_at
		FROM shelters
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		var s shelters.Shelter
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Address,
			&s.Phone,
			&s.Email,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SheltersRepo) Update(ctx context.Context, s shelters.Shelter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shelters
		SET
			name = $2,
			address = $3,
			phone = $4,
			email = $5,
			updated_at = $6
		WHERE id = $1
	`,
		s.ID,
		s.Name,
		s.Address,
		s.Phone,
		s.Email,
		s.UpdatedAt,
	)
	if err != nil {
		return mapUnique(err, shelterConstraints)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *SheltersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shelters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
