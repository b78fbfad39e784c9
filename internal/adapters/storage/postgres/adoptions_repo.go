package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/apperr"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (
			id, adopter_id, animal_id, adoption_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.ID,
		a.AdopterID,
		a.AnimalID,
		a.AdoptionDate,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Adoption{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, adopter_id, animal_id, adoption_date, created_at, updated_at
		FROM adoptions
		WHERE id = $1
	`, id)

	var a adoptions.Adoption
	if err := row.Scan(
		&a.ID,
		&a.AdopterID,
		&a.AnimalID,
		&a.AdoptionDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Adoption{}, apperr.ErrNotFound
		}
		return adoptions.Adoption{}, err
	}

	return a, nil
}

func (r *AdoptionsRepo) List(ctx context.Context, f adoptions.Filter) ([]adoptions.Adoption, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if f.AdopterID != "" {
		args = append(args, f.AdopterID)
		where = append(where, fmt.Sprintf("adopter_id = $%d", len(args)))
	}
	if f.AnimalID != "" {
		args = append(args, f.AnimalID)
		where = append(where, fmt.Sprintf("animal_id = $%d", len(args)))
	}

	q := `
		SELECT id, adopter_id, animal_id, adoption_date, created_at, updated_at
		FROM adoptions`
	if len(where) > 0 {
		q += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\t\tORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		var a adoptions.Adoption
		if err := rows.Scan(
			&a.ID,
			&a.AdopterID,
			&a.AnimalID,
			&a.AdoptionDate,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AdoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoptions
		SET
			adopter_id = $2,
			animal_id = $3,
			adoption_date = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.AdopterID,
		a.AnimalID,
		a.AdoptionDate,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adoptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
