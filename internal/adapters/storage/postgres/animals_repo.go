package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/apperr"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	photos, err := json.Marshal(a.Photos)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, species, breed, age, sex,
			description, photos, shelter_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.Name,
		string(a.Species),
		a.Breed,
		a.Age,
		string(a.Sex),
		a.Description,
		photos,
		a.ShelterID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, species, breed, age, sex,
		       description, photos, shelter_id,
		       created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row.Scan)
	if err == sql.ErrNoRows {
		return animals.Animal{}, apperr.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	// WHERE dinámico: los campos vacíos del filtro no participan
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Species != "" {
		add("species = $%d", f.Species)
	}
	if f.Breed != "" {
		add("LOWER(breed) = LOWER($%d)", f.Breed)
	}
	if f.Age != nil {
		add("age = $%d", *f.Age)
	}
	if f.ShelterID != "" {
		add("shelter_id = $%d", f.ShelterID)
	}

	q := `
		SELECT id, name, species, breed, age, sex,
		       description, photos, shelter_id,
		       created_at, updated_at
		FROM animals`
	if len(where) > 0 {
		q += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\t\tORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	photos, err := json.Marshal(a.Photos)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			breed = $4,
			age = $5,
			sex = $6,
			description = $7,
			photos = $8,
			shelter_id = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		string(a.Species),
		a.Breed,
		a.Age,
		string(a.Sex),
		a.Description,
		photos,
		a.ShelterID,
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

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// photos se guarda como JSONB; el scan pasa por []byte + Unmarshal.
func scanAnimal(scan func(dest ...any) error) (animals.Animal, error) {
	var a animals.Animal
	var species, sex string
	var photos []byte
	if err := scan(
		&a.ID,
		&a.Name,
		&species,
		&a.Breed,
		&a.Age,
		&sex,
		&a.Description,
		&photos,
		&a.ShelterID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Species = animals.Species(species)
	a.Sex = animals.Sex(sex)
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &a.Photos); err != nil {
			return animals.Animal{}, err
		}
	}
	return a, nil
}
