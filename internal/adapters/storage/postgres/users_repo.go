package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/identity"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

var userConstraints = map[string]string{
	"users_email_key": "E-mail já cadastrado.",
}

func (r *UsersRepo) Create(ctx context.Context, u identity.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, role, entity_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		toNullString(u.EntityID),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return mapUnique(err, userConstraints)
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (identity.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return identity.User{}, apperr.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, entity_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return identity.User{}, apperr.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, entity_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UsersRepo) scanOne(row *sql.Row) (identity.User, error) {
	var u identity.User
	var role string
	var entityID sql.NullString
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&role,
		&entityID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return identity.User{}, apperr.ErrNotFound
		}
		return identity.User{}, err
	}

	u.Role = identity.Role(role)
	if entityID.Valid {
		v := entityID.String
		u.EntityID = &v
	}
	return u, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}
