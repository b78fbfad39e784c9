package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/identity"
)

type usersRepo struct {
	mu      sync.RWMutex
	byID    map[string]identity.User
	byEmail map[string]string // email (minúsculas) → id
}

func NewUsersRepo() identity.Repository {
	return &usersRepo{
		byID:    make(map[string]identity.User),
		byEmail: make(map[string]string),
	}
}

// Create chequea unicidad de email bajo el mismo lock que inserta: de dos
// registros concurrentes con el mismo email, el perdedor recibe Duplicate.
func (r *usersRepo) Create(ctx context.Context, u identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}

	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return &apperr.Duplicate{Message: "E-mail já cadastrado."}
	}

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return identity.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return identity.User{}, apperr.ErrNotFound
	}
	return r.byID[id], nil
}
