package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/shelters"
)

type sheltersRepo struct {
	mu   sync.RWMutex
	byID map[string]shelters.Shelter
}

func NewSheltersRepo() shelters.Repository {
	return &sheltersRepo{
		byID: make(map[string]shelters.Shelter),
	}
}

func (r *sheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("shelter id required")
	}
	if err := r.checkUnique(s); err != nil {
		return err
	}

	r.byID[s.ID] = s
	return nil
}

func (r *sheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, apperr.ErrNotFound
	}
	return s, nil
}

func (r *sheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelters.Shelter, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *sheltersRepo) Update(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return apperr.ErrNotFound
	}
	if err := r.checkUnique(s); err != nil {
		return err
	}

	r.byID[s.ID] = s
	return nil
}

func (r *sheltersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// checkUnique emula los índices únicos de name y email. Llamar con el lock
// tomado.
func (r *sheltersRepo) checkUnique(s shelters.Shelter) error {
	for _, other := range r.byID {
		if other.ID == s.ID {
			continue
		}
		if strings.EqualFold(other.Name, s.Name) {
			return &apperr.Duplicate{Message: "Nome de abrigo já cadastrado."}
		}
		if strings.EqualFold(other.Email, s.Email) {
			return &apperr.Duplicate{Message: "E-mail já cadastrado."}
		}
	}
	return nil
}
