package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/apperr"
)

type adoptersRepo struct {
	mu   sync.RWMutex
	byID map[string]adopters.Adopter
}

func NewAdoptersRepo() adopters.Repository {
	return &adoptersRepo{
		byID: make(map[string]adopters.Adopter),
	}
}

func (r *adoptersRepo) Create(ctx context.Context, a adopters.Adopter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adopter id required")
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}

	r.byID[a.ID] = a
	return nil
}

func (r *adoptersRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adopters.Adopter{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *adoptersRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adopters.Adopter, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *adoptersRepo) Update(ctx context.Context, a adopters.Adopter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNotFound
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}

	r.byID[a.ID] = a
	return nil
}

func (r *adoptersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Índice único de email, case-insensitive. Llamar con el lock tomado.
func (r *adoptersRepo) checkUnique(a adopters.Adopter) error {
	for _, other := range r.byID {
		if other.ID == a.ID {
			continue
		}
		if strings.EqualFold(other.Email, a.Email) {
			return &apperr.Duplicate{Message: "E-mail já cadastrado."}
		}
	}
	return nil
}
