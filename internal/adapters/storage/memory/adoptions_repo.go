package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/apperr"
)

type adoptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Adoption
}

func NewAdoptionsRepo() adoptions.Repository {
	return &adoptionsRepo{
		byID: make(map[string]adoptions.Adoption),
	}
}

func (r *adoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}

	r.byID[a.ID] = a
	return nil
}

func (r *adoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Adoption{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *adoptionsRepo) List(ctx context.Context, f adoptions.Filter) ([]adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, 0, len(r.byID))
	for _, a := range r.byID {
		if f.AdopterID != "" && a.AdopterID != f.AdopterID {
			continue
		}
		if f.AnimalID != "" && a.AnimalID != f.AnimalID {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *adoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
