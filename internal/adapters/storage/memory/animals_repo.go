package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/apperr"
)

type animalsRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}

	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, apperr.ErrNotFound
	}
	return cloneAnimal(a), nil
}

func (r *animalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		if !matchAnimal(a, f) {
			continue
		}
		out = append(out, cloneAnimal(a))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *animalsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func matchAnimal(a animals.Animal, f animals.Filter) bool {
	if f.Species != "" && string(a.Species) != f.Species {
		return false
	}
	if f.Breed != "" && !strings.EqualFold(a.Breed, f.Breed) {
		return false
	}
	if f.Age != nil && a.Age != *f.Age {
		return false
	}
	if f.ShelterID != "" && a.ShelterID != f.ShelterID {
		return false
	}
	return true
}

// cloneAnimal copia el slice de fotos para que los llamadores no muten el
// estado interno del mapa.
func cloneAnimal(a animals.Animal) animals.Animal {
	if len(a.Photos) > 0 {
		photos := make([]string, len(a.Photos))
		copy(photos, a.Photos)
		a.Photos = photos
	}
	return a
}
