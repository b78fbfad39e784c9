package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/apperr"
)

// AdopterDirectory y AnimalDirectory resuelven las dos referencias de una
// adopción. Las implementan *adopters.Service y *animals.Service.
type AdopterDirectory interface {
	GetByID(ctx context.Context, id string) (adopters.Adopter, error)
}

type AnimalDirectory interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo       Repository
	adopterDir AdopterDirectory
	animalDir  AnimalDirectory
	now        func() time.Time
}

func NewService(repo Repository, adopterDir AdopterDirectory, animalDir AnimalDirectory) *Service {
	return &Service{
		repo:       repo,
		adopterDir: adopterDir,
		animalDir:  animalDir,
		now:        time.Now,
	}
}

type CreateInput struct {
	AdopterID    string
	AnimalID     string
	AdoptionDate *time.Time
}

type UpdateInput struct {
	AdopterID    *string
	AnimalID     *string
	AdoptionDate *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Adoption, error) {
	// Fail-fast y en orden fijo: primero el adoptante, después el animal.
	// Cada referencia se chequea completa (formato, luego existencia).
	if err := s.checkAdopterRef(ctx, in.AdopterID); err != nil {
		return Adoption{}, err
	}
	if err := s.checkAnimalRef(ctx, in.AnimalID); err != nil {
		return Adoption{}, err
	}

	now := s.now()
	date := now
	if in.AdoptionDate != nil {
		date = *in.AdoptionDate
	}

	a := Adoption{
		ID:           uuid.NewString(),
		AdopterID:    strings.TrimSpace(in.AdopterID),
		AnimalID:     strings.TrimSpace(in.AnimalID),
		AdoptionDate: date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Adoption{}, &apperr.InvalidReference{Message: "ID de adoção inválido."}
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err == apperr.ErrNotFound {
			return Adoption{}, &apperr.NotFound{Message: "Adoção não encontrada."}
		}
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Adoption, error) {
	if f.AdopterID != "" {
		if _, err := uuid.Parse(f.AdopterID); err != nil {
			return nil, &apperr.InvalidReference{Message: "ID de adotante inválido no filtro."}
		}
	}
	if f.AnimalID != "" {
		if _, err := uuid.Parse(f.AnimalID); err != nil {
			return nil, &apperr.InvalidReference{Message: "ID de animal inválido no filtro."}
		}
	}
	return s.repo.List(ctx, f)
}

func (s *Service) AdopterInfo(ctx context.Context, id string) (adopters.Adopter, error) {
	return s.adopterDir.GetByID(ctx, id)
}

func (s *Service) AnimalInfo(ctx context.Context, id string) (animals.Animal, error) {
	return s.animalDir.GetByID(ctx, id)
}

// Update re-chequea una referencia solo si vino en el payload.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Adoption, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Adoption{}, err
	}

	if in.AdopterID != nil {
		if err := s.checkAdopterRef(ctx, *in.AdopterID); err != nil {
			return Adoption{}, err
		}
		a.AdopterID = strings.TrimSpace(*in.AdopterID)
	}
	if in.AnimalID != nil {
		if err := s.checkAnimalRef(ctx, *in.AnimalID); err != nil {
			return Adoption{}, err
		}
		a.AnimalID = strings.TrimSpace(*in.AnimalID)
	}
	if in.AdoptionDate != nil {
		a.AdoptionDate = *in.AdoptionDate
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		if err == apperr.ErrNotFound {
			return Adoption{}, &apperr.NotFound{Message: "Adoção não encontrada para atualização."}
		}
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return &apperr.InvalidReference{Message: "ID de adoção inválido."}
	}

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if err == apperr.ErrNotFound {
			return &apperr.NotFound{Message: "Adoção não encontrada para exclusão."}
		}
		return err
	}
	return nil
}

func (s *Service) checkAdopterRef(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.NewValidation("O adotante é obrigatório.")
	}
	if _, err := uuid.Parse(id); err != nil {
		return &apperr.InvalidReference{Message: "ID de adotante inválido."}
	}

	if _, err := s.adopterDir.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return &apperr.ReferenceNotFound{Entity: "adopter", Message: "Adotante não encontrado."}
		}
		return err
	}
	return nil
}

func (s *Service) checkAnimalRef(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.NewValidation("O animal é obrigatório.")
	}
	if _, err := uuid.Parse(id); err != nil {
		return &apperr.InvalidReference{Message: "ID de animal inválido."}
	}

	if _, err := s.animalDir.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return &apperr.ReferenceNotFound{Entity: "animal", Message: "Animal não encontrado."}
		}
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *apperr.NotFound
	return errors.Is(err, apperr.ErrNotFound) || errors.As(err, &nf)
}
