package animals

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/shelters"
)

// photoPattern valida que cada foto sea una URL http(s).
var photoPattern = regexp.MustCompile(`^https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)

// ShelterDirectory resuelve abrigos para el chequeo referencial y para
// poblar el resumen del abrigo en las lecturas. Lo implementa
// *shelters.Service.
type ShelterDirectory interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
}

type Service struct {
	repo     Repository
	shelters ShelterDirectory
	now      func() time.Time
}

func NewService(repo Repository, shelterDir ShelterDirectory) *Service {
	return &Service{
		repo:     repo,
		shelters: shelterDir,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Age         *int
	Sex         string
	Description string
	Photos      []string
	ShelterID   string
}

type UpdateInput struct {
	Name        *string
	Species     *string
	Breed       *string
	Age         *int
	Sex         *string
	Description *string
	Photos      *[]string
	ShelterID   *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	// La referencia al abrigo se chequea antes de validar el resto:
	// formato primero (sin tocar el store), existencia después.
	if err := s.checkShelterRef(ctx, in.ShelterID); err != nil {
		return Animal{}, err
	}

	age := -1
	hasAge := in.Age != nil
	if hasAge {
		age = *in.Age
	}

	now := s.now()
	a := Animal{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.TrimSpace(in.Species)),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         age,
		Sex:         Sex(strings.TrimSpace(in.Sex)),
		Description: strings.TrimSpace(in.Description),
		Photos:      in.Photos,
		ShelterID:   strings.TrimSpace(in.ShelterID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validate(a, hasAge); err != nil {
		return Animal{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Animal{}, &apperr.InvalidReference{Message: "ID de animal inválido."}
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err == apperr.ErrNotFound {
			return Animal{}, &apperr.NotFound{Message: "Animal não encontrado."}
		}
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	// El filtro por abrigo exige un id bien formado, igual que el original.
	if f.ShelterID != "" {
		if _, err := uuid.Parse(f.ShelterID); err != nil {
			return nil, &apperr.InvalidReference{Message: "ID de abrigo inválido no filtro."}
		}
	}
	return s.repo.List(ctx, f)
}

// ShelterInfo resuelve el abrigo para los resúmenes embebidos en las
// respuestas de lectura.
func (s *Service) ShelterInfo(ctx context.Context, shelterID string) (shelters.Shelter, error) {
	return s.shelters.GetByID(ctx, shelterID)
}

// Update aplica los campos presentes y revalida el documento resultante.
// ShelterID solo se re-chequea si vino en el payload.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.ShelterID != nil {
		if err := s.checkShelterRef(ctx, *in.ShelterID); err != nil {
			return Animal{}, err
		}
		a.ShelterID = strings.TrimSpace(*in.ShelterID)
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		a.Species = Species(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.Sex != nil {
		a.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.Photos != nil {
		a.Photos = *in.Photos
	}
	a.UpdatedAt = s.now()

	if err := validate(a, true); err != nil {
		return Animal{}, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		if err == apperr.ErrNotFound {
			return Animal{}, &apperr.NotFound{Message: "Animal não encontrado para atualização."}
		}
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return &apperr.InvalidReference{Message: "ID de animal inválido."}
	}

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if err == apperr.ErrNotFound {
			return &apperr.NotFound{Message: "Animal não encontrado para exclusão."}
		}
		return err
	}
	return nil
}

// checkShelterRef: formato primero, lookup después. El orden importa: un id
// malformado nunca llega al store y devuelve un error distinto al de
// "no existe".
func (s *Service) checkShelterRef(ctx context.Context, shelterID string) error {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return apperr.NewValidation("O abrigo responsável é obrigatório.")
	}
	if _, err := uuid.Parse(shelterID); err != nil {
		return &apperr.InvalidReference{Message: "ID de abrigo responsável inválido."}
	}

	if _, err := s.shelters.GetByID(ctx, shelterID); err != nil {
		var nf *apperr.NotFound
		if errors.Is(err, apperr.ErrNotFound) || errors.As(err, &nf) {
			return &apperr.ReferenceNotFound{Entity: "shelter", Message: "Abrigo responsável não encontrado."}
		}
		return err
	}
	return nil
}

func validate(a Animal, hasAge bool) error {
	var msgs []string

	if a.Name == "" {
		msgs = append(msgs, "O nome do animal é obrigatório.")
	}
	switch {
	case a.Species == "":
		msgs = append(msgs, "A espécie do animal é obrigatória.")
	case a.Species != SpeciesDog && a.Species != SpeciesCat:
		msgs = append(msgs, "Espécie inválida. Use \"dog\" ou \"cat\".")
	}
	switch {
	case !hasAge:
		msgs = append(msgs, "A idade do animal é obrigatória.")
	case a.Age < 0:
		msgs = append(msgs, "A idade não pode ser negativa.")
	}
	switch {
	case a.Sex == "":
		msgs = append(msgs, "O sexo do animal é obrigatório.")
	case a.Sex != SexMale && a.Sex != SexFemale:
		msgs = append(msgs, "Sexo inválido. Use \"male\" ou \"female\".")
	}
	switch {
	case a.Description == "":
		msgs = append(msgs, "A descrição do animal é obrigatória.")
	case len([]rune(a.Description)) < 10:
		msgs = append(msgs, "A descrição deve ter no mínimo 10 caracteres.")
	}
	if len(a.Photos) == 0 {
		msgs = append(msgs, "Pelo menos uma foto é obrigatória.")
	} else {
		for _, url := range a.Photos {
			if !photoPattern.MatchString(url) {
				msgs = append(msgs, "Formato de URL de foto inválido.")
				break
			}
		}
	}

	if len(msgs) > 0 {
		return &apperr.Validation{Messages: msgs}
	}
	return nil
}
