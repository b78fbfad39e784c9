package shelters

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/apperr"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	// Formato brasileño: (XX) XXXX-XXXX o (XX) XXXXX-XXXX
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s?\d{4,5}-\d{4}$`)
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type UpdateInput struct {
	// Punteros: nil = campo no enviado, se conserva el valor actual.
	Name    *string
	Address *string
	Phone   *string
	Email   *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	now := s.now()
	sh := Shelter{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validate(sh); err != nil {
		return Shelter{}, err
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Shelter{}, &apperr.InvalidReference{Message: "ID de abrigo inválido."}
	}

	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err == apperr.ErrNotFound {
			return Shelter{}, &apperr.NotFound{Message: "Abrigo não encontrado."}
		}
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) List(ctx context.Context) ([]Shelter, error) {
	return s.repo.List(ctx)
}

// Update aplica solo los campos presentes y revalida el documento resultante
// con las mismas reglas del alta.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Shelter, error) {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, err
	}

	if in.Name != nil {
		sh.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		sh.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		sh.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		sh.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	sh.UpdatedAt = s.now()

	if err := validate(sh); err != nil {
		return Shelter{}, err
	}
	if err := s.repo.Update(ctx, sh); err != nil {
		if err == apperr.ErrNotFound {
			return Shelter{}, &apperr.NotFound{Message: "Abrigo não encontrado para atualização."}
		}
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return &apperr.InvalidReference{Message: "ID de abrigo inválido."}
	}

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if err == apperr.ErrNotFound {
			return &apperr.NotFound{Message: "Abrigo não encontrado para exclusão."}
		}
		return err
	}
	return nil
}

// validate junta todos los mensajes de campo en un único error, en el orden
// fijo del modelo.
func validate(sh Shelter) error {
	var msgs []string

	if sh.Name == "" {
		msgs = append(msgs, "O nome do abrigo é obrigatório.")
	}
	if sh.Address == "" {
		msgs = append(msgs, "O endereço é obrigatório.")
	}
	switch {
	case sh.Phone == "":
		msgs = append(msgs, "O telefone é obrigatório.")
	case !phonePattern.MatchString(sh.Phone):
		msgs = append(msgs, "Formato de telefone inválido. Use (XX) XXXX-XXXX ou (XX) XXXXX-XXXX.")
	}
	switch {
	case sh.Email == "":
		msgs = append(msgs, "O e-mail é obrigatório.")
	case !emailPattern.MatchString(sh.Email):
		msgs = append(msgs, "Formato de e-mail inválido.")
	}

	if len(msgs) > 0 {
		return &apperr.Validation{Messages: msgs}
	}
	return nil
}
