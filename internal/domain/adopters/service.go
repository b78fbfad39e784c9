package adopters

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
	Email   string
	Phone   string
	Address string
}

type UpdateInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Adopter, error) {
	now := s.now()
	a := Adopter{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validate(a); err != nil {
		return Adopter{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adopter, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Adopter{}, &apperr.InvalidReference{Message: "ID de adotante inválido."}
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err == apperr.ErrNotFound {
			return Adopter{}, &apperr.NotFound{Message: "Adotante não encontrado."}
		}
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Adopter, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Adopter, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Adopter{}, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		a.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		a.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		a.Address = strings.TrimSpace(*in.Address)
	}
	a.UpdatedAt = s.now()

	if err := validate(a); err != nil {
		return Adopter{}, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		if err == apperr.ErrNotFound {
			return Adopter{}, &apperr.NotFound{Message: "Adotante não encontrado para atualização."}
		}
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return &apperr.InvalidReference{Message: "ID de adotante inválido."}
	}

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if err == apperr.ErrNotFound {
			return &apperr.NotFound{Message: "Adotante não encontrado para exclusão."}
		}
		return err
	}
	return nil
}

func validate(a Adopter) error {
	var msgs []string

	if a.Name == "" {
		msgs = append(msgs, "O nome do adotante é obrigatório.")
	}
	switch {
	case a.Email == "":
		msgs = append(msgs, "O e-mail do adotante é obrigatório.")
	case !emailPattern.MatchString(a.Email):
		msgs = append(msgs, "Formato de e-mail inválido.")
	}
	switch {
	case a.Phone == "":
		msgs = append(msgs, "O telefone do adotante é obrigatório.")
	case !phonePattern.MatchString(a.Phone):
		msgs = append(msgs, "Formato de telefone inválido. Use (XX) XXXX-XXXX ou (XX) XXXXX-XXXX.")
	}
	if a.Address == "" {
		msgs = append(msgs, "O endereço do adotante é obrigatório.")
	}

	if len(msgs) > 0 {
		return &apperr.Validation{Messages: msgs}
	}
	return nil
}
