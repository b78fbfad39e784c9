package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/ports/auth"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ShelterRegistry y AdopterRegistry son los registros de entidades que el
// servicio usa para resolver o crear la entidad vinculada. Delete existe
// para compensar: si el alta de la identidad pierde la carrera del email
// después de haber creado la entidad, la entidad huérfana se borra.
type ShelterRegistry interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
	Create(ctx context.Context, in shelters.CreateInput) (shelters.Shelter, error)
	Delete(ctx context.Context, id string) error
}

type AdopterRegistry interface {
	GetByID(ctx context.Context, id string) (adopters.Adopter, error)
	Create(ctx context.Context, in adopters.CreateInput) (adopters.Adopter, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo     Repository
	shelters ShelterRegistry
	adopters AdopterRegistry
	tokens   auth.TokenIssuer
	hashCost int
	now      func() time.Time
}

func NewService(repo Repository, shelterReg ShelterRegistry, adopterReg AdopterRegistry, tokens auth.TokenIssuer, hashCost int) *Service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:     repo,
		shelters: shelterReg,
		adopters: adopterReg,
		tokens:   tokens,
		hashCost: hashCost,
		now:      time.Now,
	}
}

// EntityInput son los datos mínimos para crear la entidad junto con la
// identidad. Si Email viene vacío se reutiliza el email de login.
type EntityInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string

	// Variante (a): vincular una entidad existente.
	EntityID string
	// Variante (b): crear la entidad en el mismo registro.
	Entity *EntityInput
}

type AuthResult struct {
	Token string
	User  PublicUser
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := in.Password
	roleStr := strings.TrimSpace(in.Role)

	if email == "" || password == "" || roleStr == "" {
		return AuthResult{}, apperr.NewValidation("Por favor, forneça e-mail, senha e tipo de usuário.")
	}

	var msgs []string
	if !emailPattern.MatchString(email) {
		msgs = append(msgs, "Formato de e-mail inválido.")
	}
	if len(password) < 6 {
		msgs = append(msgs, "A senha deve ter no mínimo 6 caracteres.")
	}
	role, ok := ParseRole(roleStr)
	if !ok {
		msgs = append(msgs, "Tipo de usuário (role) inválido.")
	}
	if len(msgs) > 0 {
		return AuthResult{}, &apperr.Validation{Messages: msgs}
	}

	// Los admins no llevan entidad vinculada: ni id ni datos de creación.
	if role == RoleAdmin && (in.EntityID != "" || in.Entity != nil) {
		return AuthResult{}, apperr.NewValidation("Administradores não possuem entidade vinculada.")
	}

	var entityID *string
	var createdRef *EntityRef
	if role != RoleAdmin {
		id, created, err := s.resolveOrCreateEntity(ctx, role, in, email)
		if err != nil {
			return AuthResult{}, err
		}
		entityID = &id
		if created {
			createdRef = &EntityRef{Role: role, EntityID: id}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EntityID:     entityID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// Perdimos la carrera del email después de crear la entidad:
		// borramos la entidad recién creada antes de reportar el duplicado.
		if createdRef != nil {
			s.deleteEntity(ctx, *createdRef)
		}
		var dup *apperr.Duplicate
		if errors.As(err, &dup) {
			return AuthResult{}, &apperr.Duplicate{Message: "E-mail já cadastrado."}
		}
		return AuthResult{}, err
	}

	return s.issueFor(u)
}

// resolveOrCreateEntity implementa las dos variantes de vínculo. Devuelve
// el id de la entidad y si fue creada en esta misma operación.
func (s *Service) resolveOrCreateEntity(ctx context.Context, role Role, in RegisterInput, loginEmail string) (string, bool, error) {
	if in.EntityID != "" {
		ref := EntityRef{Role: role, EntityID: strings.TrimSpace(in.EntityID)}
		if err := s.checkEntityRef(ctx, ref); err != nil {
			return "", false, err
		}
		return ref.EntityID, false, nil
	}

	if in.Entity == nil {
		return "", false, apperr.NewValidation("Informe entity_id ou os dados da entidade (name, address, phone).")
	}

	entityEmail := strings.TrimSpace(in.Entity.Email)
	if entityEmail == "" {
		entityEmail = loginEmail
	}

	switch role {
	case RoleShelter:
		sh, err := s.shelters.Create(ctx, shelters.CreateInput{
			Name:    in.Entity.Name,
			Address: in.Entity.Address,
			Phone:   in.Entity.Phone,
			Email:   entityEmail,
		})
		if err != nil {
			return "", false, err
		}
		return sh.ID, true, nil
	case RoleAdopter:
		a, err := s.adopters.Create(ctx, adopters.CreateInput{
			Name:    in.Entity.Name,
			Email:   entityEmail,
			Phone:   in.Entity.Phone,
			Address: in.Entity.Address,
		})
		if err != nil {
			return "", false, err
		}
		return a.ID, true, nil
	}
	return "", false, apperr.NewValidation("Tipo de usuário (role) inválido.")
}

// checkEntityRef despacha la unión etiquetada al registro correcto:
// formato primero, existencia después.
func (s *Service) checkEntityRef(ctx context.Context, ref EntityRef) error {
	switch ref.Role {
	case RoleShelter:
		if _, err := uuid.Parse(ref.EntityID); err != nil {
			return &apperr.InvalidReference{Message: "ID do abrigo é obrigatório e deve ser válido para o tipo \"shelter\"."}
		}
		if _, err := s.shelters.GetByID(ctx, ref.EntityID); err != nil {
			if isNotFound(err) {
				return &apperr.ReferenceNotFound{Entity: "shelter", Message: "Abrigo não encontrado para vincular."}
			}
			return err
		}
	case RoleAdopter:
		if _, err := uuid.Parse(ref.EntityID); err != nil {
			return &apperr.InvalidReference{Message: "ID do adotante é obrigatório e deve ser válido para o tipo \"adopter\"."}
		}
		if _, err := s.adopters.GetByID(ctx, ref.EntityID); err != nil {
			if isNotFound(err) {
				return &apperr.ReferenceNotFound{Entity: "adopter", Message: "Adotante não encontrado para vincular."}
			}
			return err
		}
	}
	return nil
}

func (s *Service) deleteEntity(ctx context.Context, ref EntityRef) {
	switch ref.Role {
	case RoleShelter:
		_ = s.shelters.Delete(ctx, ref.EntityID)
	case RoleAdopter:
		_ = s.adopters.Delete(ctx, ref.EntityID)
	}
}

// Login autentica con mensaje uniforme: no distingue email desconocido de
// contraseña incorrecta.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, apperr.NewValidation("Por favor, forneça e-mail e senha.")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return AuthResult{}, apperr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}

	return s.issueFor(u)
}

// Principal resuelve una identidad ya autenticada por token. Si la
// identidad fue borrada desde que se emitió el token, el gate recibe
// ErrIdentityNotFound y corta con 401.
func (s *Service) Principal(ctx context.Context, identityID string) (PublicUser, error) {
	u, err := s.repo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return PublicUser{}, apperr.ErrIdentityNotFound
		}
		return PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *Service) issueFor(u User) (AuthResult, error) {
	claims := auth.Claims{
		IdentityID: u.ID,
		Role:       string(u.Role),
	}
	if u.EntityID != nil {
		claims.EntityID = *u.EntityID
	}

	token, err := s.tokens.Issue(claims)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u.Public()}, nil
}

func isNotFound(err error) bool {
	var nf *apperr.NotFound
	return errors.Is(err, apperr.ErrNotFound) || errors.As(err, &nf)
}
