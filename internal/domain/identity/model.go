package identity

import "time"

// Role es el papel del principal de login.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleShelter Role = "shelter"
	RoleAdopter Role = "adopter"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleShelter, RoleAdopter:
		return Role(s), true
	}
	return "", false
}

// User es la identidad de login, separada de la entidad de negocio
// (Shelter/Adopter) a la que puede estar vinculada. PasswordHash nunca sale
// de este paquete: las respuestas usan PublicUser.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EntityID     *string // presente sii Role != admin

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityRef es la unión etiquetada {role, entityId}: el rol dice a qué
// registro (abrigos o adoptantes) apunta el id, sin ambigüedad.
type EntityRef struct {
	Role     Role
	EntityID string
}

// Ref devuelve la referencia etiquetada, o nil para identidades sin entidad.
func (u User) Ref() *EntityRef {
	if u.EntityID == nil {
		return nil
	}
	return &EntityRef{Role: u.Role, EntityID: *u.EntityID}
}

// PublicUser es la vista que viaja en las respuestas: nunca incluye el hash.
type PublicUser struct {
	ID       string
	Email    string
	Role     Role
	EntityID *string
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		EntityID: u.EntityID,
	}
}
