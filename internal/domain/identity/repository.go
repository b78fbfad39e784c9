package identity

import "context"

// Repository es el credential store. El email se guarda ya en minúsculas y
// su unicidad la garantiza el store: el perdedor de una carrera de registro
// recibe apperr.Duplicate, nunca un estado corrupto.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
