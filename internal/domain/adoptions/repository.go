package adoptions

import "context"

type Filter struct {
	AdopterID string
	AnimalID  string
}

type Repository interface {
	Create(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	List(ctx context.Context, f Filter) ([]Adoption, error)
	Update(ctx context.Context, a Adoption) error
	Delete(ctx context.Context, id string) error
}
