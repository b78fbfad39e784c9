package shelters

import "context"

// Repository persiste abrigos. La unicidad de name y email la garantiza el
// store (índice único en postgres, chequeo bajo lock en memoria) y se
// reporta como apperr.Duplicate.
type Repository interface {
	Create(ctx context.Context, s Shelter) error
	GetByID(ctx context.Context, id string) (Shelter, error)
	List(ctx context.Context) ([]Shelter, error)
	Update(ctx context.Context, s Shelter) error
	Delete(ctx context.Context, id string) error
}
