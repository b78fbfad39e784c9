package animals

import "context"

// Filter limita el listado. Los campos vacíos no filtran.
type Filter struct {
	Species   string
	Breed     string
	Age       *int
	ShelterID string
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
}
