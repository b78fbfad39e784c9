package adoptions

import "time"

// Adoption vincula un adoptante con un animal. No hay unicidad sobre
// AnimalID: el mismo animal puede aparecer en más de una adopción, igual
// que en el sistema original.
type Adoption struct {
	ID        string
	AdopterID string
	AnimalID  string

	AdoptionDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
