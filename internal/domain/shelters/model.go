package shelters

import "time"

// Shelter representa un abrigo registrado en la plataforma.
// Name y Email son únicos en el store.
type Shelter struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Email   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
