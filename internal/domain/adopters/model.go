package adopters

import "time"

// Adopter representa a una persona adoptante. Email es único.
type Adopter struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string

	CreatedAt time.Time
	UpdatedAt time.Time
}
