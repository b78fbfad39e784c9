package animals

import "time"

// Species define las especies soportadas.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo del animal.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Animal representa un animal publicado para adopción. ShelterID referencia
// al abrigo responsable y se valida (formato + existencia) en cada escritura.
type Animal struct {
	ID          string
	Name        string
	Species     Species
	Breed       string
	Age         int
	Sex         Sex
	Description string
	Photos      []string

	ShelterID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
