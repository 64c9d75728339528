package pets

import "time"

// Species define las especies soportadas. La lista es extensible: el alta acepta
// cualquier valor no vacío y lo normaliza a minúsculas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Pet es el huésped: lo mínimo que necesita la guardería para asignarlo a una habitación.
type Pet struct {
	ID string

	Name  string
	Type  Species // dog, cat, ...
	Breed string
	Sex   Sex

	// Contacto del dueño (se copia a la estadía al reservar)
	OwnerName  string
	OwnerPhone string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
