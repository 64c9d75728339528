package records

import "time"

// Vaccination es un documento de vacunación. La elegibilidad sólo mira si existe;
// el vencimiento del documento no se controla.
type Vaccination struct {
	ID    string
	PetID string

	Type string // rabies, distemper, bordetella...

	RecordedAt time.Time
}

// EvaluationStatus es el resultado de la evaluación de comportamiento.
// Se guarda tal cual llega: cualquier valor distinto de passed bloquea.
// @Enum passed, failed, pending
type EvaluationStatus string

const (
	EvaluationPassed  EvaluationStatus = "passed"
	EvaluationFailed  EvaluationStatus = "failed"
	EvaluationPending EvaluationStatus = "pending"
)

// Evaluation es una evaluación de comportamiento.
// EvaluatedAt queda como texto: viene de sistemas externos y puede no parsear.
type Evaluation struct {
	ID    string
	PetID string

	EvaluatedAt string
	Status      EvaluationStatus
	IsExpired   bool

	RecordedAt time.Time
}
