package rooms

import (
	"strings"
	"time"

	"kennel-scheduler/internal/domain/calendar"

	"github.com/shopspring/decimal"
)

// Type define la categoría de la habitación.
// @Enum standard, large, suite, luxury
type Type string

const (
	TypeStandard Type = "standard"
	TypeLarge    Type = "large"
	TypeSuite    Type = "suite"
	TypeLuxury   Type = "luxury"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStandard, TypeLarge, TypeSuite, TypeLuxury:
		return true
	}
	return false
}

// Status es el estado de ocupación.
// @Enum vacant, occupied, reserved, maintenance
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusReserved    Status = "reserved"
	StatusMaintenance Status = "maintenance"
)

// Stay es la reserva/estadía actual de una habitación.
type Stay struct {
	ID    string
	PetID string

	ClientName  string
	ClientPhone string
	ClientEmail string

	CheckIn  calendar.Date
	CheckOut calendar.Date

	DailyRate decimal.Decimal
	Status    Status // reserved u occupied
}

// HasDates indica si la estadía tiene rango completo.
func (s *Stay) HasDates() bool {
	return s != nil && !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

// Room es una habitación (kennel) con capacidad limitada.
type Room struct {
	ID   string
	Name string
	Type Type

	Capacity        int
	AllowedPetTypes []string
	Restrictions    []string
	AllowsShared    bool

	// Requiere evaluación de comportamiento vigente para alojar mascotas.
	RequiresEvaluation bool

	Status Status
	Stay   *Stay

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsPetType compara sin distinguir mayúsculas.
func (r Room) AllowsPetType(petType string) bool {
	for _, t := range r.AllowedPetTypes {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(petType)) {
			return true
		}
	}
	return false
}

// Nights es checkOut - checkIn en días. Sin estadía, 0.
func (r Room) Nights() int {
	if !r.Stay.HasDates() {
		return 0
	}
	return r.Stay.CheckOut.Sub(r.Stay.CheckIn)
}

// TotalPrice = noches * tarifa diaria.
func (r Room) TotalPrice() decimal.Decimal {
	if r.Stay == nil {
		return decimal.Zero
	}
	return r.Stay.DailyRate.Mul(decimal.NewFromInt(int64(r.Nights())))
}
