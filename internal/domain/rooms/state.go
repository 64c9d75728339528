package rooms

import (
	"errors"
	"strings"

	"kennel-scheduler/internal/domain/calendar"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("room not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDateRange  = errors.New("check-in must be before check-out")
	ErrNoActiveStay      = errors.New("room has no active stay")
	ErrMinimumStay       = errors.New("stay must keep at least one night")
	ErrPetAlreadyBooked  = errors.New("pet already has an active stay in another room")
)

// BookingInput son los datos de una reserva nueva (o de un walk-in).
type BookingInput struct {
	PetID       string
	ClientName  string
	ClientPhone string
	ClientEmail string
	CheckIn     calendar.Date
	CheckOut    calendar.Date
	DailyRate   decimal.Decimal
}

func (in BookingInput) validate() error {
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.ClientName) == "" {
		return ErrInvalidInput
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return ErrInvalidInput
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return ErrInvalidDateRange
	}
	if in.DailyRate.IsNegative() {
		return ErrInvalidInput
	}
	return nil
}

func (in BookingInput) toStay(status Status) *Stay {
	return &Stay{
		ID:          uuid.NewString(),
		PetID:       strings.TrimSpace(in.PetID),
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		DailyRate:   in.DailyRate,
		Status:      status,
	}
}

// Las transiciones trabajan sobre copias: si devuelven error, el Room original no cambia.
// No hay transiciones automáticas por fecha; todo cambio de estado es explícito.

// Clone copia la estadía y las listas.
func (r Room) Clone() Room {
	out := r
	if r.Stay != nil {
		st := *r.Stay
		out.Stay = &st
	}
	out.AllowedPetTypes = append([]string(nil), r.AllowedPetTypes...)
	out.Restrictions = append([]string(nil), r.Restrictions...)
	return out
}

// Book: vacant -> reserved.
func (r Room) Book(in BookingInput) (Room, error) {
	if r.Status != StatusVacant {
		return r, ErrInvalidTransition
	}
	if err := in.validate(); err != nil {
		return r, err
	}
	out := r.Clone()
	out.Status = StatusReserved
	out.Stay = in.toStay(StatusReserved)
	return out, nil
}

// Confirm: reserved -> occupied. Con walkIn != nil también acepta vacant -> occupied.
func (r Room) Confirm(walkIn *BookingInput) (Room, error) {
	switch r.Status {
	case StatusReserved:
		if r.Stay == nil {
			return r, ErrNoActiveStay
		}
		out := r.Clone()
		out.Status = StatusOccupied
		out.Stay.Status = StatusOccupied
		return out, nil
	case StatusVacant:
		if walkIn == nil {
			return r, ErrInvalidTransition
		}
		if err := walkIn.validate(); err != nil {
			return r, err
		}
		out := r.Clone()
		out.Status = StatusOccupied
		out.Stay = walkIn.toStay(StatusOccupied)
		return out, nil
	default:
		return r, ErrInvalidTransition
	}
}

// MarkAvailable: occupied|reserved -> vacant, limpia mascota, cliente y fechas.
func (r Room) MarkAvailable() (Room, error) {
	if r.Status != StatusOccupied && r.Status != StatusReserved {
		return r, ErrInvalidTransition
	}
	out := r.Clone()
	out.Status = StatusVacant
	out.Stay = nil
	return out, nil
}

// StartMaintenance: cualquier estado -> maintenance. La estadía se conserva.
func (r Room) StartMaintenance() (Room, error) {
	out := r.Clone()
	out.Status = StatusMaintenance
	return out, nil
}

// EndMaintenance: maintenance -> vacant. vacant nunca lleva estadía.
func (r Room) EndMaintenance() (Room, error) {
	if r.Status != StatusMaintenance {
		return r, ErrInvalidTransition
	}
	out := r.Clone()
	out.Status = StatusVacant
	out.Stay = nil
	return out, nil
}

// HasActiveStay indica una estadía reserved/occupied con fechas completas.
func (r Room) HasActiveStay() bool {
	if r.Status != StatusOccupied && r.Status != StatusReserved {
		return false
	}
	return r.Stay.HasDates()
}

// Extend suma días al check-out.
func (r Room) Extend(days int) (Room, error) {
	if days < 1 {
		return r, ErrInvalidInput
	}
	if !r.HasActiveStay() {
		return r, ErrNoActiveStay
	}
	next, err := r.Stay.CheckOut.Shift(days)
	if err != nil {
		return r, ErrInvalidInput
	}
	out := r.Clone()
	out.Stay.CheckOut = next
	return out, nil
}

// Shorten resta un día al check-out, siempre que quede al menos una noche.
func (r Room) Shorten() (Room, error) {
	if !r.HasActiveStay() {
		return r, ErrNoActiveStay
	}
	next := r.Stay.CheckOut.AddDays(-1)
	if !next.After(r.Stay.CheckIn) {
		return r, ErrMinimumStay
	}
	out := r.Clone()
	out.Stay.CheckOut = next
	return out, nil
}

// UpdateStayDates reemplaza el rango de la estadía (commit del drag o edición directa).
func (r Room) UpdateStayDates(checkIn, checkOut calendar.Date) (Room, error) {
	if !r.HasActiveStay() {
		return r, ErrNoActiveStay
	}
	if checkIn.IsZero() || checkOut.IsZero() {
		return r, ErrInvalidInput
	}
	if !checkIn.Before(checkOut) {
		return r, ErrInvalidDateRange
	}
	out := r.Clone()
	out.Stay.CheckIn = checkIn
	out.Stay.CheckOut = checkOut
	return out, nil
}
