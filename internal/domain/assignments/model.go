package assignments

import "time"

// OverrideRecord deja constancia de una asignación que sólo fue posible con override.
type OverrideRecord struct {
	ID      string
	PetID   string
	RoomID  string
	StaffID string
	Reason  string

	Bypassed []Violation

	CreatedAt time.Time
}
