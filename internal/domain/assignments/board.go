package assignments

import (
	"slices"

	"kennel-scheduler/internal/domain/rooms"
)

// Board: roomID -> ids de mascotas en orden de llegada.
// Las funciones de este archivo no mutan el Board recibido; devuelven uno nuevo.
type Board map[string][]string

func (b Board) Clone() Board {
	out := make(Board, len(b))
	for roomID, ids := range b {
		out[roomID] = append([]string(nil), ids...)
	}
	return out
}

// RoomOf indica en qué habitación está la mascota.
func (b Board) RoomOf(petID string) (string, bool) {
	for roomID, ids := range b {
		if slices.Contains(ids, petID) {
			return roomID, true
		}
	}
	return "", false
}

// Candidate es lo que el motor necesita saber de la mascota a ubicar.
type Candidate struct {
	PetID    string
	Type     string
	Eligible bool
}

// Violation es una regla de asignación que no se cumple.
// @Enum ineligible, pet_type, capacity
type Violation string

const (
	ViolationIneligible Violation = "ineligible"
	ViolationPetType    Violation = "pet_type"
	ViolationCapacity   Violation = "capacity"
)

// Violations evalúa, en orden, elegibilidad, tipo de mascota y capacidad.
func Violations(room rooms.Room, pet Candidate, assigned []string) []Violation {
	out := make([]Violation, 0, 3)
	if !pet.Eligible {
		out = append(out, ViolationIneligible)
	}
	if !room.AllowsPetType(pet.Type) {
		out = append(out, ViolationPetType)
	}
	if len(assigned) >= room.Capacity {
		out = append(out, ViolationCapacity)
	}
	return out
}

// CanAssign: con override siempre se puede; si no, deben cumplirse las tres reglas.
func CanAssign(room rooms.Room, pet Candidate, assigned []string, override bool) bool {
	if override {
		return true
	}
	return len(Violations(room, pet, assigned)) == 0
}

// Assign mueve la mascota a la habitación: la quita de donde esté y la agrega al final.
// Si no se puede asignar devuelve el mismo Board y false.
// Asignar a la habitación donde ya está no cambia nada.
func Assign(b Board, room rooms.Room, pet Candidate, override bool) (Board, bool) {
	if cur, ok := b.RoomOf(pet.PetID); ok && cur == room.ID {
		return b, true
	}
	if !CanAssign(room, pet, b[room.ID], override) {
		return b, false
	}

	next := Unassign(b, pet.PetID)
	next[room.ID] = append(next[room.ID], pet.PetID)
	return next, true
}

// Unassign quita la mascota de todas las listas. Las listas vacías se eliminan.
func Unassign(b Board, petID string) Board {
	next := make(Board, len(b))
	for roomID, ids := range b {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != petID {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			next[roomID] = kept
		}
	}
	return next
}
