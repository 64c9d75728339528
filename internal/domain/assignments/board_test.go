package assignments

import (
	"testing"

	"kennel-scheduler/internal/domain/rooms"
)

func dogRoom(id string, capacity int) rooms.Room {
	return rooms.Room{ID: id, Name: id, Capacity: capacity, AllowedPetTypes: []string{"dog"}}
}

func dog(id string) Candidate { return Candidate{PetID: id, Type: "dog", Eligible: true} }

func TestAssign_FullRoomRejectsWithoutOverride(t *testing.T) {
	room := dogRoom("k1", 2)
	b := Board{"k1": {"d1", "d2"}}

	next, ok := Assign(b, room, dog("d3"), false)
	if ok {
		t.Fatalf("expected rejection")
	}
	if got := next["k1"]; len(got) != 2 || got[0] != "d1" || got[1] != "d2" {
		t.Fatalf("board must be unchanged, got %v", got)
	}
}

func TestAssign_OverrideBypassesEverything(t *testing.T) {
	room := dogRoom("k1", 1)
	b := Board{"k1": {"d1"}}
	cat := Candidate{PetID: "c1", Type: "cat", Eligible: false}

	if CanAssign(room, cat, b["k1"], false) {
		t.Fatalf("expected canAssign false without override")
	}

	next, ok := Assign(b, room, cat, true)
	if !ok {
		t.Fatalf("expected override to accept")
	}
	if len(next["k1"]) != 2 || next["k1"][1] != "c1" {
		t.Fatalf("expected c1 appended, got %v", next["k1"])
	}
}

func TestViolations_Order(t *testing.T) {
	room := dogRoom("k1", 1)
	cat := Candidate{PetID: "c1", Type: "cat", Eligible: false}

	got := Violations(room, cat, []string{"d1"})
	want := []Violation{ViolationIneligible, ViolationPetType, ViolationCapacity}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if v := Violations(room, dog("d2"), nil); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestAssign_PetTypeIsCaseInsensitive(t *testing.T) {
	room := dogRoom("k1", 2)
	if !CanAssign(room, Candidate{PetID: "d1", Type: "Dog", Eligible: true}, nil, false) {
		t.Fatalf("expected Dog to match dog")
	}
}

func TestAssign_MoveSemanticsAndPurity(t *testing.T) {
	k1, k2 := dogRoom("k1", 2), dogRoom("k2", 2)
	b := Board{"k1": {"d1", "d2"}, "k2": {"d3"}}

	next, ok := Assign(b, k2, dog("d1"), false)
	if !ok {
		t.Fatalf("expected move accepted")
	}

	if room, _ := next.RoomOf("d1"); room != "k2" {
		t.Fatalf("expected d1 in k2, got %q", room)
	}
	if len(next["k1"]) != 1 || next["k1"][0] != "d2" {
		t.Fatalf("expected d1 removed from k1, got %v", next["k1"])
	}
	if len(next["k2"]) != 2 || next["k2"][1] != "d1" {
		t.Fatalf("expected d1 appended to k2, got %v", next["k2"])
	}

	// el board original no cambia
	if len(b["k1"]) != 2 || len(b["k2"]) != 1 {
		t.Fatalf("input board mutated: %v", b)
	}

	// mover a la misma habitación: sin cambios aunque esté llena
	same, ok := Assign(next, k1, dog("d2"), false)
	if !ok || len(same["k1"]) != 1 {
		t.Fatalf("expected same-room assign to be a no-op, got %v ok=%v", same["k1"], ok)
	}
}

func TestUnassign(t *testing.T) {
	b := Board{"k1": {"d1"}, "k2": {"d2", "d3"}}

	next := Unassign(b, "d2")
	if _, ok := next.RoomOf("d2"); ok {
		t.Fatalf("expected d2 removed")
	}
	if len(next["k2"]) != 1 || next["k2"][0] != "d3" {
		t.Fatalf("unexpected k2: %v", next["k2"])
	}

	next = Unassign(next, "d1")
	if _, ok := next["k1"]; ok {
		t.Fatalf("expected empty list removed")
	}

	if len(b["k2"]) != 2 {
		t.Fatalf("input board mutated")
	}

	// no asignada: sin cambios
	same := Unassign(b, "zz")
	if len(same) != len(b) {
		t.Fatalf("expected unchanged board")
	}
}

func TestBoard_InvariantsUnderSequence(t *testing.T) {
	roomsByID := map[string]rooms.Room{
		"k1": dogRoom("k1", 1),
		"k2": dogRoom("k2", 2),
		"k3": dogRoom("k3", 3),
	}
	order := []string{"k1", "k2", "k3", "k2", "k1", "k3", "k3", "k1"}

	b := Board{}
	for i, roomID := range order {
		pet := dog([]string{"a", "b", "c", "d"}[i%4])
		b, _ = Assign(b, roomsByID[roomID], pet, false)

		seen := map[string]string{}
		for rid, ids := range b {
			if len(ids) > roomsByID[rid].Capacity {
				t.Fatalf("step %d: room %s over capacity: %v", i, rid, ids)
			}
			for _, id := range ids {
				if prev, dup := seen[id]; dup {
					t.Fatalf("step %d: pet %s in %s and %s", i, id, prev, rid)
				}
				seen[id] = rid
			}
		}
	}
}
