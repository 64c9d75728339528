package memory

import (
	"context"
	"testing"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
)

func TestRoomRepo_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepo()

	room := rooms.Room{
		ID:              "k1",
		Name:            "K1",
		Capacity:        1,
		AllowedPetTypes: []string{"dog"},
		Status:          rooms.StatusOccupied,
		Stay: &rooms.Stay{
			PetID:    "p1",
			CheckIn:  calendar.MustParse("2024-03-10"),
			CheckOut: calendar.MustParse("2024-03-13"),
		},
	}
	if err := repo.Create(ctx, room); err != nil {
		t.Fatalf("create: %v", err)
	}

	// mutar el original no debe afectar lo guardado
	room.Stay.CheckOut = calendar.MustParse("2024-04-01")
	room.AllowedPetTypes[0] = "cat"

	got, err := repo.GetByID(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stay.CheckOut.String() != "2024-03-13" || got.AllowedPetTypes[0] != "dog" {
		t.Fatalf("stored room shares memory with caller: %+v", got)
	}

	if err := repo.Update(ctx, rooms.Room{ID: "missing"}); err != rooms.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); err != rooms.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
