package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-scheduler/internal/domain/rooms"
)

// roomRepo guarda copias: la estadía es un puntero y las listas se comparten si no.
type roomRepo struct {
	mu   sync.RWMutex
	byID map[string]rooms.Room
}

func NewRoomRepo() rooms.Repository {
	return &roomRepo{
		byID: make(map[string]rooms.Room),
	}
}

func (r *roomRepo) Create(ctx context.Context, room rooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(room.ID) == "" {
		return errors.New("room id required")
	}
	if _, exists := r.byID[room.ID]; exists {
		return errors.New("room already exists")
	}
	r.byID[room.ID] = room.Clone()
	return nil
}

func (r *roomRepo) Update(ctx context.Context, room rooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[room.ID]; !exists {
		return rooms.ErrNotFound
	}
	r.byID[room.ID] = room.Clone()
	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byID[id]
	if !ok {
		return rooms.Room{}, rooms.ErrNotFound
	}
	return room.Clone(), nil
}

func (r *roomRepo) List(ctx context.Context) ([]rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rooms.Room, 0, len(r.byID))
	for _, room := range r.byID {
		out = append(out, room.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
