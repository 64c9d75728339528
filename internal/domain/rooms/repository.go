package rooms

import "context"

type Repository interface {
	Create(ctx context.Context, r Room) error
	Update(ctx context.Context, r Room) error
	GetByID(ctx context.Context, id string) (Room, error)
	List(ctx context.Context) ([]Room, error)
}
