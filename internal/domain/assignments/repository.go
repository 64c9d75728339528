package assignments

import "context"

type Repository interface {
	Load(ctx context.Context) (Board, error)
	Save(ctx context.Context, b Board) error

	AddOverride(ctx context.Context, rec OverrideRecord) error
	ListOverrides(ctx context.Context) ([]OverrideRecord, error)
}
