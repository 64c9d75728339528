package redis

import (
	"context"
	"testing"
	"time"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/drag"
	"kennel-scheduler/internal/domain/timeline"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *DragSessionStore) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewDragSessionStore(client, "")
}

func sampleSession() drag.Session {
	return drag.Session{
		RoomID:          "room-1",
		Edge:            drag.EdgeEnd,
		InitialPointerX: 250,
		PreviewCheckIn:  calendar.MustParse("2024-03-10"),
		PreviewCheckOut: calendar.MustParse("2024-03-13"),
		Window:          timeline.Window{Start: calendar.MustParse("2024-03-11"), Days: 7},
		Geometry:        drag.Geometry{GridOffsetX: 120, CellWidth: 64},
		StartedAt:       time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC),
	}
}

func TestDragSessionStore_CreateGetRoundTrip(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Create(ctx, sampleSession()))
	assert.True(t, mr.Exists(DefaultSessionKey))
	assert.Equal(t, time.Duration(0), mr.TTL(DefaultSessionKey))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSession(), got)
}

func TestDragSessionStore_OnlyOneSession(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleSession()))

	other := sampleSession()
	other.RoomID = "room-2"
	err := store.Create(ctx, other)
	assert.ErrorIs(t, err, drag.ErrSessionActive)

	got, _, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "room-1", got.RoomID)
}

func TestDragSessionStore_ReplaceRequiresSession(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	err := store.Replace(ctx, sampleSession())
	assert.ErrorIs(t, err, drag.ErrNoSession)

	require.NoError(t, store.Create(ctx, sampleSession()))

	moved := sampleSession()
	moved.PreviewCheckOut = calendar.MustParse("2024-03-15")
	require.NoError(t, store.Replace(ctx, moved))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", got.PreviewCheckOut.String())
}

func TestDragSessionStore_Delete(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleSession()))
	require.NoError(t, store.Delete(ctx))
	assert.False(t, mr.Exists(DefaultSessionKey))

	// borrar sin sesión no es error
	require.NoError(t, store.Delete(ctx))

	// y se puede volver a abrir
	require.NoError(t, store.Create(ctx, sampleSession()))
}

func TestDragSessionStore_CorruptPayload(t *testing.T) {
	mr, store := setupTestRedis(t)

	require.NoError(t, mr.Set(DefaultSessionKey, "{not json"))

	_, _, err := store.Get(context.Background())
	assert.Error(t, err)
}

func TestNewClient_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(addr, "", 0)
	assert.Error(t, err)
}

func TestNewClient_OK(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = c.Close()
}
