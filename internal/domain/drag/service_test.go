package drag

import (
	"context"
	"errors"
	"testing"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/domain/timeline"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type testStore struct {
	sess *Session
}

func (s *testStore) Create(ctx context.Context, sess Session) error {
	if s.sess != nil {
		return ErrSessionActive
	}
	s.sess = &sess
	return nil
}

func (s *testStore) Get(ctx context.Context) (Session, bool, error) {
	if s.sess == nil {
		return Session{}, false, nil
	}
	return *s.sess, true, nil
}

func (s *testStore) Replace(ctx context.Context, sess Session) error {
	if s.sess == nil {
		return ErrNoSession
	}
	s.sess = &sess
	return nil
}

func (s *testStore) Delete(ctx context.Context) error {
	s.sess = nil
	return nil
}

type testRooms struct {
	byID    map[string]rooms.Room
	updates int
}

func (r *testRooms) GetByID(ctx context.Context, id string) (rooms.Room, error) {
	room, ok := r.byID[id]
	if !ok {
		return rooms.Room{}, rooms.ErrNotFound
	}
	return room, nil
}

func (r *testRooms) UpdateStayDates(ctx context.Context, id string, in, out calendar.Date) (rooms.Room, error) {
	room, err := r.GetByID(ctx, id)
	if err != nil {
		return rooms.Room{}, err
	}
	next, err := room.UpdateStayDates(in, out)
	if err != nil {
		return room, err
	}
	r.updates++
	r.byID[id] = next
	return next, nil
}

func newFixture(t *testing.T) (*Service, *testStore, *testRooms) {
	t.Helper()

	occupied, err := rooms.Room{
		ID: "room-1", Name: "K1", Capacity: 1, AllowedPetTypes: []string{"dog"}, Status: rooms.StatusVacant,
	}.Confirm(&rooms.BookingInput{
		PetID: "pet-1", ClientName: "Ana",
		CheckIn: d("2024-03-10"), CheckOut: d("2024-03-13"),
		DailyRate: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	rs := &testRooms{byID: map[string]rooms.Room{
		"room-1": occupied,
		"room-2": {ID: "room-2", Name: "K2", Capacity: 1, Status: rooms.StatusVacant},
	}}
	store := &testStore{}
	return NewService(store, rs, nil), store, rs
}

func startInput(room string, edge Edge) StartInput {
	return StartInput{
		RoomID:   room,
		Edge:     edge,
		PointerX: 250,
		Window:   timeline.Window{Start: d("2024-03-11"), Days: 7},
		Geometry: Geometry{GridOffsetX: 0, CellWidth: 100},
	}
}

func TestService_DragEndEdgeTwoColumnsAndCommit(t *testing.T) {
	svc, store, rs := newFixture(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, startInput("room-1", EdgeEnd))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", sess.PreviewCheckOut.String())

	// 13/03 está en la columna 2; dos columnas a la derecha -> 15/03
	sess, accepted, err := svc.Move(ctx, 450)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, "2024-03-15", sess.PreviewCheckOut.String())

	p, ok, err := svc.ActivePreview(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", p.CheckOut.String())

	room, err := svc.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", room.Stay.CheckOut.String())
	assert.Equal(t, 5, room.Nights())
	assert.Equal(t, 1, rs.updates)
	assert.Nil(t, store.sess)
}

func TestService_RejectedMoveKeepsLastAcceptedPreview(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-1", EdgeEnd))
	require.NoError(t, err)

	_, accepted, err := svc.Move(ctx, 550) // 16/03
	require.NoError(t, err)
	require.True(t, accepted)

	// columna 0 = 11/03 > checkIn 10/03: aceptado
	_, accepted, err = svc.Move(ctx, 10)
	require.NoError(t, err)
	require.True(t, accepted)

	room, err := svc.Leave(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", room.Stay.CheckOut.String())
	assert.Equal(t, 1, room.Nights())
}

func TestService_StartEdgeRejectsCandidateAtCheckOut(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-1", EdgeStart))
	require.NoError(t, err)

	sess, accepted, err := svc.Move(ctx, 650) // 17/03 >= checkOut
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, "2024-03-10", sess.PreviewCheckIn.String())
}

func TestService_NoNetMovementCommitsOriginalRange(t *testing.T) {
	svc, _, rs := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-1", EdgeStart))
	require.NoError(t, err)

	room, err := svc.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", room.Stay.CheckIn.String())
	assert.Equal(t, "2024-03-13", room.Stay.CheckOut.String())
	assert.Equal(t, 1, rs.updates)
}

func TestService_StartIsIgnoredWhenNotApplicable(t *testing.T) {
	svc, store, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-2", EdgeEnd))
	assert.ErrorIs(t, err, ErrNoStayDates)

	_, err = svc.Start(ctx, startInput("room-1", Edge("middle")))
	assert.ErrorIs(t, err, ErrInvalidEdge)

	in := startInput("room-1", EdgeEnd)
	in.Window.Days = 10
	_, err = svc.Start(ctx, in)
	assert.ErrorIs(t, err, timeline.ErrInvalidDayCount)

	in = startInput("room-1", EdgeEnd)
	in.Geometry.CellWidth = 0
	_, err = svc.Start(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = svc.Start(ctx, startInput("missing", EdgeEnd))
	assert.ErrorIs(t, err, rooms.ErrNotFound)

	assert.Nil(t, store.sess)
}

func TestService_StartRejectsRoomUnderMaintenance(t *testing.T) {
	svc, store, rs := newFixture(t)
	ctx := context.Background()

	// mantenimiento conserva la estadía, pero ya no se puede editar
	maint, err := rs.byID["room-1"].StartMaintenance()
	require.NoError(t, err)
	require.True(t, maint.Stay.HasDates())
	rs.byID["room-1"] = maint

	_, err = svc.Start(ctx, startInput("room-1", EdgeEnd))
	assert.ErrorIs(t, err, ErrNoStayDates)
	assert.Nil(t, store.sess)
	assert.Zero(t, rs.updates)
}

func TestService_OnlyOneSession(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-1", EdgeEnd))
	require.NoError(t, err)

	_, err = svc.Start(ctx, startInput("room-1", EdgeStart))
	assert.ErrorIs(t, err, ErrSessionActive)

	cur, ok, err := svc.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EdgeEnd, cur.Edge)
}

func TestService_MoveAndCommitWithoutSession(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, _, err := svc.Move(ctx, 100)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Commit(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, ok, err := svc.ActivePreview(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CommitFailureStillEndsSession(t *testing.T) {
	svc, store, rs := newFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, startInput("room-1", EdgeEnd))
	require.NoError(t, err)

	// la habitación se liberó mientras se arrastraba
	released, err := rs.byID["room-1"].MarkAvailable()
	require.NoError(t, err)
	rs.byID["room-1"] = released

	_, err = svc.Commit(ctx)
	assert.True(t, errors.Is(err, rooms.ErrNoActiveStay))
	assert.Nil(t, store.sess)
}
