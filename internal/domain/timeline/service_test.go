package timeline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"kennel-scheduler/internal/domain/rooms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeRooms struct {
	list []rooms.Room
	err  error
}

func (f fakeRooms) List(ctx context.Context) ([]rooms.Room, error) { return f.list, f.err }

type fakePreview struct {
	p   Preview
	ok  bool
	err error
}

func (f fakePreview) ActivePreview(ctx context.Context) (Preview, bool, error) {
	return f.p, f.ok, f.err
}

func sampleRooms() []rooms.Room {
	return []rooms.Room{
		{
			ID: "r-2", Name: "K2", Type: rooms.TypeSuite, Capacity: 1, Status: rooms.StatusVacant,
		},
		{
			ID: "r-1", Name: "K1", Type: rooms.TypeStandard, Capacity: 2, Status: rooms.StatusOccupied,
			Stay: &rooms.Stay{PetID: "pet-1", CheckIn: d("2024-03-09"), CheckOut: d("2024-03-13"), Status: rooms.StatusOccupied},
		},
		{
			ID: "r-3", Name: "K3", Type: rooms.TypeLarge, Capacity: 1, Status: rooms.StatusReserved,
			Stay: &rooms.Stay{PetID: "pet-3", CheckIn: d("2024-03-01"), CheckOut: d("2024-03-05"), Status: rooms.StatusReserved},
		},
	}
}

func newTestService(rl RoomLister, ps PreviewSource) *Service {
	svc := NewService(rl, ps, Config{DefaultDays: 14, WeekStart: time.Monday}, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local) }
	return svc
}

func TestBuildGrid_LeftClippedAndOutOfWindow(t *testing.T) {
	w, err := NewWindow(d("2024-03-11"), 14)
	require.NoError(t, err)

	g := BuildGrid(w, sampleRooms(), nil)

	require.Len(t, g.Rows, 3)
	assert.Equal(t, []string{"K1", "K2", "K3"}, []string{g.Rows[0].RoomName, g.Rows[1].RoomName, g.Rows[2].RoomName})
	assert.Len(t, g.Columns, 14)

	// 09/03 -> 13/03 contra ventana desde 11/03: recortada a la izquierda
	require.NotNil(t, g.Rows[0].Placement)
	assert.Equal(t, 0, g.Rows[0].Placement.StartCol)
	assert.Equal(t, 3, g.Rows[0].Placement.Span)

	// sin estadía
	assert.Nil(t, g.Rows[1].Placement)

	// 01/03 -> 05/03: totalmente antes de la ventana
	assert.Nil(t, g.Rows[2].Placement)
}

func TestBuildGrid_UsesPreviewForDraggedRoom(t *testing.T) {
	w, err := NewWindow(d("2024-03-11"), 7)
	require.NoError(t, err)

	g := BuildGrid(w, sampleRooms(), &Preview{RoomID: "r-1", CheckIn: d("2024-03-09"), CheckOut: d("2024-03-15")})

	row := g.Rows[0]
	assert.True(t, row.Previewing)
	assert.Equal(t, "2024-03-15", row.CheckOut.String())
	require.NotNil(t, row.Placement)
	assert.Equal(t, 5, row.Placement.Span)
	assert.False(t, g.Rows[2].Previewing)
}

func TestResolveWindow(t *testing.T) {
	svc := newTestService(fakeRooms{}, nil)

	// sin start: semana actual (miércoles 13/03 -> lunes 11/03)
	w, err := svc.ResolveWindow(Query{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", w.Start.String())
	assert.Equal(t, 14, w.Days)

	w, err = svc.ResolveWindow(Query{Start: d("2024-03-11"), Days: 7, Nav: NavNext})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", w.Start.String())

	w, err = svc.ResolveWindow(Query{Start: d("2024-03-11"), Days: 7, Nav: NavPrev})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", w.Start.String())

	w, err = svc.ResolveWindow(Query{Start: d("2024-01-01"), Days: 7, Nav: NavToday})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", w.Start.String())

	_, err = svc.ResolveWindow(Query{Start: d("2024-03-11"), Days: 10})
	assert.ErrorIs(t, err, ErrInvalidDayCount)

	_, err = svc.ResolveWindow(Query{Nav: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidNav)
}

func TestGrid_IgnoresPreviewErrors(t *testing.T) {
	svc := newTestService(fakeRooms{list: sampleRooms()}, fakePreview{err: errors.New("redis down")})

	g, err := svc.Grid(context.Background(), Query{Start: d("2024-03-11"), Days: 14})
	require.NoError(t, err)
	assert.False(t, g.Rows[0].Previewing)
}

func TestGrid_PropagatesRoomErrors(t *testing.T) {
	svc := newTestService(fakeRooms{err: errors.New("db down")}, nil)

	_, err := svc.Grid(context.Background(), Query{Start: d("2024-03-11"), Days: 14})
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	w, err := NewWindow(d("2024-03-11"), 7)
	require.NoError(t, err)

	b, err := ExportXLSX(BuildGrid(w, sampleRooms(), nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Room", "Type", "Status", "Mon 03-11"}, rows[0][:4])
	assert.Equal(t, "Sun 03-17", rows[0][9])

	// K1 ocupa las columnas de 11, 12 y 13
	assert.Equal(t, []string{"K1", "standard", "occupied", "pet-1", "pet-1", "pet-1"}, rows[1])
}
