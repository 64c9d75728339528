package drag

import (
	"math"
	"testing"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/timeline"
)

func d(s string) calendar.Date { return calendar.MustParse(s) }

func TestDateIndex(t *testing.T) {
	cases := []struct {
		name     string
		pointerX float64
		offset   float64
		cell     float64
		days     int
		want     int
	}{
		{"first cell", 10, 0, 100, 7, 0},
		{"exact boundary", 200, 0, 100, 7, 2},
		{"floor", 299.9, 0, 100, 7, 2},
		{"offset applied", 250, 100, 50, 14, 3},
		{"left of grid clamps to 0", -40, 0, 100, 7, 0},
		{"right of grid clamps to last", 5000, 0, 100, 7, 6},
		{"14 day last", 1399, 0, 100, 14, 13},
		{"zero width", 300, 0, 0, 7, 0},
		{"no days", 300, 0, 100, 0, 0},
		{"NaN pointer", math.NaN(), 0, 100, 7, 0},
		{"infinite pointer", math.Inf(1), 0, 100, 7, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DateIndex(tc.pointerX, tc.offset, tc.cell, tc.days); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func testSession(edge Edge, in, out string) Session {
	return Session{
		RoomID:          "room-1",
		Edge:            edge,
		PreviewCheckIn:  d(in),
		PreviewCheckOut: d(out),
		Window:          timeline.Window{Start: d("2024-03-11"), Days: 7},
		Geometry:        Geometry{GridOffsetX: 0, CellWidth: 100},
	}
}

func TestMove_EndEdge(t *testing.T) {
	s := testSession(EdgeEnd, "2024-03-10", "2024-03-13")

	// columna 4 = 15/03
	next, ok := s.Move(450)
	if !ok {
		t.Fatalf("expected move accepted")
	}
	if next.PreviewCheckOut.String() != "2024-03-15" {
		t.Fatalf("expected preview checkout 2024-03-15, got %s", next.PreviewCheckOut)
	}
	if next.PreviewCheckIn.String() != "2024-03-10" {
		t.Fatalf("start edge must not move")
	}
}

func TestMove_EndEdgeCannotCrossCheckIn(t *testing.T) {
	s := testSession(EdgeEnd, "2024-03-12", "2024-03-14")

	// columna 1 = 12/03 == checkIn -> rechazado
	next, ok := s.Move(150)
	if ok {
		t.Fatalf("expected move rejected")
	}
	if next != s {
		t.Fatalf("rejected move must leave session unchanged")
	}

	// columna 0 = 11/03 < checkIn -> rechazado
	if _, ok := s.Move(0); ok {
		t.Fatalf("expected move rejected")
	}
}

func TestMove_StartEdge(t *testing.T) {
	s := testSession(EdgeStart, "2024-03-12", "2024-03-14")

	next, ok := s.Move(50)
	if !ok || next.PreviewCheckIn.String() != "2024-03-11" {
		t.Fatalf("expected checkin 2024-03-11, got %s ok=%v", next.PreviewCheckIn, ok)
	}

	// 14/03 == checkOut -> rechazado
	if _, ok := s.Move(350); ok {
		t.Fatalf("expected move to checkout rejected")
	}
}

func TestMove_RangeNeverInverts(t *testing.T) {
	for _, edge := range []Edge{EdgeStart, EdgeEnd} {
		s := testSession(edge, "2024-03-12", "2024-03-14")
		for x := -200.0; x < 1000; x += 37 {
			s, _ = s.Move(x)
			if !s.PreviewCheckIn.Before(s.PreviewCheckOut) {
				t.Fatalf("edge=%s x=%v: inverted range %s..%s", edge, x, s.PreviewCheckIn, s.PreviewCheckOut)
			}
		}
	}
}

func TestMove_UnknownEdgeIsNoop(t *testing.T) {
	s := testSession(Edge("middle"), "2024-03-12", "2024-03-14")
	if _, ok := s.Move(450); ok {
		t.Fatalf("expected unknown edge to be rejected")
	}
}
