package drag

import (
	"math"
	"time"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/timeline"
)

// Edge es el borde de la estadía que se arrastra.
// @Enum start, end
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

func (e Edge) Valid() bool {
	return e == EdgeStart || e == EdgeEnd
}

// Geometry es la geometría de la grilla capturada al iniciar el drag.
type Geometry struct {
	GridOffsetX float64 `json:"grid_offset_x"`
	CellWidth   float64 `json:"cell_width"`
}

// Session es el estado transitorio entre pointer-down y pointer-up/leave.
type Session struct {
	RoomID          string          `json:"room_id"`
	Edge            Edge            `json:"edge"`
	InitialPointerX float64         `json:"initial_pointer_x"`
	PreviewCheckIn  calendar.Date   `json:"preview_check_in"`
	PreviewCheckOut calendar.Date   `json:"preview_check_out"`
	Window          timeline.Window `json:"window"`
	Geometry        Geometry        `json:"geometry"`
	StartedAt       time.Time       `json:"started_at"`
}

// DateIndex convierte la posición horizontal del puntero en un índice de columna,
// floor((pointerX - gridOffsetX) / cellWidth) acotado a [0, dayCount-1].
func DateIndex(pointerX, gridOffsetX, cellWidth float64, dayCount int) int {
	if dayCount <= 0 || cellWidth <= 0 || math.IsNaN(pointerX) || math.IsNaN(gridOffsetX) {
		return 0
	}
	raw := math.Floor((pointerX - gridOffsetX) / cellWidth)
	if raw < 0 {
		return 0
	}
	if raw > float64(dayCount-1) {
		return dayCount - 1
	}
	return int(raw)
}

// Candidate es la fecha bajo el puntero.
func (s Session) Candidate(pointerX float64) calendar.Date {
	idx := DateIndex(pointerX, s.Geometry.GridOffsetX, s.Geometry.CellWidth, s.Window.Days)
	return s.Window.Start.AddDays(idx)
}

// Move aplica la fecha candidata al borde activo. Si invertiría el rango
// devuelve la sesión sin cambios y false.
func (s Session) Move(pointerX float64) (Session, bool) {
	c := s.Candidate(pointerX)

	switch s.Edge {
	case EdgeStart:
		if !c.Before(s.PreviewCheckOut) {
			return s, false
		}
		s.PreviewCheckIn = c
	case EdgeEnd:
		if !c.After(s.PreviewCheckIn) {
			return s, false
		}
		s.PreviewCheckOut = c
	default:
		return s, false
	}
	return s, true
}

// Preview expone el rango provisional para la grilla.
func (s Session) Preview() timeline.Preview {
	return timeline.Preview{
		RoomID:   s.RoomID,
		CheckIn:  s.PreviewCheckIn,
		CheckOut: s.PreviewCheckOut,
	}
}
