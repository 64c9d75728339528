package timeline

import (
	"errors"
	"time"

	"kennel-scheduler/internal/domain/calendar"
)

var (
	ErrInvalidDayCount = errors.New("day count must be 7 or 14")
	ErrInvalidStart    = errors.New("window start is required")
)

// Window es el rango visible de la grilla: Days columnas desde Start.
type Window struct {
	Start calendar.Date `json:"start"`
	Days  int           `json:"days"`
}

func ValidDayCount(days int) bool {
	return days == 7 || days == 14
}

func NewWindow(start calendar.Date, days int) (Window, error) {
	if start.IsZero() {
		return Window{}, ErrInvalidStart
	}
	if !ValidDayCount(days) {
		return Window{}, ErrInvalidDayCount
	}
	return Window{Start: start, Days: days}, nil
}

// Today arranca en el weekStart más reciente en o antes de hoy.
func Today(now time.Time, days int, weekStart time.Weekday) (Window, error) {
	return NewWindow(calendar.Today(now).StartOfWeek(weekStart), days)
}

// End es el último día visible (inclusive).
func (w Window) End() calendar.Date {
	return w.Start.AddDays(w.Days - 1)
}

func (w Window) Previous() Window {
	return Window{Start: w.Start.AddDays(-w.Days), Days: w.Days}
}

func (w Window) Next() Window {
	return Window{Start: w.Start.AddDays(w.Days), Days: w.Days}
}

// Contains indica si d cae dentro de la ventana.
func (w Window) Contains(d calendar.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End())
}

func (w Window) Columns() []calendar.Date {
	out := make([]calendar.Date, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		out = append(out, w.Start.AddDays(i))
	}
	return out
}

// Placement ubica una estadía dentro de la grilla.
// Left y Width son fracciones del ancho total (0..1).
type Placement struct {
	StartCol int     `json:"start_col"`
	Span     int     `json:"span"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
}

// Position calcula la columna inicial y el span de [checkIn, checkOut] en la ventana.
// Devuelve false si alguna fecha falta o si el rango no toca la ventana.
// La columna final es la del check-out, recortada al último día visible.
func Position(checkIn, checkOut calendar.Date, w Window) (Placement, bool) {
	if checkIn.IsZero() || checkOut.IsZero() || w.Days <= 0 {
		return Placement{}, false
	}
	if checkOut.Before(w.Start) || checkIn.After(w.End()) {
		return Placement{}, false
	}

	startCol := calendar.DaysBetween(w.Start, checkIn)
	if startCol < 0 {
		startCol = 0
	}
	endCol := calendar.DaysBetween(w.Start, checkOut)
	if endCol > w.Days-1 {
		endCol = w.Days - 1
	}

	span := endCol - startCol + 1
	if span < 1 {
		// checkOut < checkIn dentro de la ventana: no hay bloque que dibujar
		return Placement{}, false
	}

	days := float64(w.Days)
	return Placement{
		StartCol: startCol,
		Span:     span,
		Left:     float64(startCol) / days,
		Width:    float64(span) / days,
	}, true
}
