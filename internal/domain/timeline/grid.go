package timeline

import (
	"sort"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
)

// Preview es el rango provisional de una sesión de drag activa.
type Preview struct {
	RoomID   string
	CheckIn  calendar.Date
	CheckOut calendar.Date
}

// Row es una fila de la grilla (una habitación).
type Row struct {
	RoomID   string
	RoomName string
	RoomType rooms.Type
	Status   rooms.Status
	Capacity int

	PetID    string
	CheckIn  calendar.Date
	CheckOut calendar.Date

	// nil si la estadía no toca la ventana o no hay estadía.
	Placement *Placement

	// true si las fechas vienen de un drag en curso.
	Previewing bool
}

type Grid struct {
	Window  Window
	Columns []calendar.Date
	Rows    []Row
}

// BuildGrid arma la grilla para la ventana. Si hay preview para una habitación,
// se dibuja el rango provisional en lugar del guardado.
func BuildGrid(w Window, list []rooms.Room, preview *Preview) Grid {
	sorted := append([]rooms.Room(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	g := Grid{
		Window:  w,
		Columns: w.Columns(),
		Rows:    make([]Row, 0, len(sorted)),
	}

	for _, r := range sorted {
		row := Row{
			RoomID:   r.ID,
			RoomName: r.Name,
			RoomType: r.Type,
			Status:   r.Status,
			Capacity: r.Capacity,
		}
		if r.Stay != nil {
			row.PetID = r.Stay.PetID
			row.CheckIn = r.Stay.CheckIn
			row.CheckOut = r.Stay.CheckOut
		}
		if preview != nil && preview.RoomID == r.ID {
			row.CheckIn = preview.CheckIn
			row.CheckOut = preview.CheckOut
			row.Previewing = true
		}
		if p, ok := Position(row.CheckIn, row.CheckOut, w); ok {
			pl := p
			row.Placement = &pl
		}
		g.Rows = append(g.Rows, row)
	}

	return g
}
