package timeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/timeline", getTimelineHandler(svc))
	r.Get("/timeline/export.xlsx", exportTimelineHandler(svc))
}

type windowResponse struct {
	Start   calendar.Date   `json:"start" swaggertype:"string"`
	End     calendar.Date   `json:"end" swaggertype:"string"`
	Days    int             `json:"days"`
	Prev    calendar.Date   `json:"prev_start" swaggertype:"string"`
	Next    calendar.Date   `json:"next_start" swaggertype:"string"`
	Columns []calendar.Date `json:"columns" swaggertype:"array,string"`
}

type rowResponse struct {
	RoomID     string        `json:"room_id"`
	RoomName   string        `json:"room_name"`
	RoomType   rooms.Type    `json:"room_type"`
	Status     rooms.Status  `json:"status"`
	Capacity   int           `json:"capacity"`
	PetID      string        `json:"pet_id,omitempty"`
	CheckIn    calendar.Date `json:"check_in" swaggertype:"string"`
	CheckOut   calendar.Date `json:"check_out" swaggertype:"string"`
	Placement  *Placement    `json:"placement"`
	Previewing bool          `json:"previewing"`
}

// timelineResponse es la grilla lista para dibujar.
type timelineResponse struct {
	Window windowResponse `json:"window"`
	Rows   []rowResponse  `json:"rows"`
}

// getTimelineHandler godoc
// @Summary Grilla de ocupación
// @Description Devuelve la ventana visible (7 o 14 días) y la ubicación de cada estadía. Si hay un drag en curso, esa habitación muestra el preview.
// @Tags timeline
// @Produce json
// @Param start query string false "Inicio de la ventana (YYYY-MM-DD). Por defecto, inicio de la semana actual"
// @Param days query int false "7 o 14"
// @Param nav query string false "prev | next | today"
// @Success 200 {object} timelineResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /timeline [get]
func getTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		g, err := svc.Grid(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTimelineResponse(g))
	}
}

func exportTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		g, err := svc.Grid(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}

		b, err := ExportXLSX(g)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		name := "occupancy_" + g.Window.Start.String() + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

func parseQuery(r *http.Request) (Query, error) {
	var q Query

	if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
		d, err := calendar.Parse(v)
		if err != nil {
			return Query{}, errors.New("start must be YYYY-MM-DD")
		}
		q.Start = d
	}
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Query{}, ErrInvalidDayCount
		}
		q.Days = n
	}
	q.Nav = Nav(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("nav"))))
	return q, nil
}

func toTimelineResponse(g Grid) timelineResponse {
	out := timelineResponse{
		Window: windowResponse{
			Start:   g.Window.Start,
			End:     g.Window.End(),
			Days:    g.Window.Days,
			Prev:    g.Window.Previous().Start,
			Next:    g.Window.Next().Start,
			Columns: g.Columns,
		},
		Rows: make([]rowResponse, 0, len(g.Rows)),
	}
	for _, row := range g.Rows {
		out.Rows = append(out.Rows, rowResponse{
			RoomID:     row.RoomID,
			RoomName:   row.RoomName,
			RoomType:   row.RoomType,
			Status:     row.Status,
			Capacity:   row.Capacity,
			PetID:      row.PetID,
			CheckIn:    row.CheckIn,
			CheckOut:   row.CheckOut,
			Placement:  row.Placement,
			Previewing: row.Previewing,
		})
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDayCount), errors.Is(err, ErrInvalidStart), errors.Is(err, ErrInvalidNav):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
