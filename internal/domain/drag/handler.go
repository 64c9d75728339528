package drag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/domain/timeline"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/drag", func(dr chi.Router) {
		dr.Get("/", currentSessionHandler(svc))
		dr.Post("/start", startDragHandler(svc))
		dr.Post("/move", moveDragHandler(svc))
		dr.Post("/end", finishDragHandler(svc.Commit))
		dr.Post("/leave", finishDragHandler(svc.Leave))
	})
}

type startDragRequest struct {
	RoomID      string        `json:"room_id"`
	Edge        Edge          `json:"edge" enums:"start,end"`
	PointerX    float64       `json:"pointer_x"`
	WindowStart calendar.Date `json:"window_start" swaggertype:"string" example:"2024-03-11"`
	Days        int           `json:"days"`
	GridOffsetX float64       `json:"grid_offset_x"`
	CellWidth   float64       `json:"cell_width"`
}

type moveDragRequest struct {
	PointerX float64 `json:"pointer_x"`
}

type sessionResponse struct {
	RoomID          string        `json:"room_id"`
	Edge            Edge          `json:"edge"`
	PreviewCheckIn  calendar.Date `json:"preview_check_in" swaggertype:"string"`
	PreviewCheckOut calendar.Date `json:"preview_check_out" swaggertype:"string"`
	WindowStart     calendar.Date `json:"window_start" swaggertype:"string"`
	Days            int           `json:"days"`
}

type moveResponse struct {
	Accepted bool            `json:"accepted"`
	Session  sessionResponse `json:"session"`
}

type commitResponse struct {
	RoomID   string        `json:"room_id"`
	Status   rooms.Status  `json:"status"`
	CheckIn  calendar.Date `json:"check_in" swaggertype:"string"`
	CheckOut calendar.Date `json:"check_out" swaggertype:"string"`
	Nights   int           `json:"nights"`
}

func currentSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok, err := svc.Current(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// startDragHandler godoc
// @Summary Iniciar drag de una estadía
// @Description Pointer-down sobre el borde (start|end) de una estadía con fechas. Sólo puede haber una sesión activa.
// @Tags drag
// @Accept json
// @Produce json
// @Param payload body startDragRequest true "Habitación, borde y geometría de la grilla"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "edge / ventana / geometría inválidos"
// @Failure 404 {string} string "room not found"
// @Failure 409 {string} string "sesión activa o estadía sin fechas"
// @Router /drag/start [post]
func startDragHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startDragRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Start(r.Context(), StartInput{
			RoomID:   req.RoomID,
			Edge:     req.Edge,
			PointerX: req.PointerX,
			Window:   timeline.Window{Start: req.WindowStart, Days: req.Days},
			Geometry: Geometry{GridOffsetX: req.GridOffsetX, CellWidth: req.CellWidth},
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

func moveDragHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveDragRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, accepted, err := svc.Move(r.Context(), req.PointerX)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, moveResponse{Accepted: accepted, Session: toSessionResponse(sess)})
	}
}

func finishDragHandler(fn func(ctx context.Context) (rooms.Room, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := fn(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := commitResponse{RoomID: room.ID, Status: room.Status, Nights: room.Nights()}
		if room.Stay != nil {
			out.CheckIn = room.Stay.CheckIn
			out.CheckOut = room.Stay.CheckOut
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toSessionResponse(s Session) sessionResponse {
	return sessionResponse{
		RoomID:          s.RoomID,
		Edge:            s.Edge,
		PreviewCheckIn:  s.PreviewCheckIn,
		PreviewCheckOut: s.PreviewCheckOut,
		WindowStart:     s.Window.Start,
		Days:            s.Window.Days,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEdge), errors.Is(err, ErrInvalidGeometry),
		errors.Is(err, timeline.ErrInvalidDayCount), errors.Is(err, timeline.ErrInvalidStart):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, rooms.ErrNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, ErrNoSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrSessionActive), errors.Is(err, ErrNoStayDates),
		errors.Is(err, rooms.ErrNoActiveStay), errors.Is(err, rooms.ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
