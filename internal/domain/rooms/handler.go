package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"kennel-scheduler/internal/domain/calendar"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/rooms", func(rr chi.Router) {
		rr.Post("/", createRoomHandler(svc))
		rr.Get("/", listRoomsHandler(svc))

		rr.Route("/{roomID}", func(one chi.Router) {
			one.Get("/", getRoomHandler(svc))

			// Hooks de la grilla (click en habitación / celda vacía)
			one.Post("/select", selectRoomHandler(svc))
			one.Post("/booking-requests", requestBookingHandler(svc))

			// Máquina de estados
			one.Post("/bookings", bookRoomHandler(svc))
			one.Post("/confirm", confirmRoomHandler(svc))
			one.Post("/release", transitionHandler(svc.MarkAvailable))
			one.Post("/maintenance", transitionHandler(svc.StartMaintenance))
			one.Post("/maintenance/end", transitionHandler(svc.EndMaintenance))

			// Edición de la estadía
			one.Patch("/stay", updateStayDatesHandler(svc))
			one.Post("/stay/extend", extendStayHandler(svc))
			one.Post("/stay/shorten", transitionHandler(svc.Shorten))
		})
	})
}

type createRoomRequest struct {
	Name               string   `json:"name"`
	Type               Type     `json:"type" enums:"standard,large,suite,luxury"`
	Capacity           int      `json:"capacity"`
	AllowedPetTypes    []string `json:"allowed_pet_types"`
	Restrictions       []string `json:"restrictions"`
	AllowsShared       bool     `json:"allows_shared"`
	RequiresEvaluation bool     `json:"requires_evaluation"`
}

// bookingRequest sirve para reservas y walk-ins. Fechas YYYY-MM-DD.
type bookingRequest struct {
	PetID       string          `json:"pet_id"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	ClientEmail string          `json:"client_email"`
	CheckIn     calendar.Date   `json:"check_in" swaggertype:"string" example:"2024-06-10"`
	CheckOut    calendar.Date   `json:"check_out" swaggertype:"string" example:"2024-06-13"`
	DailyRate   decimal.Decimal `json:"daily_rate" swaggertype:"string" example:"45.00"`
}

func (b bookingRequest) toInput() BookingInput {
	return BookingInput{
		PetID:       b.PetID,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		ClientEmail: b.ClientEmail,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		DailyRate:   b.DailyRate,
	}
}

type bookingRequestRequest struct {
	Date calendar.Date `json:"date" swaggertype:"string" example:"2024-06-12"`
}

type extendRequest struct {
	Days int `json:"days"`
}

type stayDatesRequest struct {
	CheckIn  calendar.Date `json:"check_in" swaggertype:"string"`
	CheckOut calendar.Date `json:"check_out" swaggertype:"string"`
}

type stayResponse struct {
	ID          string          `json:"id"`
	PetID       string          `json:"pet_id"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone,omitempty"`
	ClientEmail string          `json:"client_email,omitempty"`
	CheckIn     calendar.Date   `json:"check_in" swaggertype:"string"`
	CheckOut    calendar.Date   `json:"check_out" swaggertype:"string"`
	DailyRate   decimal.Decimal `json:"daily_rate" swaggertype:"string"`
	Status      Status          `json:"status"`
	Nights      int             `json:"nights"`
	TotalPrice  decimal.Decimal `json:"total_price" swaggertype:"string"`
}

// roomResponse representa una habitación con su estadía actual.
type roomResponse struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Type               Type          `json:"type"`
	Capacity           int           `json:"capacity"`
	AllowedPetTypes    []string      `json:"allowed_pet_types"`
	Restrictions       []string      `json:"restrictions"`
	AllowsShared       bool          `json:"allows_shared"`
	RequiresEvaluation bool          `json:"requires_evaluation"`
	Status             Status        `json:"status"`
	Stay               *stayResponse `json:"stay,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// createRoomHandler godoc
// @Summary Crear habitación
// @Description Da de alta una habitación (kennel). Empieza en estado `vacant`.
// @Tags rooms
// @Accept json
// @Produce json
// @Param payload body createRoomRequest true "Datos de la habitación"
// @Success 201 {object} roomResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /rooms [post]
func createRoomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		room, err := svc.Create(r.Context(), CreateInput{
			Name:               req.Name,
			Type:               req.Type,
			Capacity:           req.Capacity,
			AllowedPetTypes:    req.AllowedPetTypes,
			Restrictions:       req.Restrictions,
			AllowsShared:       req.AllowsShared,
			RequiresEvaluation: req.RequiresEvaluation,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRoomResponse(room))
	}
}

func listRoomsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]roomResponse, 0, len(items))
		for _, room := range items {
			out = append(out, toRoomResponse(room))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRoomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := svc.GetByID(r.Context(), chi.URLParam(r, "roomID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

func selectRoomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := svc.Select(r.Context(), chi.URLParam(r, "roomID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

func requestBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.RequestBooking(r.Context(), chi.URLParam(r, "roomID"), req.Date); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// bookRoomHandler godoc
// @Summary Reservar habitación
// @Description Transición vacant -> reserved. Requiere mascota, cliente y check_in < check_out.
// @Tags rooms
// @Accept json
// @Produce json
// @Param roomID path string true "ID de la habitación"
// @Param payload body bookingRequest true "Datos de la reserva"
// @Success 201 {object} roomResponse
// @Failure 400 {string} string "invalid json / fechas inválidas"
// @Failure 404 {string} string "room not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /rooms/{roomID}/bookings [post]
func bookRoomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		room, err := svc.Book(r.Context(), chi.URLParam(r, "roomID"), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRoomResponse(room))
	}
}

// confirmRoomHandler acepta body vacío (reserved -> occupied) o un walk-in completo.
func confirmRoomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var walkIn *BookingInput

		var req bookingRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		switch {
		case errors.Is(err, io.EOF):
			// sin body
		case err != nil:
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		default:
			in := req.toInput()
			walkIn = &in
		}

		room, err := svc.Confirm(r.Context(), chi.URLParam(r, "roomID"), walkIn)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

func transitionHandler(fn func(ctx context.Context, id string) (Room, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := fn(r.Context(), chi.URLParam(r, "roomID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

func extendStayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		room, err := svc.Extend(r.Context(), chi.URLParam(r, "roomID"), req.Days)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

// updateStayDatesHandler godoc
// @Summary Cambiar fechas de la estadía
// @Description Reemplaza check_in/check_out de la estadía activa. Es el mismo destino que el commit del drag.
// @Tags rooms
// @Accept json
// @Produce json
// @Param roomID path string true "ID de la habitación"
// @Param payload body stayDatesRequest true "Nuevo rango"
// @Success 200 {object} roomResponse
// @Failure 400 {string} string "fechas inválidas"
// @Failure 404 {string} string "room not found"
// @Failure 409 {string} string "room has no active stay"
// @Router /rooms/{roomID}/stay [patch]
func updateStayDatesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stayDatesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		room, err := svc.UpdateStayDates(r.Context(), chi.URLParam(r, "roomID"), req.CheckIn, req.CheckOut)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
	}
}

func toRoomResponse(room Room) roomResponse {
	out := roomResponse{
		ID:                 room.ID,
		Name:               room.Name,
		Type:               room.Type,
		Capacity:           room.Capacity,
		AllowedPetTypes:    nonNil(room.AllowedPetTypes),
		Restrictions:       nonNil(room.Restrictions),
		AllowsShared:       room.AllowsShared,
		RequiresEvaluation: room.RequiresEvaluation,
		Status:             room.Status,
		CreatedAt:          room.CreatedAt,
		UpdatedAt:          room.UpdatedAt,
	}
	if st := room.Stay; st != nil {
		out.Stay = &stayResponse{
			ID:          st.ID,
			PetID:       st.PetID,
			ClientName:  st.ClientName,
			ClientPhone: st.ClientPhone,
			ClientEmail: st.ClientEmail,
			CheckIn:     st.CheckIn,
			CheckOut:    st.CheckOut,
			DailyRate:   st.DailyRate,
			Status:      st.Status,
			Nights:      room.Nights(),
			TotalPrice:  room.TotalPrice(),
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNoActiveStay), errors.Is(err, ErrMinimumStay),
		errors.Is(err, ErrPetAlreadyBooked):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en handlers de distintos módulos para no crear un paquete de helpers.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
