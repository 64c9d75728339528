package assignments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kennel-scheduler/internal/domain/pets"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/assignments", func(ar chi.Router) {
		ar.Get("/", boardHandler(svc))
		ar.Post("/", assignHandler(svc))
		ar.Get("/check", checkHandler(svc))
		ar.Get("/overrides", overridesHandler(svc))
		ar.Delete("/{petID}", unassignHandler(svc))
	})
}

type assignRequest struct {
	PetID    string `json:"pet_id"`
	RoomID   string `json:"room_id"`
	Override bool   `json:"override"`
	Reason   string `json:"reason"`
}

type roomAssignmentResponse struct {
	RoomID       string   `json:"room_id"`
	RoomName     string   `json:"room_name"`
	Capacity     int      `json:"capacity"`
	AllowedTypes []string `json:"allowed_pet_types"`
	PetIDs       []string `json:"pet_ids"`
}

type overrideResponse struct {
	ID        string      `json:"id"`
	PetID     string      `json:"pet_id"`
	RoomID    string      `json:"room_id"`
	StaffID   string      `json:"staff_id"`
	Reason    string      `json:"reason,omitempty"`
	Bypassed  []Violation `json:"bypassed"`
	CreatedAt time.Time   `json:"created_at"`
}

type assignResponse struct {
	Accepted   bool                `json:"accepted"`
	Violations []Violation         `json:"violations"`
	Board      map[string][]string `json:"board"`
	Override   *overrideResponse   `json:"override,omitempty"`
}

type checkResponse struct {
	PetID      string      `json:"pet_id"`
	RoomID     string      `json:"room_id"`
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations"`
	Assigned   int         `json:"assigned"`
	Capacity   int         `json:"capacity"`
}

func boardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Snapshot(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]roomAssignmentResponse, 0, len(items))
		for _, it := range items {
			out = append(out, roomAssignmentResponse{
				RoomID:       it.Room.ID,
				RoomName:     it.Room.Name,
				Capacity:     it.Room.Capacity,
				AllowedTypes: it.Room.AllowedPetTypes,
				PetIDs:       it.PetIDs,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// assignHandler godoc
// @Summary Asignar mascota a habitación
// @Description Mueve la mascota a la habitación (la quita de la anterior). Sin override exige elegibilidad, tipo permitido y cupo. Con override se audita y requiere X-Staff-ID.
// @Tags assignments
// @Accept json
// @Produce json
// @Param X-Staff-ID header string false "Staff que opera (obligatorio con override)"
// @Param payload body assignRequest true "Mascota, habitación y override"
// @Success 200 {object} assignResponse
// @Failure 400 {string} string "invalid json / invalid input / override sin staff"
// @Failure 404 {string} string "pet not found / room not found"
// @Failure 409 {object} assignResponse "asignación rechazada"
// @Router /assignments [post]
func assignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var staffID string
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			staffID = claims.StaffID
		}

		res, err := svc.Assign(r.Context(), AssignInput{
			PetID:    req.PetID,
			RoomID:   req.RoomID,
			Override: req.Override,
			StaffID:  staffID,
			Reason:   req.Reason,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := assignResponse{
			Accepted:   res.Accepted,
			Violations: nonNil(res.Violations),
			Board:      res.Board,
		}
		if out.Board == nil {
			out.Board = map[string][]string{}
		}
		if res.Override != nil {
			o := toOverrideResponse(*res.Override)
			out.Override = &o
		}

		status := http.StatusOK
		if !res.Accepted {
			status = http.StatusConflict
		}
		writeJSON(w, status, out)
	}
}

func unassignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, removed, err := svc.Unassign(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !removed {
			http.Error(w, "pet not assigned", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func checkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		override := false
		if v := strings.TrimSpace(q.Get("override")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "override must be a boolean", http.StatusBadRequest)
				return
			}
			override = b
		}

		d, err := svc.Check(r.Context(), q.Get("pet"), q.Get("room"), override)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, checkResponse{
			PetID:      d.Candidate.PetID,
			RoomID:     d.Room.ID,
			Allowed:    d.Allowed,
			Violations: nonNil(d.Violations),
			Assigned:   len(d.Assigned),
			Capacity:   d.Room.Capacity,
		})
	}
}

func overridesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Overrides(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]overrideResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toOverrideResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toOverrideResponse(rec OverrideRecord) overrideResponse {
	return overrideResponse{
		ID:        rec.ID,
		PetID:     rec.PetID,
		RoomID:    rec.RoomID,
		StaffID:   rec.StaffID,
		Reason:    rec.Reason,
		Bypassed:  nonNil(rec.Bypassed),
		CreatedAt: rec.CreatedAt,
	}
}

func nonNil(vs []Violation) []Violation {
	if vs == nil {
		return []Violation{}
	}
	return vs
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOverrideNeedsStaff):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, rooms.ErrNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
