package eligibility

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kennel-scheduler/internal/domain/pets"
	"kennel-scheduler/internal/domain/rooms"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/eligibility", petEligibilityHandler(svc))
	r.Get("/eligibility", listEligibilityHandler(svc))
}

type eligibilityResponse struct {
	PetID               string    `json:"pet_id"`
	PetName             string    `json:"pet_name"`
	PetType             string    `json:"pet_type"`
	Eligible            bool      `json:"eligible"`
	Reasons             []string  `json:"reasons"`
	EvaluationIndicator Indicator `json:"evaluation_indicator,omitempty"`
}

// petEligibilityHandler godoc
// @Summary Elegibilidad de una mascota
// @Description Recalcula la elegibilidad desde vacunas y evaluaciones. Con room, la habitación decide si exige evaluación.
// @Tags eligibility
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param room query string false "ID de la habitación"
// @Param require_evaluation query bool false "Exigir evaluación aunque la habitación no lo pida"
// @Success 200 {object} eligibilityResponse
// @Failure 400 {string} string "require_evaluation inválido"
// @Failure 404 {string} string "pet not found / room not found"
// @Router /pets/{petID}/eligibility [get]
func petEligibilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseQuery(w, r)
		if !ok {
			return
		}

		pe, err := svc.ForPet(r.Context(), chi.URLParam(r, "petID"), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(pe))
	}
}

func listEligibilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseQuery(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]eligibilityResponse, 0, len(items))
		for _, pe := range items {
			out = append(out, toResponse(pe))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseQuery(w http.ResponseWriter, r *http.Request) (Query, bool) {
	q := Query{RoomID: r.URL.Query().Get("room")}
	if v := r.URL.Query().Get("require_evaluation"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "require_evaluation must be a boolean", http.StatusBadRequest)
			return Query{}, false
		}
		q.RequireEvaluation = b
	}
	return q, true
}

func toResponse(pe PetEligibility) eligibilityResponse {
	reasons := pe.Result.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return eligibilityResponse{
		PetID:               pe.Pet.ID,
		PetName:             pe.Pet.Name,
		PetType:             string(pe.Pet.Type),
		Eligible:            pe.Result.Eligible,
		Reasons:             reasons,
		EvaluationIndicator: pe.Result.EvaluationIndicator,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
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
