package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kennel-scheduler/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/vaccinations", func(vr chi.Router) {
		vr.Post("/", addVaccinationHandler(svc, petsSvc))
		vr.Get("/", listVaccinationsHandler(svc, petsSvc))
	})
	r.Route("/pets/{petID}/evaluations", func(er chi.Router) {
		er.Post("/", addEvaluationHandler(svc, petsSvc))
		er.Get("/", listEvaluationsHandler(svc, petsSvc))
	})
}

type addVaccinationRequest struct {
	Type string `json:"type" example:"rabies"`
}

type vaccinationResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Type       string    `json:"type"`
	RecordedAt time.Time `json:"recorded_at"`
}

type addEvaluationRequest struct {
	EvaluatedAt string `json:"evaluated_at" example:"2024-03-01T10:00:00Z"`
	Status      string `json:"status" enums:"passed,failed,pending"`
	IsExpired   bool   `json:"is_expired"`
}

type evaluationResponse struct {
	ID          string           `json:"id"`
	PetID       string           `json:"pet_id"`
	EvaluatedAt string           `json:"evaluated_at"`
	Status      EvaluationStatus `json:"status"`
	IsExpired   bool             `json:"is_expired"`
	RecordedAt  time.Time        `json:"recorded_at"`
}

// addVaccinationHandler godoc
// @Summary Registrar vacuna
// @Description Agrega un documento de vacunación. Basta con uno para cumplir el requisito de vacunas.
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body addVaccinationRequest true "Tipo de vacuna"
// @Success 201 {object} vaccinationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations [post]
func addVaccinationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req addVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.AddVaccination(r.Context(), petID, req.Type)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

func listVaccinationsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListVaccinations(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addEvaluationHandler godoc
// @Summary Registrar evaluación de comportamiento
// @Description evaluated_at se guarda como texto; si no se puede interpretar cuenta como la más antigua.
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body addEvaluationRequest true "Resultado de la evaluación"
// @Success 201 {object} evaluationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/evaluations [post]
func addEvaluationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req addEvaluationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.AddEvaluation(r.Context(), petID, EvaluationInput{
			EvaluatedAt: req.EvaluatedAt,
			Status:      req.Status,
			IsExpired:   req.IsExpired,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEvaluationResponse(e))
	}
}

func listEvaluationsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListEvaluations(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]evaluationResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEvaluationResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{ID: v.ID, PetID: v.PetID, Type: v.Type, RecordedAt: v.RecordedAt}
}

func toEvaluationResponse(e Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:          e.ID,
		PetID:       e.PetID,
		EvaluatedAt: e.EvaluatedAt,
		Status:      e.Status,
		IsExpired:   e.IsExpired,
		RecordedAt:  e.RecordedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
