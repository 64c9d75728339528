package eligibility

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"kennel-scheduler/internal/domain/pets"
	"kennel-scheduler/internal/domain/records"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/platform/logger"
)

// RecordsSource es el dueño externo de vacunas y evaluaciones.
// Lo implementan records.Service (local) y el cliente remoto de records.
type RecordsSource interface {
	ListVaccinations(ctx context.Context, petID string) ([]records.Vaccination, error)
	ListEvaluations(ctx context.Context, petID string) ([]records.Evaluation, error)
}

type PetSource interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	List(ctx context.Context) ([]pets.Pet, error)
}

type RoomSource interface {
	GetByID(ctx context.Context, id string) (rooms.Room, error)
}

type Service struct {
	records RecordsSource
	pets    PetSource
	rooms   RoomSource
	log     logger.Logger
}

func NewService(rs RecordsSource, ps PetSource, roomSrc RoomSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		records: rs,
		pets:    ps,
		rooms:   roomSrc,
		log:     log.With(map[string]any{"module": "eligibility"}),
	}
}

// Query: si viene RoomID, la habitación decide si hace falta evaluación.
type Query struct {
	RoomID            string
	RequireEvaluation bool
}

type PetEligibility struct {
	Pet    pets.Pet
	Result Result
}

func (s *Service) requireEvaluation(ctx context.Context, q Query) (bool, error) {
	if strings.TrimSpace(q.RoomID) == "" {
		return q.RequireEvaluation, nil
	}
	room, err := s.rooms.GetByID(ctx, strings.TrimSpace(q.RoomID))
	if err != nil {
		return false, err
	}
	return room.RequiresEvaluation || q.RequireEvaluation, nil
}

// ForPet recalcula la elegibilidad con los documentos actuales. Nunca se cachea.
func (s *Service) ForPet(ctx context.Context, petID string, q Query) (PetEligibility, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return PetEligibility{}, err
	}
	required, err := s.requireEvaluation(ctx, q)
	if err != nil {
		return PetEligibility{}, err
	}
	return s.evaluate(ctx, p, required)
}

// List devuelve la lista de elegibilidad del tablero de asignación, ordenada por nombre.
func (s *Service) List(ctx context.Context, q Query) ([]PetEligibility, error) {
	required, err := s.requireEvaluation(ctx, q)
	if err != nil {
		return nil, err
	}

	all, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	out := make([]PetEligibility, 0, len(all))
	for _, p := range all {
		pe, err := s.evaluate(ctx, p, required)
		if err != nil {
			return nil, err
		}
		out = append(out, pe)
	}
	return out, nil
}

func (s *Service) evaluate(ctx context.Context, p pets.Pet, required bool) (PetEligibility, error) {
	vacc, err := s.records.ListVaccinations(ctx, p.ID)
	if err != nil {
		return PetEligibility{}, fmt.Errorf("vaccinations for %s: %w", p.ID, err)
	}

	var evals []records.Evaluation
	if required {
		evals, err = s.records.ListEvaluations(ctx, p.ID)
		if err != nil {
			return PetEligibility{}, fmt.Errorf("evaluations for %s: %w", p.ID, err)
		}
	}

	res := Evaluate(Input{
		Vaccinations:      vacc,
		Evaluations:       evals,
		RequireEvaluation: required,
	})
	if !res.Eligible {
		s.log.Debug("pet not eligible", map[string]any{
			"pet_id":    p.ID,
			"reasons":   strings.Join(res.Reasons, "; "),
			"indicator": string(res.EvaluationIndicator),
		})
	}
	return PetEligibility{Pet: p, Result: res}, nil
}
