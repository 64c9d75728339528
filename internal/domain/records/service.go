package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) AddVaccination(ctx context.Context, petID, typ string) (Vaccination, error) {
	petID = strings.TrimSpace(petID)
	typ = strings.ToLower(strings.TrimSpace(typ))
	if petID == "" || typ == "" {
		return Vaccination{}, ErrInvalidInput
	}

	v := Vaccination{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       typ,
		RecordedAt: s.now(),
	}
	if err := s.repo.AddVaccination(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

type EvaluationInput struct {
	EvaluatedAt string
	Status      string
	IsExpired   bool
}

// AddEvaluation no valida el formato de EvaluatedAt: la elegibilidad trata
// los timestamps ilegibles como los más antiguos.
func (s *Service) AddEvaluation(ctx context.Context, petID string, in EvaluationInput) (Evaluation, error) {
	petID = strings.TrimSpace(petID)
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if petID == "" || status == "" {
		return Evaluation{}, ErrInvalidInput
	}

	e := Evaluation{
		ID:          uuid.NewString(),
		PetID:       petID,
		EvaluatedAt: strings.TrimSpace(in.EvaluatedAt),
		Status:      EvaluationStatus(status),
		IsExpired:   in.IsExpired,
		RecordedAt:  s.now(),
	}
	if err := s.repo.AddEvaluation(ctx, e); err != nil {
		return Evaluation{}, err
	}
	return e, nil
}

func (s *Service) ListVaccinations(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListVaccinations(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListEvaluations(ctx context.Context, petID string) ([]Evaluation, error) {
	return s.repo.ListEvaluations(ctx, strings.TrimSpace(petID))
}
