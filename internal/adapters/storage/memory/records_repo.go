package memory

import (
	"context"
	"sync"

	"kennel-scheduler/internal/domain/records"
)

type recordsRepo struct {
	mu           sync.RWMutex
	vaccinations map[string][]records.Vaccination
	evaluations  map[string][]records.Evaluation
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		vaccinations: make(map[string][]records.Vaccination),
		evaluations:  make(map[string][]records.Evaluation),
	}
}

func (r *recordsRepo) AddVaccination(ctx context.Context, v records.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vaccinations[v.PetID] = append(r.vaccinations[v.PetID], v)
	return nil
}

func (r *recordsRepo) ListVaccinations(ctx context.Context, petID string) ([]records.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]records.Vaccination{}, r.vaccinations[petID]...), nil
}

func (r *recordsRepo) AddEvaluation(ctx context.Context, e records.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluations[e.PetID] = append(r.evaluations[e.PetID], e)
	return nil
}

// ListEvaluations respeta el orden de carga; la elección de la más reciente la hace eligibility.
func (r *recordsRepo) ListEvaluations(ctx context.Context, petID string) ([]records.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]records.Evaluation{}, r.evaluations[petID]...), nil
}
