package records

import "context"

type Repository interface {
	AddVaccination(ctx context.Context, v Vaccination) error
	ListVaccinations(ctx context.Context, petID string) ([]Vaccination, error)

	AddEvaluation(ctx context.Context, e Evaluation) error
	ListEvaluations(ctx context.Context, petID string) ([]Evaluation, error)
}
