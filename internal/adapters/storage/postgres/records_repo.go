package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"kennel-scheduler/internal/domain/records"

	"github.com/Masterminds/squirrel"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) AddVaccination(ctx context.Context, v records.Vaccination) error {
	query, args, err := psql.Insert("pet_vaccinations").
		Columns("id", "pet_id", "type", "recorded_at").
		Values(v.ID, v.PetID, v.Type, v.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("records: build insert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *RecordsRepo) ListVaccinations(ctx context.Context, petID string) ([]records.Vaccination, error) {
	query, args, err := psql.Select("id", "pet_id", "type", "recorded_at").
		From("pet_vaccinations").
		Where(squirrel.Eq{"pet_id": petID}).
		OrderBy("recorded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("records: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Vaccination, 0)
	for rows.Next() {
		var v records.Vaccination
		if err := rows.Scan(&v.ID, &v.PetID, &v.Type, &v.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// evaluated_at es TEXT a propósito: se guarda lo que mandó el evaluador.
func (r *RecordsRepo) AddEvaluation(ctx context.Context, e records.Evaluation) error {
	query, args, err := psql.Insert("pet_evaluations").
		Columns("id", "pet_id", "evaluated_at", "status", "is_expired", "recorded_at").
		Values(e.ID, e.PetID, e.EvaluatedAt, string(e.Status), e.IsExpired, e.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("records: build insert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *RecordsRepo) ListEvaluations(ctx context.Context, petID string) ([]records.Evaluation, error) {
	query, args, err := psql.Select("id", "pet_id", "evaluated_at", "status", "is_expired", "recorded_at").
		From("pet_evaluations").
		Where(squirrel.Eq{"pet_id": petID}).
		OrderBy("recorded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("records: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Evaluation, 0)
	for rows.Next() {
		var e records.Evaluation
		var status string
		if err := rows.Scan(&e.ID, &e.PetID, &e.EvaluatedAt, &status, &e.IsExpired, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Status = records.EvaluationStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
