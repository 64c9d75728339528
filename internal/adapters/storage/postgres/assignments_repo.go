package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"kennel-scheduler/internal/domain/assignments"
)

// AssignmentsRepo persiste el tablero como filas (room_id, pet_id, position).
// pet_id es PK: la base también garantiza que una mascota esté en una sola habitación.
type AssignmentsRepo struct {
	db *sql.DB
}

func NewAssignmentsRepo(db *sql.DB) *AssignmentsRepo {
	return &AssignmentsRepo{db: db}
}

func (r *AssignmentsRepo) Load(ctx context.Context) (assignments.Board, error) {
	query, args, err := psql.Select("room_id", "pet_id").
		From("room_assignments").
		OrderBy("room_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("assignments: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	b := assignments.Board{}
	for rows.Next() {
		var roomID, petID string
		if err := rows.Scan(&roomID, &petID); err != nil {
			return nil, err
		}
		b[roomID] = append(b[roomID], petID)
	}
	return b, rows.Err()
}

// Save reemplaza el tablero completo dentro de una transacción.
func (r *AssignmentsRepo) Save(ctx context.Context, b assignments.Board) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM room_assignments"); err != nil {
		return fmt.Errorf("assignments: clear: %w", err)
	}

	roomIDs := make([]string, 0, len(b))
	for roomID := range b {
		roomIDs = append(roomIDs, roomID)
	}
	sort.Strings(roomIDs)

	ins := psql.Insert("room_assignments").Columns("room_id", "pet_id", "position")
	n := 0
	for _, roomID := range roomIDs {
		for pos, petID := range b[roomID] {
			ins = ins.Values(roomID, petID, pos)
			n++
		}
	}

	if n > 0 {
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("assignments: build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("assignments: insert: %w", err)
		}
	}

	return tx.Commit()
}

func (r *AssignmentsRepo) AddOverride(ctx context.Context, rec assignments.OverrideRecord) error {
	query, args, err := psql.Insert("assignment_overrides").
		Columns("id", "pet_id", "room_id", "staff_id", "reason", "bypassed", "created_at").
		Values(rec.ID, rec.PetID, rec.RoomID, rec.StaffID, rec.Reason, joinBypassed(rec.Bypassed), rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("assignments: build insert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *AssignmentsRepo) ListOverrides(ctx context.Context) ([]assignments.OverrideRecord, error) {
	query, args, err := psql.Select("id", "pet_id", "room_id", "staff_id", "reason", "bypassed", "created_at").
		From("assignment_overrides").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("assignments: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assignments.OverrideRecord, 0)
	for rows.Next() {
		var rec assignments.OverrideRecord
		var bypassed string
		if err := rows.Scan(&rec.ID, &rec.PetID, &rec.RoomID, &rec.StaffID, &rec.Reason, &bypassed, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Bypassed = splitBypassed(bypassed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// bypassed se guarda como "capacity,pet_type".
func joinBypassed(vs []assignments.Violation) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ",")
}

func splitBypassed(s string) []assignments.Violation {
	out := make([]assignments.Violation, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, assignments.Violation(p))
		}
	}
	return out
}
