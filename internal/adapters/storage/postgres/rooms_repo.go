package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// RoomsRepo guarda la habitación y su estadía actual en la misma fila.
// Las listas (tipos permitidos, restricciones) van como JSONB.
type RoomsRepo struct {
	db *sql.DB
}

func NewRoomsRepo(db *sql.DB) *RoomsRepo {
	return &RoomsRepo{db: db}
}

var roomColumns = []string{
	"id", "name", "type", "capacity",
	"allowed_pet_types", "restrictions",
	"allows_shared", "requires_evaluation", "status",
	"stay_id", "stay_pet_id", "stay_status",
	"client_name", "client_phone", "client_email",
	"check_in", "check_out", "daily_rate",
	"created_at", "updated_at",
}

// roomRow aplana Room para insert/update.
type roomRow struct {
	allowed      []byte
	restrictions []byte

	stayID, stayPetID, stayStatus sql.NullString
	clientName, clientPhone       sql.NullString
	clientEmail                   sql.NullString
	checkIn, checkOut             calendar.Date
	dailyRate                     decimal.NullDecimal
}

func toRoomRow(r rooms.Room) (roomRow, error) {
	var row roomRow
	var err error

	if row.allowed, err = json.Marshal(nonNilStrings(r.AllowedPetTypes)); err != nil {
		return row, err
	}
	if row.restrictions, err = json.Marshal(nonNilStrings(r.Restrictions)); err != nil {
		return row, err
	}

	if st := r.Stay; st != nil {
		row.stayID = sql.NullString{String: st.ID, Valid: true}
		row.stayPetID = sql.NullString{String: st.PetID, Valid: true}
		row.stayStatus = sql.NullString{String: string(st.Status), Valid: true}
		row.clientName = sql.NullString{String: st.ClientName, Valid: true}
		row.clientPhone = sql.NullString{String: st.ClientPhone, Valid: true}
		row.clientEmail = sql.NullString{String: st.ClientEmail, Valid: true}
		row.checkIn = st.CheckIn
		row.checkOut = st.CheckOut
		row.dailyRate = decimal.NullDecimal{Decimal: st.DailyRate, Valid: true}
	}
	return row, nil
}

func (r *RoomsRepo) Create(ctx context.Context, room rooms.Room) error {
	row, err := toRoomRow(room)
	if err != nil {
		return fmt.Errorf("rooms: encode: %w", err)
	}

	query, args, err := psql.Insert("rooms").
		Columns(roomColumns...).
		Values(
			room.ID, room.Name, string(room.Type), room.Capacity,
			row.allowed, row.restrictions,
			room.AllowsShared, room.RequiresEvaluation, string(room.Status),
			row.stayID, row.stayPetID, row.stayStatus,
			row.clientName, row.clientPhone, row.clientEmail,
			row.checkIn, row.checkOut, row.dailyRate,
			room.CreatedAt, room.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("rooms: build insert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *RoomsRepo) Update(ctx context.Context, room rooms.Room) error {
	row, err := toRoomRow(room)
	if err != nil {
		return fmt.Errorf("rooms: encode: %w", err)
	}

	query, args, err := psql.Update("rooms").
		SetMap(map[string]any{
			"name":                room.Name,
			"type":                string(room.Type),
			"capacity":            room.Capacity,
			"allowed_pet_types":   row.allowed,
			"restrictions":        row.restrictions,
			"allows_shared":       room.AllowsShared,
			"requires_evaluation": room.RequiresEvaluation,
			"status":              string(room.Status),
			"stay_id":             row.stayID,
			"stay_pet_id":         row.stayPetID,
			"stay_status":         row.stayStatus,
			"client_name":         row.clientName,
			"client_phone":        row.clientPhone,
			"client_email":        row.clientEmail,
			"check_in":            row.checkIn,
			"check_out":           row.checkOut,
			"daily_rate":          row.dailyRate,
			"updated_at":          room.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("rooms: build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return rooms.ErrNotFound
	}
	return nil
}

func (r *RoomsRepo) GetByID(ctx context.Context, id string) (rooms.Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return rooms.Room{}, rooms.ErrNotFound
	}

	query, args, err := psql.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return rooms.Room{}, fmt.Errorf("rooms: build select: %w", err)
	}

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return rooms.Room{}, rooms.ErrNotFound
	}
	return room, err
}

func (r *RoomsRepo) List(ctx context.Context) ([]rooms.Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("rooms").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("rooms: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]rooms.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(s rowScanner) (rooms.Room, error) {
	var (
		room                rooms.Room
		typ, status         string
		allowed, restricted []byte
		row                 roomRow
	)
	if err := s.Scan(
		&room.ID, &room.Name, &typ, &room.Capacity,
		&allowed, &restricted,
		&room.AllowsShared, &room.RequiresEvaluation, &status,
		&row.stayID, &row.stayPetID, &row.stayStatus,
		&row.clientName, &row.clientPhone, &row.clientEmail,
		&row.checkIn, &row.checkOut, &row.dailyRate,
		&room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return rooms.Room{}, err
	}

	room.Type = rooms.Type(typ)
	room.Status = rooms.Status(status)

	if err := json.Unmarshal(allowed, &room.AllowedPetTypes); err != nil {
		return rooms.Room{}, fmt.Errorf("rooms: decode allowed_pet_types: %w", err)
	}
	if len(restricted) > 0 {
		if err := json.Unmarshal(restricted, &room.Restrictions); err != nil {
			return rooms.Room{}, fmt.Errorf("rooms: decode restrictions: %w", err)
		}
	}

	if row.stayID.Valid {
		room.Stay = &rooms.Stay{
			ID:          row.stayID.String,
			PetID:       row.stayPetID.String,
			Status:      rooms.Status(row.stayStatus.String),
			ClientName:  row.clientName.String,
			ClientPhone: row.clientPhone.String,
			ClientEmail: row.clientEmail.String,
			CheckIn:     row.checkIn,
			CheckOut:    row.checkOut,
			DailyRate:   row.dailyRate.Decimal,
		}
	}
	return room, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
