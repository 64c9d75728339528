package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"kennel-scheduler/internal/domain/assignments"
	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/pets"
	"kennel-scheduler/internal/domain/records"
	"kennel-scheduler/internal/domain/rooms"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var ts = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRoomsRepo_GetByID_WithStay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomsRepo(db)

	rows := sqlmock.NewRows(roomColumns).AddRow(
		"k1", "Kennel 1", "suite", 2,
		[]byte(`["dog","cat"]`), []byte(`["no stairs"]`),
		true, true, "occupied",
		"stay-1", "pet-1", "occupied",
		"Ana", "555-1234", "ana@example.com",
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), "45.50",
		ts, ts,
	)
	mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id = \$1`).
		WithArgs("k1").
		WillReturnRows(rows)

	room, err := repo.GetByID(context.Background(), "k1")
	require.NoError(t, err)

	assert.Equal(t, rooms.TypeSuite, room.Type)
	assert.Equal(t, []string{"dog", "cat"}, room.AllowedPetTypes)
	assert.Equal(t, []string{"no stairs"}, room.Restrictions)
	require.NotNil(t, room.Stay)
	assert.Equal(t, "2024-03-10", room.Stay.CheckIn.String())
	assert.Equal(t, "2024-03-13", room.Stay.CheckOut.String())
	assert.True(t, decimal.RequireFromString("136.5").Equal(room.TotalPrice()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomsRepo_GetByID_VacantHasNoStay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomsRepo(db)

	rows := sqlmock.NewRows(roomColumns).AddRow(
		"k2", "Kennel 2", "standard", 1,
		[]byte(`["dog"]`), []byte(`[]`),
		false, false, "vacant",
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil,
		ts, ts,
	)
	mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id = \$1`).
		WithArgs("k2").
		WillReturnRows(rows)

	room, err := repo.GetByID(context.Background(), "k2")
	require.NoError(t, err)
	assert.Nil(t, room.Stay)
	assert.Equal(t, rooms.StatusVacant, room.Status)
	assert.Equal(t, 0, room.Nights())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomsRepo_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomsRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, rooms.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, rooms.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomsRepo_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomsRepo(db)

	room := rooms.Room{
		ID: "k1", Name: "Kennel 1", Type: rooms.TypeStandard, Capacity: 1,
		AllowedPetTypes: []string{"dog"}, Status: rooms.StatusReserved,
		Stay: &rooms.Stay{
			ID: "s1", PetID: "p1", Status: rooms.StatusReserved,
			CheckIn:   calendar.MustParse("2024-03-10"),
			CheckOut:  calendar.MustParse("2024-03-12"),
			DailyRate: decimal.NewFromInt(40),
		},
		UpdatedAt: ts,
	}

	mock.ExpectExec(`UPDATE rooms SET (.+) WHERE id = \$19`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), room))

	mock.ExpectExec(`UPDATE rooms SET (.+) WHERE id = \$19`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), room), rooms.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomsRepo_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomsRepo(db)

	mock.ExpectExec(`INSERT INTO rooms \((.+)\) VALUES \((.+)\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), rooms.Room{
		ID: "k1", Name: "K1", Type: rooms.TypeLarge, Capacity: 3,
		AllowedPetTypes: []string{"dog"}, Status: rooms.StatusVacant,
		CreatedAt: ts, UpdatedAt: ts,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPetsRepo(db)

	rows := sqlmock.NewRows(petColumns).
		AddRow("p1", "Rex", "dog", "beagle", "male", "Ana", "555", "", ts, ts).
		AddRow("p2", "Michi", "cat", "", "female", "Luis", "", "shy", ts, ts)
	mock.ExpectQuery(`SELECT (.+) FROM pets ORDER BY created_at ASC, id ASC`).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, pets.SpeciesDog, items[0].Type)
	assert.Equal(t, pets.SexFemale, items[1].Sex)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM pets WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_ListEvaluations_KeepsRawTimestamp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRecordsRepo(db)

	rows := sqlmock.NewRows([]string{"id", "pet_id", "evaluated_at", "status", "is_expired", "recorded_at"}).
		AddRow("e1", "p1", "sometime in march", "passed", false, ts).
		AddRow("e2", "p1", "2024-03-02T10:00:00Z", "failed", true, ts)
	mock.ExpectQuery(`SELECT (.+) FROM pet_evaluations WHERE pet_id = \$1`).
		WithArgs("p1").
		WillReturnRows(rows)

	items, err := repo.ListEvaluations(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "sometime in march", items[0].EvaluatedAt)
	assert.Equal(t, records.EvaluationFailed, items[1].Status)
	assert.True(t, items[1].IsExpired)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_AddVaccination(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRecordsRepo(db)

	mock.ExpectExec(`INSERT INTO pet_vaccinations \(id,pet_id,type,recorded_at\) VALUES \(\$1,\$2,\$3,\$4\)`).
		WithArgs("v1", "p1", "rabies", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddVaccination(context.Background(), records.Vaccination{ID: "v1", PetID: "p1", Type: "rabies", RecordedAt: ts})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentsRepo_LoadGroupsByRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAssignmentsRepo(db)

	rows := sqlmock.NewRows([]string{"room_id", "pet_id"}).
		AddRow("k1", "d1").
		AddRow("k1", "d2").
		AddRow("k2", "c1")
	mock.ExpectQuery(`SELECT room_id, pet_id FROM room_assignments ORDER BY room_id ASC, position ASC`).
		WillReturnRows(rows)

	b, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, assignments.Board{"k1": {"d1", "d2"}, "k2": {"c1"}}, b)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentsRepo_SaveReplacesBoardInTx(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAssignmentsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM room_assignments`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO room_assignments \(room_id,pet_id,position\) VALUES`).
		WithArgs("k1", "d1", 0, "k1", "d2", 1, "k2", "c1", 0).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), assignments.Board{"k2": {"c1"}, "k1": {"d1", "d2"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentsRepo_SaveEmptyBoardOnlyClears(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAssignmentsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM room_assignments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), assignments.Board{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentsRepo_Overrides(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAssignmentsRepo(db)

	mock.ExpectExec(`INSERT INTO assignment_overrides`).
		WithArgs("o1", "d3", "k1", "staff-9", "family", "capacity,pet_type", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddOverride(context.Background(), assignments.OverrideRecord{
		ID: "o1", PetID: "d3", RoomID: "k1", StaffID: "staff-9", Reason: "family",
		Bypassed:  []assignments.Violation{assignments.ViolationCapacity, assignments.ViolationPetType},
		CreatedAt: ts,
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "pet_id", "room_id", "staff_id", "reason", "bypassed", "created_at"}).
		AddRow("o1", "d3", "k1", "staff-9", "family", "capacity,pet_type", ts)
	mock.ExpectQuery(`SELECT (.+) FROM assignment_overrides`).
		WillReturnRows(rows)

	recs, err := repo.ListOverrides(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []assignments.Violation{assignments.ViolationCapacity, assignments.ViolationPetType}, recs[0].Bypassed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
