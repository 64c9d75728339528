package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kennel-scheduler/internal/domain/pets"

	"github.com/Masterminds/squirrel"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

var petColumns = []string{
	"id", "name", "type", "breed", "sex",
	"owner_name", "owner_phone", "notes",
	"created_at", "updated_at",
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	query, args, err := psql.Insert("pets").
		Columns(petColumns...).
		Values(
			p.ID, p.Name, string(p.Type), p.Breed, string(p.Sex),
			p.OwnerName, p.OwnerPhone, p.Notes,
			p.CreatedAt, p.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("pets: build insert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	query, args, err := psql.Update("pets").
		Set("name", p.Name).
		Set("breed", p.Breed).
		Set("sex", string(p.Sex)).
		Set("owner_name", p.OwnerName).
		Set("owner_phone", p.OwnerPhone).
		Set("notes", p.Notes).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("pets: build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	query, args, err := psql.Select(petColumns...).
		From("pets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return pets.Pet{}, fmt.Errorf("pets: build select: %w", err)
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	query, args, err := psql.Select(petColumns...).
		From("pets").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pets: build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var typ, sex string
	if err := s.Scan(
		&p.ID, &p.Name, &typ, &p.Breed, &sex,
		&p.OwnerName, &p.OwnerPhone, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Type = pets.Species(typ)
	p.Sex = pets.Sex(sex)
	return p, nil
}
