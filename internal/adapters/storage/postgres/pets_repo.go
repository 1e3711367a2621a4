package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption-catalog/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, gender, age,
			photo, description, classification
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		string(p.Gender),
		p.Age,
		p.Photo,
		p.Description,
		string(p.Classification),
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			gender = $4,
			age = $5,
			photo = $6,
			description = $7,
			classification = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		string(p.Gender),
		p.Age,
		p.Photo,
		p.Description,
		string(p.Classification),
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, species, gender, age, photo, description, classification
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, species, gender, age, photo, description, classification
		FROM pets
		ORDER BY seq ASC
	`)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                       pets.Pet
		species, gender, classf string
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&species,
		&gender,
		&p.Age,
		&p.Photo,
		&p.Description,
		&classf,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.Species(species)
	p.Gender = pets.Gender(gender)
	p.Classification = pets.Classification(classf)
	return p, nil
}

func expectOneRow(res sql.Result) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}
