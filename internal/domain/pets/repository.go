package pets

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pet not found")

// Repository es la persistencia del stand-in del API remoto.
// List devuelve en orden de alta (el cliente nunca reordena).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
}
