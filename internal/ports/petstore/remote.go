package petstore

import (
	"context"
	"errors"

	"pet-adoption-catalog/internal/domain/pets"
)

var (
	// ErrNotFound: el id no existe en el store remoto.
	ErrNotFound = errors.New("pet not found")
	// ErrRateLimited: el store remoto respondió 429. Recuperable esperando.
	ErrRateLimited = errors.New("pet store rate limited")
)

// Remote es la colección remota de mascotas (caja negra REST).
// Los adapters deben envolver ErrNotFound / ErrRateLimited cuando aplique
// y cualquier otro error tal cual.
type Remote interface {
	List(ctx context.Context) ([]pets.Pet, error)
	Get(ctx context.Context, id string) (pets.Pet, error)
	Create(ctx context.Context, p pets.Pet) (pets.Pet, error)
	Update(ctx context.Context, id string, p pets.Pet) (pets.Pet, error)
	Delete(ctx context.Context, id string) error
}
