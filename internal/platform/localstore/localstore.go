// Package localstore define el almacenamiento clave-valor local del cliente
// (el equivalente al localStorage del navegador): favoritos y tema.
package localstore

import (
	"context"
	"errors"
)

// ErrNotFound indica que la clave no existe.
var ErrNotFound = errors.New("localstore: key not found")

// KV guarda blobs de texto por clave. Cada Set reemplaza el valor completo.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
