package repository

import (
	"context"
	"time"
)

// KVStore almacén clave-valor persistente (sesiones revocadas, preferencias, marca de primera venta).
type KVStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set guarda el valor; ttl 0 = sin expiración.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
