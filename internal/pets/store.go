package pets

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists pets; implementations return sentinel errors.
type Store interface {
	Create(ctx context.Context, pet Pet) error
	FindByID(ctx context.Context, id domain.PetID) (Pet, error)
	Update(ctx context.Context, pet Pet) error
}

// MediaStore is the blob port for pet photos. Put blocks, so the service runs
// it on the background executor.
type MediaStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
}
