package repositories

import (
	"context"

	"campus-challenge.backend/internal/domain/entities"
)

type ConfigRepository interface {
	// GetByKey returns the most recently updated row for key.
	GetByKey(ctx context.Context, key string) (*entities.Config, error)
	List(ctx context.Context) ([]*entities.Config, error)
	// Upsert creates the row or overwrites value, type and description.
	Upsert(ctx context.Context, cfg *entities.Config) error
	DeleteByKey(ctx context.Context, key string) error
}
