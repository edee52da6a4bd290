package cache

import (
	"context"
	"errors"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
)

// CatalogCache holds the public plant listing. Writes to the catalog or
// to stock invalidate it; readers fall back to the repository on a miss.
type CatalogCache interface {
	GetPlants(ctx context.Context) ([]domain.Plant, error)
	SetPlants(ctx context.Context, plants []domain.Plant) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache is used when no Redis address is configured. Every read is
// a miss and writes are discarded.
type NoopCache struct{}

func (NoopCache) GetPlants(context.Context) ([]domain.Plant, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) SetPlants(context.Context, []domain.Plant) error { return nil }

func (NoopCache) Invalidate(context.Context) error { return nil }
