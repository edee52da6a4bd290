package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sahabulislamsifat/PlantStore/internal/cache"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
	"golang.org/x/sync/singleflight"
)

// StockDirection selects whether a direct stock adjustment adds or
// removes units.
type StockDirection string

const (
	StockIncrease StockDirection = "increase"
	StockDecrease StockDirection = "decrease"
)

// PlantInput carries the caller-supplied fields for a new plant
type PlantInput struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Price       float64         `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image"`
}

// CatalogService owns the plant collection: public reads, seller-scoped
// writes, and direct stock adjustments.
type CatalogService struct {
	plants repository.PlantRepository
	cache  cache.CatalogCache
	logger zerolog.Logger
	sfg    singleflight.Group // Prevents cache stampede on the listing
}

func NewCatalogService(plants repository.PlantRepository, c cache.CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		plants: plants,
		cache:  c,
		logger: logger,
	}
}

func (s *CatalogService) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	// Collapse concurrent cache misses into one repository read
	v, err, _ := s.sfg.Do("plants", func() (interface{}, error) {
		plants, err := s.cache.GetPlants(ctx)
		if err == nil {
			return plants, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("catalog cache get failed")
		}

		plants, err = s.plants.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.SetPlants(ctx, plants); err != nil {
				s.logger.Warn().Err(err).Msg("catalog cache set failed")
			}
		}()

		return plants, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Plant), nil
}

func (s *CatalogService) GetPlant(ctx context.Context, id string) (*domain.Plant, error) {
	plant, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return nil, mapPlantError(err)
	}
	return plant, nil
}

func (s *CatalogService) ListSellerPlants(ctx context.Context, sellerEmail string) ([]domain.Plant, error) {
	return s.plants.FindBySeller(ctx, sellerEmail)
}

func (s *CatalogService) AddPlant(ctx context.Context, seller *domain.User, input PlantInput) (*domain.Plant, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: plant name is required", ErrInvalidInput)
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	plant := &domain.Plant{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Seller: domain.SellerInfo{
			Name:     seller.Name,
			Email:    seller.Email,
			PhotoURL: seller.PhotoURL,
		},
	}

	if err := s.plants.Insert(ctx, plant); err != nil {
		return nil, err
	}

	s.invalidateCache()
	return plant, nil
}

func (s *CatalogService) UpdatePlant(ctx context.Context, id string, update domain.PlantUpdate, requester *domain.User) (*domain.Plant, error) {
	if update.Category != nil && !domain.IsValidCategory(*update.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *update.Category)
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, id, requester); err != nil {
		return nil, err
	}

	plant, err := s.plants.Update(ctx, id, update)
	if err != nil {
		return nil, mapPlantError(err)
	}

	s.invalidateCache()
	return plant, nil
}

func (s *CatalogService) DeletePlant(ctx context.Context, id string, requester *domain.User) error {
	if err := s.checkOwnership(ctx, id, requester); err != nil {
		return err
	}

	if err := s.plants.Delete(ctx, id); err != nil {
		return mapPlantError(err)
	}

	s.invalidateCache()
	return nil
}

// AdjustStock applies a direct stock change. Decreases go through the
// same guarded decrement as purchases, so they can never drive stock
// negative.
func (s *CatalogService) AdjustStock(ctx context.Context, id string, quantity int, direction StockDirection) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	var err error
	switch direction {
	case StockIncrease:
		err = s.plants.IncrementStock(ctx, id, quantity)
	case StockDecrease:
		err = s.plants.DecrementStock(ctx, id, quantity)
	default:
		return fmt.Errorf("%w: unknown stock direction %q", ErrInvalidInput, direction)
	}

	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			plant, findErr := s.plants.FindByID(ctx, id)
			if findErr != nil {
				return mapPlantError(findErr)
			}
			return &InsufficientStockError{Requested: quantity, Available: plant.Quantity}
		}
		return mapPlantError(err)
	}

	s.invalidateCache()
	return nil
}

func (s *CatalogService) checkOwnership(ctx context.Context, id string, requester *domain.User) error {
	if requester.Role == domain.RoleAdmin {
		return nil
	}

	plant, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return mapPlantError(err)
	}
	if plant.Seller.Email != requester.Email {
		return fmt.Errorf("%w: plant belongs to another seller", ErrForbidden)
	}
	return nil
}

func (s *CatalogService) invalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

func mapPlantError(err error) error {
	switch {
	case errors.Is(err, repository.ErrPlantNotFound):
		return fmt.Errorf("%w: plant", ErrNotFound)
	case errors.Is(err, repository.ErrInvalidID):
		return fmt.Errorf("%w: malformed plant id", ErrInvalidInput)
	default:
		return err
	}
}
