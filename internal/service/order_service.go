package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sahabulislamsifat/PlantStore/internal/cache"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/events"
	"github.com/sahabulislamsifat/PlantStore/internal/notify"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
)

const dispatchTimeout = 10 * time.Second

// PlaceOrderInput carries the caller-supplied purchase fields
type PlaceOrderInput struct {
	PlantID  string `json:"plantId"`
	Quantity int    `json:"quantity"`
	Address  string `json:"address"`
}

// OrderService coordinates purchases and cancellations: stock is
// reserved through a guarded decrement before an order is written, and
// restored when one is cancelled.
type OrderService struct {
	plants   repository.PlantRepository
	orders   repository.OrderRepository
	cache    cache.CatalogCache
	notifier notify.Notifier
	events   events.Publisher
	logger   zerolog.Logger
}

func NewOrderService(
	plants repository.PlantRepository,
	orders repository.OrderRepository,
	c cache.CatalogCache,
	notifier notify.Notifier,
	publisher events.Publisher,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		plants:   plants,
		orders:   orders,
		cache:    c,
		notifier: notifier,
		events:   publisher,
		logger:   logger,
	}
}

// PlaceOrder reserves stock and records an order. The reservation is a
// single conditional decrement; if the order insert fails afterwards the
// reserved quantity is returned to the plant.
func (s *OrderService) PlaceOrder(ctx context.Context, customer *domain.User, input PlaceOrderInput) (*domain.Order, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	plant, err := s.plants.FindByID(ctx, input.PlantID)
	if err != nil {
		return nil, mapPlantError(err)
	}

	if plant.Seller.Email == customer.Email {
		return nil, fmt.Errorf("%w: cannot purchase your own plant", ErrForbidden)
	}

	if err := s.plants.DecrementStock(ctx, input.PlantID, input.Quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			current, findErr := s.plants.FindByID(ctx, input.PlantID)
			if findErr != nil {
				return nil, mapPlantError(findErr)
			}
			return nil, &InsufficientStockError{Requested: input.Quantity, Available: current.Quantity}
		}
		return nil, mapPlantError(err)
	}

	order := &domain.Order{
		PlantID:   plant.ID,
		PlantName: plant.Name,
		Quantity:  input.Quantity,
		Price:     float64(input.Quantity) * plant.Price,
		Customer: domain.CustomerInfo{
			Name:     customer.Name,
			Email:    customer.Email,
			PhotoURL: customer.PhotoURL,
		},
		SellerEmail: plant.Seller.Email,
		Address:     input.Address,
		Status:      domain.StatusPending,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		// Return the reserved quantity; the unit of work must leave
		// both collections unchanged on failure.
		if incErr := s.plants.IncrementStock(ctx, input.PlantID, input.Quantity); incErr != nil {
			s.logger.Error().Err(incErr).
				Str("plant_id", input.PlantID).
				Int("quantity", input.Quantity).
				Msg("failed to restore stock after order insert failure")
		}
		return nil, err
	}

	s.invalidateCache()
	go s.dispatchOrderPlaced(order)

	return order, nil
}

// CancelOrder removes an order and restores its quantity to the plant's
// stock. Delivered orders cannot be cancelled. A vanished plant makes
// the restoration a no-op; the cancellation still succeeds.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string, requester *domain.User) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return mapOrderError(err)
	}

	if requester.Role != domain.RoleAdmin && order.Customer.Email != requester.Email {
		return fmt.Errorf("%w: order belongs to another customer", ErrForbidden)
	}

	deleted, err := s.orders.DeleteIfNotDelivered(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderDelivered) {
			return fmt.Errorf("%w: cannot cancel a delivered order", ErrConflict)
		}
		return mapOrderError(err)
	}

	if err := s.plants.IncrementStock(ctx, deleted.PlantID, deleted.Quantity); err != nil {
		if !errors.Is(err, repository.ErrPlantNotFound) && !errors.Is(err, repository.ErrInvalidID) {
			s.logger.Error().Err(err).
				Str("order_id", orderID).
				Str("plant_id", deleted.PlantID).
				Msg("failed to restore stock after cancellation")
		}
	}

	s.invalidateCache()
	go s.dispatchEvent(events.NewOrderEvent(events.OrderCancelled, deleted.ID, deleted.PlantID, deleted.Quantity, ""))

	return nil
}

// UpdateOrderStatus sets the fulfillment status. Statuses are not
// ordered; a seller may move an order between any of them.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, requester *domain.User) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderError(err)
	}

	if requester.Role != domain.RoleAdmin && order.SellerEmail != requester.Email {
		return nil, fmt.Errorf("%w: order belongs to another seller", ErrForbidden)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, mapOrderError(err)
	}

	go s.dispatchEvent(events.NewOrderEvent(events.OrderStatusChanged, updated.ID, updated.PlantID, updated.Quantity, string(status)))

	return updated, nil
}

// ListCustomerOrders returns the orders of a customer joined with the
// current plant state. Callers may only list their own orders unless
// they are admin.
func (s *OrderService) ListCustomerOrders(ctx context.Context, email string, requester *domain.User) ([]domain.OrderWithPlant, error) {
	if requester.Role != domain.RoleAdmin && requester.Email != email {
		return nil, fmt.Errorf("%w: cannot list another customer's orders", ErrForbidden)
	}
	return s.orders.ListByCustomer(ctx, email)
}

// ListSellerOrders returns the orders placed against a seller's plants
func (s *OrderService) ListSellerOrders(ctx context.Context, email string, requester *domain.User) ([]domain.OrderWithPlant, error) {
	if requester.Role != domain.RoleAdmin && requester.Email != email {
		return nil, fmt.Errorf("%w: cannot list another seller's orders", ErrForbidden)
	}
	return s.orders.ListBySeller(ctx, email)
}

// dispatchOrderPlaced runs the post-commit side effects detached from
// the request: failure is logged, never surfaced to the caller.
func (s *OrderService) dispatchOrderPlaced(order *domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.notifier.OrderPlaced(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("order notification failed")
	}

	event := events.NewOrderEvent(events.OrderCreated, order.ID, order.PlantID, order.Quantity, string(order.Status))
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("order event publish failed")
	}
}

func (s *OrderService) dispatchEvent(event events.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("order_id", event.OrderID).Msg("order event publish failed")
	}
}

func (s *OrderService) invalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

func mapOrderError(err error) error {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return fmt.Errorf("%w: order", ErrNotFound)
	case errors.Is(err, repository.ErrInvalidID):
		return fmt.Errorf("%w: malformed order id", ErrInvalidInput)
	default:
		return err
	}
}
