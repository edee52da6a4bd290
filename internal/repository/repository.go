package repository

import (
	"context"
	"errors"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
)

// Common errors returned by the repositories
var (
	ErrInvalidID         = errors.New("malformed object id")
	ErrPlantNotFound     = errors.New("plant not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderDelivered    = errors.New("order already delivered")
)

// PlantRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type PlantRepository interface {
	Insert(ctx context.Context, plant *domain.Plant) error
	FindAll(ctx context.Context) ([]domain.Plant, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	FindBySeller(ctx context.Context, email string) ([]domain.Plant, error)
	Update(ctx context.Context, id string, update domain.PlantUpdate) (*domain.Plant, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically subtracts quantity from a plant's stock,
	// but only if the remaining stock would stay non-negative. Returns
	// ErrInsufficientStock when the guard rejects the update.
	DecrementStock(ctx context.Context, id string, quantity int) error

	// IncrementStock adds quantity back to a plant's stock. Returns
	// ErrPlantNotFound when the plant no longer exists.
	IncrementStock(ctx context.Context, id string, quantity int) error
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)

	// DeleteIfNotDelivered removes an order unless its status is
	// delivered, guarding against a concurrent delivery flip. Returns
	// the deleted order, ErrOrderDelivered, or ErrOrderNotFound.
	DeleteIfNotDelivered(ctx context.Context, id string) (*domain.Order, error)

	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]domain.OrderWithPlant, error)
	ListBySeller(ctx context.Context, email string) ([]domain.OrderWithPlant, error)
}

// UserRepository defines the interface for account data operations
type UserRepository interface {
	// Upsert inserts the user if no account exists for the email yet and
	// returns the stored account either way. An existing account is
	// never modified by a repeat login.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error
	UpdateRoleAndStatus(ctx context.Context, email string, role domain.Role, status domain.UserStatus) error
	ListExcept(ctx context.Context, email string) ([]domain.User, error)
}
