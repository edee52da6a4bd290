package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sahabulislamsifat/PlantStore/internal/cache"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/events"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
)

// mockPlantRepo implements repository.PlantRepository for testing
type mockPlantRepo struct {
	mu        sync.Mutex
	plants    map[string]*domain.Plant
	insertErr error
	nextID    int
}

func newMockPlantRepo(plants ...*domain.Plant) *mockPlantRepo {
	m := &mockPlantRepo{plants: make(map[string]*domain.Plant)}
	for _, p := range plants {
		m.plants[p.ID] = p
	}
	return m
}

func (m *mockPlantRepo) Insert(_ context.Context, plant *domain.Plant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	plant.ID = fmt.Sprintf("plant-%d", m.nextID)
	m.plants[plant.ID] = plant
	return nil
}

func (m *mockPlantRepo) FindAll(context.Context) ([]domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Plant, 0, len(m.plants))
	for _, p := range m.plants {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlantRepo) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok {
		return nil, repository.ErrPlantNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPlantRepo) FindBySeller(_ context.Context, email string) ([]domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Plant
	for _, p := range m.plants {
		if p.Seller.Email == email {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlantRepo) Update(_ context.Context, id string, update domain.PlantUpdate) (*domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok {
		return nil, repository.ErrPlantNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Quantity != nil {
		p.Quantity = *update.Quantity
	}
	copied := *p
	return &copied, nil
}

func (m *mockPlantRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plants[id]; !ok {
		return repository.ErrPlantNotFound
	}
	delete(m.plants, id)
	return nil
}

func (m *mockPlantRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok {
		return repository.ErrPlantNotFound
	}
	if p.Quantity < quantity {
		return repository.ErrInsufficientStock
	}
	p.Quantity -= quantity
	return nil
}

func (m *mockPlantRepo) IncrementStock(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok {
		return repository.ErrPlantNotFound
	}
	p.Quantity += quantity
	return nil
}

func (m *mockPlantRepo) stock(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plants[id]; ok {
		return p.Quantity
	}
	return -1
}

// mockOrderRepo implements repository.OrderRepository for testing
type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	insertErr error
	nextID    int
}

func newMockOrderRepo(orders ...*domain.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepo) DeleteIfNotDelivered(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if o.Status == domain.StatusDelivered {
		return nil, repository.ErrOrderDelivered
	}
	delete(m.orders, id)
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepo) ListByCustomer(_ context.Context, email string) ([]domain.OrderWithPlant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.OrderWithPlant
	for _, o := range m.orders {
		if o.Customer.Email == email {
			result = append(result, domain.OrderWithPlant{Order: *o})
		}
	}
	return result, nil
}

func (m *mockOrderRepo) ListBySeller(_ context.Context, email string) ([]domain.OrderWithPlant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.OrderWithPlant
	for _, o := range m.orders {
		if o.SellerEmail == email {
			result = append(result, domain.OrderWithPlant{Order: *o})
		}
	}
	return result, nil
}

func (m *mockOrderRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// mockUserRepo implements repository.UserRepository for testing
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *mockUserRepo) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.users[user.Email]; ok {
		copied := *existing
		return &copied, nil
	}
	stored := *user
	stored.Role = domain.RoleCustomer
	m.users[user.Email] = &stored
	copied := stored
	return &copied, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, email string, status domain.UserStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (m *mockUserRepo) UpdateRoleAndStatus(_ context.Context, email string, role domain.Role, status domain.UserStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Role = role
	u.Status = status
	return nil
}

func (m *mockUserRepo) ListExcept(_ context.Context, email string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.User
	for _, u := range m.users {
		if u.Email != email {
			result = append(result, *u)
		}
	}
	return result, nil
}

// mockCache implements cache.CatalogCache for testing
type mockCache struct {
	mu     sync.Mutex
	plants []domain.Plant
	filled bool
}

func (m *mockCache) GetPlants(context.Context) ([]domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.filled {
		return nil, cache.ErrCacheMiss
	}
	return m.plants, nil
}

func (m *mockCache) SetPlants(_ context.Context, plants []domain.Plant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plants = plants
	m.filled = true
	return nil
}

func (m *mockCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plants = nil
	m.filled = false
	return nil
}

func (m *mockCache) isFilled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filled
}

// mockNotifier implements notify.Notifier for testing
type mockNotifier struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (m *mockNotifier) OrderPlaced(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockNotifier) notified() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// mockPublisher implements events.Publisher for testing
type mockPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (m *mockPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []events.OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.OrderEvent(nil), m.events...)
}
