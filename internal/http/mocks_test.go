package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
)

// stubPlantRepo implements repository.PlantRepository in memory
type stubPlantRepo struct {
	mu     sync.Mutex
	plants map[string]*domain.Plant
	nextID int
}

func newStubPlantRepo(plants ...*domain.Plant) *stubPlantRepo {
	s := &stubPlantRepo{plants: make(map[string]*domain.Plant)}
	for _, p := range plants {
		s.plants[p.ID] = p
	}
	return s
}

func (s *stubPlantRepo) Insert(_ context.Context, plant *domain.Plant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	plant.ID = fmt.Sprintf("plant-%d", s.nextID)
	s.plants[plant.ID] = plant
	return nil
}

func (s *stubPlantRepo) FindAll(context.Context) ([]domain.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		result = append(result, *p)
	}
	return result, nil
}

func (s *stubPlantRepo) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
	if !ok {
		return nil, repository.ErrPlantNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *stubPlantRepo) FindBySeller(_ context.Context, email string) ([]domain.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Plant
	for _, p := range s.plants {
		if p.Seller.Email == email {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (s *stubPlantRepo) Update(_ context.Context, id string, update domain.PlantUpdate) (*domain.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
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

func (s *stubPlantRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plants[id]; !ok {
		return repository.ErrPlantNotFound
	}
	delete(s.plants, id)
	return nil
}

func (s *stubPlantRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
	if !ok {
		return repository.ErrPlantNotFound
	}
	if p.Quantity < quantity {
		return repository.ErrInsufficientStock
	}
	p.Quantity -= quantity
	return nil
}

func (s *stubPlantRepo) IncrementStock(_ context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
	if !ok {
		return repository.ErrPlantNotFound
	}
	p.Quantity += quantity
	return nil
}

func (s *stubPlantRepo) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.plants[id]; ok {
		return p.Quantity
	}
	return -1
}

// stubOrderRepo implements repository.OrderRepository in memory
type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	s := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *stubOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order.ID = fmt.Sprintf("order-%d", s.nextID)
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *stubOrderRepo) DeleteIfNotDelivered(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if o.Status == domain.StatusDelivered {
		return nil, repository.ErrOrderDelivered
	}
	delete(s.orders, id)
	copied := *o
	return &copied, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, email string) ([]domain.OrderWithPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.OrderWithPlant
	for _, o := range s.orders {
		if o.Customer.Email == email {
			result = append(result, domain.OrderWithPlant{Order: *o})
		}
	}
	return result, nil
}

func (s *stubOrderRepo) ListBySeller(_ context.Context, email string) ([]domain.OrderWithPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.OrderWithPlant
	for _, o := range s.orders {
		if o.SellerEmail == email {
			result = append(result, domain.OrderWithPlant{Order: *o})
		}
	}
	return result, nil
}

// stubUserRepo implements repository.UserRepository in memory
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	s := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *stubUserRepo) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.Email]; ok {
		copied := *existing
		return &copied, nil
	}
	stored := *user
	stored.Role = domain.RoleCustomer
	s.users[user.Email] = &stored
	copied := stored
	return &copied, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserRepo) UpdateStatus(_ context.Context, email string, status domain.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (s *stubUserRepo) UpdateRoleAndStatus(_ context.Context, email string, role domain.Role, status domain.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Role = role
	u.Status = status
	return nil
}

func (s *stubUserRepo) ListExcept(_ context.Context, email string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.User
	for _, u := range s.users {
		if u.Email != email {
			result = append(result, *u)
		}
	}
	return result, nil
}
