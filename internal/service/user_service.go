package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
)

// UserService owns accounts and the seller-upgrade flow
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpsertUser records a login. A new account gets role customer; an
// existing account is returned untouched.
func (s *UserService) UpsertUser(ctx context.Context, name, email, photoURL string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		PhotoURL: photoURL,
	}
	return s.users.Upsert(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

func (s *UserService) GetRole(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", mapUserError(err)
	}
	return user.Role, nil
}

// RequestSellerRole flags an account as wanting the seller role. A
// second request while one is pending is a conflict.
func (s *UserService) RequestSellerRole(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return mapUserError(err)
	}

	if user.Status == domain.StatusRequested {
		return fmt.Errorf("%w: seller role already requested", ErrConflict)
	}

	if err := s.users.UpdateStatus(ctx, email, domain.StatusRequested); err != nil {
		return mapUserError(err)
	}
	return nil
}

// SetUserRole is the admin action that grants a role; it marks the
// account verified in the same update.
func (s *UserService) SetUserRole(ctx context.Context, email string, role domain.Role) error {
	if !domain.IsValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if err := s.users.UpdateRoleAndStatus(ctx, email, role, domain.StatusVerified); err != nil {
		return mapUserError(err)
	}
	return nil
}

// ListUsers returns every account except the caller's own
func (s *UserService) ListUsers(ctx context.Context, exceptEmail string) ([]domain.User, error) {
	return s.users.ListExcept(ctx, exceptEmail)
}

func mapUserError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return err
}
