package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

var ErrSelfModification = errors.New("cannot change or delete your own account here")

// UserService is the webmaster's account management.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = page(limit, offset)
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) SetRole(ctx context.Context, actorID, userID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidUserRole
	}
	if actorID == userID {
		return nil, ErrSelfModification
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account and every game it owns.
func (s *UserService) Delete(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return ErrSelfModification
	}
	return translate(s.userRepo.Delete(ctx, userID))
}
