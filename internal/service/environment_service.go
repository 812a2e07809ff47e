package service

import (
	"context"
	"strings"
	"time"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

type EnvironmentService struct {
	envRepo repository.EnvironmentRepository
}

func NewEnvironmentService(envRepo repository.EnvironmentRepository) *EnvironmentService {
	return &EnvironmentService{envRepo: envRepo}
}

type EnvironmentInput struct {
	Name        string
	Description string
}

func (s *EnvironmentService) Create(ctx context.Context, userID uuid.UUID, input EnvironmentInput) (*domain.Environment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	env := &domain.Environment{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.envRepo.Create(ctx, env); err != nil {
		return nil, translate(err)
	}
	return env, nil
}

func (s *EnvironmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Environment, error) {
	env, err := s.envRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return env, nil
}

func (s *EnvironmentService) List(ctx context.Context) ([]*domain.Environment, error) {
	return s.envRepo.GetAll(ctx)
}

func (s *EnvironmentService) Update(ctx context.Context, id uuid.UUID, input EnvironmentInput) (*domain.Environment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	env, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	env.Name = name
	env.Description = input.Description
	env.UpdatedAt = time.Now()
	if err := s.envRepo.Update(ctx, env); err != nil {
		return nil, translate(err)
	}
	return env, nil
}

// Delete fails with domain.ErrInUse while games exist in the environment.
func (s *EnvironmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.envRepo.Delete(ctx, id))
}
