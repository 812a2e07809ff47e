package service

import (
	"context"
	"strings"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

// CardService manages the cards and leader cards of an environment.
type CardService struct {
	envRepo    repository.EnvironmentRepository
	cardRepo   repository.CardRepository
	leaderRepo repository.LeaderCardRepository
}

func NewCardService(envRepo repository.EnvironmentRepository, cardRepo repository.CardRepository, leaderRepo repository.LeaderCardRepository) *CardService {
	return &CardService{
		envRepo:    envRepo,
		cardRepo:   cardRepo,
		leaderRepo: leaderRepo,
	}
}

type CardInput struct {
	Name    string
	Damage  int
	Health  int
	Element battle.Element
}

func (in CardInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrNameRequired
	}
	if in.Damage < 0 || in.Health < 0 {
		return domain.ErrInvalidStats
	}
	if !in.Element.IsValid() {
		return domain.ErrInvalidElement
	}
	return nil
}

type LeaderInput struct {
	CardID    uuid.UUID
	Name      string
	BoostType battle.BoostType
}

func (s *CardService) CreateCard(ctx context.Context, envID uuid.UUID, input CardInput) (*domain.Card, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.envRepo.GetByID(ctx, envID); err != nil {
		return nil, translate(err)
	}

	card := &domain.Card{
		ID:            uuid.New(),
		EnvironmentID: envID,
		Name:          strings.TrimSpace(input.Name),
		Damage:        input.Damage,
		Health:        input.Health,
		Element:       input.Element,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, translate(err)
	}
	return card, nil
}

// GetCard returns a card only if it belongs to the environment.
func (s *CardService) GetCard(ctx context.Context, envID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, translate(err)
	}
	if card.EnvironmentID != envID {
		return nil, domain.ErrNotFound
	}
	return card, nil
}

func (s *CardService) ListCards(ctx context.Context, envID uuid.UUID) ([]*domain.Card, error) {
	return s.cardRepo.GetByEnvironmentID(ctx, envID)
}

// UpdateCard changes a card's base stats. Player cards keep their boosts and
// fight with the new base from their next battle on.
func (s *CardService) UpdateCard(ctx context.Context, envID, cardID uuid.UUID, input CardInput) (*domain.Card, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	card, err := s.GetCard(ctx, envID, cardID)
	if err != nil {
		return nil, err
	}

	card.Name = strings.TrimSpace(input.Name)
	card.Damage = input.Damage
	card.Health = input.Health
	card.Element = input.Element
	card.UpdatedAt = time.Now()
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, translate(err)
	}
	return card, nil
}

// DeleteCard fails with domain.ErrInUse while player cards or dungeons use it.
func (s *CardService) DeleteCard(ctx context.Context, envID, cardID uuid.UUID) error {
	if _, err := s.GetCard(ctx, envID, cardID); err != nil {
		return err
	}
	return translate(s.cardRepo.Delete(ctx, cardID))
}

func (s *CardService) CreateLeader(ctx context.Context, envID uuid.UUID, input LeaderInput) (*domain.LeaderCard, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if !input.BoostType.IsValid() {
		return nil, domain.ErrInvalidBoostType
	}

	base, err := s.cardRepo.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, translate(err)
	}
	if base.EnvironmentID != envID {
		return nil, domain.ErrForeignCard
	}

	leader := &domain.LeaderCard{
		ID:            uuid.New(),
		EnvironmentID: envID,
		CardID:        base.ID,
		Name:          strings.TrimSpace(input.Name),
		BoostType:     input.BoostType,
		CreatedAt:     time.Now(),
	}
	if err := s.leaderRepo.Create(ctx, leader); err != nil {
		return nil, translate(err)
	}
	leader.Card = base
	return leader, nil
}

func (s *CardService) ListLeaders(ctx context.Context, envID uuid.UUID) ([]*domain.LeaderCard, error) {
	return s.leaderRepo.GetByEnvironmentID(ctx, envID)
}

// DeleteLeader fails with domain.ErrInUse while a dungeon uses the leader.
func (s *CardService) DeleteLeader(ctx context.Context, envID, leaderID uuid.UUID) error {
	leader, err := s.leaderRepo.GetByID(ctx, leaderID)
	if err != nil {
		return translate(err)
	}
	if leader.EnvironmentID != envID {
		return domain.ErrNotFound
	}
	return translate(s.leaderRepo.Delete(ctx, leaderID))
}
