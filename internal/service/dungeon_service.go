package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

type DungeonService struct {
	envRepo     repository.EnvironmentRepository
	cardRepo    repository.CardRepository
	leaderRepo  repository.LeaderCardRepository
	dungeonRepo repository.DungeonRepository
}

func NewDungeonService(envRepo repository.EnvironmentRepository, cardRepo repository.CardRepository, leaderRepo repository.LeaderCardRepository, dungeonRepo repository.DungeonRepository) *DungeonService {
	return &DungeonService{
		envRepo:     envRepo,
		cardRepo:    cardRepo,
		leaderRepo:  leaderRepo,
		dungeonRepo: dungeonRepo,
	}
}

// SlotInput names the card of one dungeon position. Exactly one ID is set.
type SlotInput struct {
	CardID       *uuid.UUID
	LeaderCardID *uuid.UUID
}

type DungeonInput struct {
	Name     string
	Category battle.Category
	Slots    []SlotInput
}

// Create stores a dungeon after checking its slots against the category:
// the slot count must match, a category with a leader has it in the last
// position and plain cards everywhere else, and every card comes from the
// dungeon's environment.
func (s *DungeonService) Create(ctx context.Context, envID uuid.UUID, input DungeonInput) (*domain.Dungeon, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if _, err := s.envRepo.GetByID(ctx, envID); err != nil {
		return nil, translate(err)
	}

	want := input.Category.SlotCount()
	if len(input.Slots) != want {
		return nil, fmt.Errorf("%w: %s needs %d slots, got %d", domain.ErrInvalidComposition, input.Category, want, len(input.Slots))
	}

	dungeon := &domain.Dungeon{
		ID:            uuid.New(),
		EnvironmentID: envID,
		Name:          name,
		Category:      input.Category,
		CreatedAt:     time.Now(),
		Slots:         make([]domain.DungeonSlot, 0, len(input.Slots)),
	}

	last := len(input.Slots) - 1
	for i, in := range input.Slots {
		if (in.CardID == nil) == (in.LeaderCardID == nil) {
			return nil, fmt.Errorf("%w: slot %d must name exactly one card or leader", domain.ErrInvalidComposition, i)
		}

		wantLeader := input.Category.RequiresLeader() && i == last
		if wantLeader && in.LeaderCardID == nil {
			return nil, fmt.Errorf("%w: slot %d must hold a leader", domain.ErrInvalidComposition, i)
		}
		if !wantLeader && in.LeaderCardID != nil {
			return nil, fmt.Errorf("%w: slot %d cannot hold a leader", domain.ErrInvalidComposition, i)
		}

		slot := domain.DungeonSlot{Position: i}
		if in.LeaderCardID != nil {
			leader, err := s.leaderRepo.GetByID(ctx, *in.LeaderCardID)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, translate(err))
			}
			if leader.EnvironmentID != envID {
				return nil, fmt.Errorf("slot %d: %w", i, domain.ErrForeignCard)
			}
			slot.LeaderCardID = &leader.ID
			slot.LeaderCard = leader
		} else {
			card, err := s.cardRepo.GetByID(ctx, *in.CardID)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, translate(err))
			}
			if card.EnvironmentID != envID {
				return nil, fmt.Errorf("slot %d: %w", i, domain.ErrForeignCard)
			}
			slot.CardID = &card.ID
			slot.Card = card
		}
		dungeon.Slots = append(dungeon.Slots, slot)
	}

	if err := s.dungeonRepo.Create(ctx, dungeon); err != nil {
		return nil, translate(err)
	}
	return dungeon, nil
}

// Get returns a dungeon only if it belongs to the environment.
func (s *DungeonService) Get(ctx context.Context, envID, dungeonID uuid.UUID) (*domain.Dungeon, error) {
	dungeon, err := s.dungeonRepo.GetByID(ctx, dungeonID)
	if err != nil {
		return nil, translate(err)
	}
	if dungeon.EnvironmentID != envID {
		return nil, domain.ErrNotFound
	}
	return dungeon, nil
}

func (s *DungeonService) List(ctx context.Context, envID uuid.UUID) ([]*domain.Dungeon, error) {
	return s.dungeonRepo.GetByEnvironmentID(ctx, envID)
}

// Delete fails with domain.ErrInUse once battles were fought in the dungeon.
func (s *DungeonService) Delete(ctx context.Context, envID, dungeonID uuid.UUID) error {
	if _, err := s.Get(ctx, envID, dungeonID); err != nil {
		return err
	}
	return translate(s.dungeonRepo.Delete(ctx, dungeonID))
}
