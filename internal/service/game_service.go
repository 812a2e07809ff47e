package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

var ErrEmptyEnvironment = errors.New("environment has no cards to start a game with")

type GameService struct {
	envRepo        repository.EnvironmentRepository
	cardRepo       repository.CardRepository
	gameRepo       repository.GameRepository
	playerCardRepo repository.PlayerCardRepository
}

func NewGameService(envRepo repository.EnvironmentRepository, cardRepo repository.CardRepository, gameRepo repository.GameRepository, playerCardRepo repository.PlayerCardRepository) *GameService {
	return &GameService{
		envRepo:        envRepo,
		cardRepo:       cardRepo,
		gameRepo:       gameRepo,
		playerCardRepo: playerCardRepo,
	}
}

type StartGameInput struct {
	EnvironmentID uuid.UUID
	Name          string
}

// Start creates a game in an environment and hands the player one unboosted
// instance of every card the environment defines.
func (s *GameService) Start(ctx context.Context, userID uuid.UUID, input StartGameInput) (*domain.Game, error) {
	env, err := s.envRepo.GetByID(ctx, input.EnvironmentID)
	if err != nil {
		return nil, translate(err)
	}

	cards, err := s.cardRepo.GetByEnvironmentID(ctx, env.ID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrEmptyEnvironment
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = env.Name
	}

	game := &domain.Game{
		ID:            uuid.New(),
		UserID:        userID,
		EnvironmentID: env.ID,
		Name:          name,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	instances := make([]*domain.PlayerCard, 0, len(cards))
	for _, card := range cards {
		instances = append(instances, &domain.PlayerCard{
			ID:     uuid.New(),
			CardID: card.ID,
		})
	}

	if err := s.gameRepo.Create(ctx, game, instances); err != nil {
		return nil, translate(err)
	}
	game.Environment = env
	return game, nil
}

func (s *GameService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error) {
	return s.gameRepo.GetByUserID(ctx, userID)
}

// Get returns the game if userID owns it. Other users' games are reported as
// missing so their IDs are not disclosed.
func (s *GameService) Get(ctx context.Context, userID, gameID uuid.UUID) (*domain.Game, error) {
	return ownedGame(ctx, s.gameRepo, userID, gameID)
}

func (s *GameService) Delete(ctx context.Context, userID, gameID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, gameID); err != nil {
		return err
	}
	return translate(s.gameRepo.Delete(ctx, gameID))
}

// ListCards returns the game's card instances with their base cards.
func (s *GameService) ListCards(ctx context.Context, userID, gameID uuid.UUID) ([]*domain.PlayerCard, error) {
	if _, err := s.Get(ctx, userID, gameID); err != nil {
		return nil, err
	}
	return s.playerCardRepo.GetByGameID(ctx, gameID)
}

func ownedGame(ctx context.Context, gameRepo repository.GameRepository, userID, gameID uuid.UUID) (*domain.Game, error) {
	game, err := gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, translate(err)
	}
	if game.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return game, nil
}
