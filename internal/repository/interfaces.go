package repository

import (
	"context"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	// Replace stores session as the user's only session.
	Replace(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type EnvironmentRepository interface {
	Create(ctx context.Context, env *domain.Environment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Environment, error)
	GetAll(ctx context.Context) ([]*domain.Environment, error)
	Update(ctx context.Context, env *domain.Environment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LeaderCardRepository interface {
	Create(ctx context.Context, leader *domain.LeaderCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaderCard, error)
	GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.LeaderCard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DungeonRepository interface {
	// Create stores the dungeon together with its slots
	Create(ctx context.Context, dungeon *domain.Dungeon) error
	// GetByID loads slots ordered by position with their cards and leaders
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dungeon, error)
	GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.Dungeon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GameRepository interface {
	// Create stores the game and its starting card instances
	Create(ctx context.Context, game *domain.Game, cards []*domain.PlayerCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlayerCardRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PlayerCard, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.PlayerCard, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.PlayerCard, error)
}

type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	// GetByID loads deck cards ordered by position with their base cards
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.Deck, error)
	// ReplaceCards swaps the deck's name and card list in one transaction
	ReplaceCards(ctx context.Context, deck *domain.Deck) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BattleRepository interface {
	// Create stores the battle and its clashes atomically
	Create(ctx context.Context, b *domain.Battle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID, limit, offset int) ([]*domain.Battle, error)
	// ClaimReward adds the reward to the player card and marks the battle
	// claimed in one transaction. It fails with domain.ErrRewardUnavailable if
	// the battle was lost or already claimed.
	ClaimReward(ctx context.Context, battleID, playerCardID uuid.UUID, reward battle.Reward) (*domain.PlayerCard, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Environment EnvironmentRepository
	Card        CardRepository
	LeaderCard  LeaderCardRepository
	Dungeon     DungeonRepository
	Game        GameRepository
	PlayerCard  PlayerCardRepository
	Deck        DeckRepository
	Battle      BattleRepository
}
