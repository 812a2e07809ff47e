package service

import (
	"errors"

	"github.com/dom/dungeon-deck/internal/config"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/dom/dungeon-deck/internal/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Publisher delivers realtime events to a user's open connections.
type Publisher interface {
	Publish(userID uuid.UUID, msg *websocket.Message)
}

type Services struct {
	Auth        *AuthService
	User        *UserService
	Environment *EnvironmentService
	Card        *CardService
	Dungeon     *DungeonService
	Game        *GameService
	Deck        *DeckService
	Battle      *BattleService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, publisher Publisher) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg),
		User:        NewUserService(repos.User),
		Environment: NewEnvironmentService(repos.Environment),
		Card:        NewCardService(repos.Environment, repos.Card, repos.LeaderCard),
		Dungeon:     NewDungeonService(repos.Environment, repos.Card, repos.LeaderCard, repos.Dungeon),
		Game:        NewGameService(repos.Environment, repos.Card, repos.Game, repos.PlayerCard),
		Deck:        NewDeckService(repos.Game, repos.PlayerCard, repos.Deck),
		Battle:      NewBattleService(repos.Game, repos.Deck, repos.Dungeon, repos.Battle, publisher),
	}
}

// translate maps storage errors onto domain errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrInUse
	}
	return err
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
