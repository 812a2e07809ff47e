package postgres

import (
	"fmt"

	"github.com/dom/dungeon-deck/internal/config"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in migration order
var Models = []interface{}{
	&domain.User{},
	&domain.UserSession{},
	&domain.Environment{},
	&domain.Card{},
	&domain.LeaderCard{},
	&domain.Dungeon{},
	&domain.DungeonSlot{},
	&domain.Game{},
	&domain.PlayerCard{},
	&domain.Deck{},
	&domain.DeckCard{},
	&domain.Battle{},
	&domain.Clash{},
}

func NewConnection(driver, databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(databaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if driver == config.DriverSQLite {
		// a single connection keeps the foreign_keys pragma in effect
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Environment: NewEnvironmentRepository(db),
		Card:        NewCardRepository(db),
		LeaderCard:  NewLeaderCardRepository(db),
		Dungeon:     NewDungeonRepository(db),
		Game:        NewGameRepository(db),
		PlayerCard:  NewPlayerCardRepository(db),
		Deck:        NewDeckRepository(db),
		Battle:      NewBattleRepository(db),
	}
}
