package postgres

import (
	"context"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game, cards []*domain.PlayerCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(game).Error; err != nil {
			return err
		}
		for _, c := range cards {
			c.GameID = game.ID
		}
		if len(cards) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&cards).Error
	})
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Preload("Environment").
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Preload("Environment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Game{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteGames(tx, []uuid.UUID{id})
	})
}

// deleteGames removes games and everything they own. It must run inside a
// transaction.
func deleteGames(tx *gorm.DB, gameIDs []uuid.UUID) error {
	if len(gameIDs) == 0 {
		return nil
	}

	battleIDs := tx.Model(&domain.Battle{}).Select("id").Where("game_id IN ?", gameIDs)
	if err := tx.Where("battle_id IN (?)", battleIDs).Delete(&domain.Clash{}).Error; err != nil {
		return err
	}
	if err := tx.Where("game_id IN ?", gameIDs).Delete(&domain.Battle{}).Error; err != nil {
		return err
	}

	deckIDs := tx.Model(&domain.Deck{}).Select("id").Where("game_id IN ?", gameIDs)
	if err := tx.Where("deck_id IN (?)", deckIDs).Delete(&domain.DeckCard{}).Error; err != nil {
		return err
	}
	if err := tx.Where("game_id IN ?", gameIDs).Delete(&domain.Deck{}).Error; err != nil {
		return err
	}
	if err := tx.Where("game_id IN ?", gameIDs).Delete(&domain.PlayerCard{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", gameIDs).Delete(&domain.Game{}).Error
}

type playerCardRepository struct {
	db *gorm.DB
}

func NewPlayerCardRepository(db *gorm.DB) *playerCardRepository {
	return &playerCardRepository{db: db}
}

func (r *playerCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlayerCard, error) {
	var card domain.PlayerCard
	err := r.db.WithContext(ctx).Preload("Card").First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *playerCardRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.PlayerCard, error) {
	var cards []*domain.PlayerCard
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *playerCardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.PlayerCard, error) {
	var cards []*domain.PlayerCard
	if len(ids) == 0 {
		return cards, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("id IN ?", ids).
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}
