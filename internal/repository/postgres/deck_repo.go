package postgres

import (
	"context"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deckRepository struct {
	db *gorm.DB
}

func NewDeckRepository(db *gorm.DB) *deckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(deck).Error; err != nil {
			return err
		}
		return insertDeckCards(tx, deck)
	})
}

func (r *deckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var deck domain.Deck
	err := r.withCards(r.db.WithContext(ctx)).First(&deck, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.Deck, error) {
	var decks []*domain.Deck
	err := r.withCards(r.db.WithContext(ctx)).
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&decks).Error
	if err != nil {
		return nil, err
	}
	return decks, nil
}

func (r *deckRepository) ReplaceCards(ctx context.Context, deck *domain.Deck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Deck{}).Where("id = ?", deck.ID).Update("name", deck.Name)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&domain.DeckCard{}, "deck_id = ?", deck.ID).Error; err != nil {
			return err
		}
		return insertDeckCards(tx, deck)
	})
}

func (r *deckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.DeckCard{}, "deck_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Deck{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *deckRepository) withCards(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Cards.PlayerCard.Card")
}

func insertDeckCards(tx *gorm.DB, deck *domain.Deck) error {
	for i := range deck.Cards {
		deck.Cards[i].ID = uuid.Nil
		deck.Cards[i].DeckID = deck.ID
		deck.Cards[i].Position = i
	}
	if len(deck.Cards) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&deck.Cards).Error
}
