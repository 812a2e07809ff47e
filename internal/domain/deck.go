package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Deck struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	GameID    uuid.UUID `json:"gameId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Cards []DeckCard `json:"cards" gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DeckCard places a player card at a position in a deck. A card instance
// appears at most once per deck.
type DeckCard struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	DeckID       uuid.UUID `json:"deckId" gorm:"type:uuid;not null;uniqueIndex:idx_deck_card;uniqueIndex:idx_deck_position"`
	PlayerCardID uuid.UUID `json:"playerCardId" gorm:"type:uuid;not null;uniqueIndex:idx_deck_card"`
	Position     int       `json:"position" gorm:"not null;uniqueIndex:idx_deck_position"`

	// Relations
	PlayerCard *PlayerCard `json:"playerCard,omitempty" gorm:"foreignKey:PlayerCardID;constraint:OnDelete:CASCADE"`
}

func (d *DeckCard) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
