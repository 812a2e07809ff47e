package domain

import (
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game is a player's save in one environment. It owns the player's card
// instances, decks and battle history.
type Game struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	EnvironmentID uuid.UUID `json:"environmentId" gorm:"type:uuid;not null"`
	Name          string    `json:"name" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Relations
	Environment *Environment `json:"environment,omitempty" gorm:"foreignKey:EnvironmentID"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// PlayerCard is a card instance owned by a game. Boosts only ever grow.
type PlayerCard struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	GameID      uuid.UUID `json:"gameId" gorm:"type:uuid;not null;index"`
	CardID      uuid.UUID `json:"cardId" gorm:"type:uuid;not null"`
	DamageBoost int       `json:"damageBoost" gorm:"not null;default:0"`
	HealthBoost int       `json:"healthBoost" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Card *Card `json:"card,omitempty" gorm:"foreignKey:CardID"`
}

func (p *PlayerCard) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Combatant converts the instance into its battle form. Card must be loaded.
func (p *PlayerCard) Combatant() battle.PlayerCard {
	return battle.PlayerCard{
		Base:        p.Card.Stats(),
		DamageBoost: p.DamageBoost,
		HealthBoost: p.HealthBoost,
	}
}
