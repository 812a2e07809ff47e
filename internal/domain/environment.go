package domain

import (
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Environment is a content world that owns cards, leaders and dungeons.
// Players start games inside an environment.
type Environment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Environment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type Card struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	EnvironmentID uuid.UUID      `json:"environmentId" gorm:"type:uuid;not null;uniqueIndex:idx_card_env_name"`
	Name          string         `json:"name" gorm:"not null;uniqueIndex:idx_card_env_name"`
	Damage        int            `json:"damage" gorm:"not null"`
	Health        int            `json:"health" gorm:"not null"`
	Element       battle.Element `json:"element" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Stats returns the card's base battle stats.
func (c *Card) Stats() battle.Stats {
	return battle.Stats{
		Name:    c.Name,
		Damage:  c.Damage,
		Health:  c.Health,
		Element: c.Element,
	}
}

// LeaderCard wraps a base card and doubles one of its stats when placed in a
// dungeon's leader slot.
type LeaderCard struct {
	ID            uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	EnvironmentID uuid.UUID        `json:"environmentId" gorm:"type:uuid;not null;index"`
	CardID        uuid.UUID        `json:"cardId" gorm:"type:uuid;not null"`
	Name          string           `json:"name" gorm:"not null"`
	BoostType     battle.BoostType `json:"boostType" gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time        `json:"createdAt"`

	// Relations
	Card *Card `json:"card,omitempty" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}

func (l *LeaderCard) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
