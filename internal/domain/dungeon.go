package domain

import (
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dungeon struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	EnvironmentID uuid.UUID       `json:"environmentId" gorm:"type:uuid;not null;index"`
	Name          string          `json:"name" gorm:"not null"`
	Category      battle.Category `json:"category" gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Relations
	Slots []DungeonSlot `json:"slots" gorm:"foreignKey:DungeonID;constraint:OnDelete:CASCADE"`
}

func (d *Dungeon) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DungeonSlot is one ordered position in a dungeon. Exactly one of CardID and
// LeaderCardID is set.
type DungeonSlot struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	DungeonID    uuid.UUID  `json:"dungeonId" gorm:"type:uuid;not null;uniqueIndex:idx_slot_dungeon_position"`
	Position     int        `json:"position" gorm:"not null;uniqueIndex:idx_slot_dungeon_position"`
	CardID       *uuid.UUID `json:"cardId" gorm:"type:uuid"`
	LeaderCardID *uuid.UUID `json:"leaderCardId" gorm:"type:uuid"`

	// Relations
	Card       *Card       `json:"card,omitempty" gorm:"foreignKey:CardID"`
	LeaderCard *LeaderCard `json:"leaderCard,omitempty" gorm:"foreignKey:LeaderCardID"`
}

func (s *DungeonSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsLeader reports whether the slot holds a leader card
func (s *DungeonSlot) IsLeader() bool {
	return s.LeaderCardID != nil
}
