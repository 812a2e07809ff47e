package domain

import (
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Battle is the persisted, append-only record of a resolved fight.
type Battle struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	GameID        uuid.UUID      `json:"gameId" gorm:"type:uuid;not null;index"`
	DeckID        uuid.UUID      `json:"deckId" gorm:"type:uuid;not null"`
	DungeonID     uuid.UUID      `json:"dungeonId" gorm:"type:uuid;not null"`
	DeckSnapshot  datatypes.JSON `json:"deckSnapshot" gorm:"type:jsonb"` // effective stats of every deck card at fight time
	PlayerWins    int            `json:"playerWins" gorm:"not null"`
	DungeonWins   int            `json:"dungeonWins" gorm:"not null"`
	Outcome       battle.Outcome `json:"outcome" gorm:"type:varchar(16);not null"`
	RewardClaimed bool           `json:"rewardClaimed" gorm:"not null;default:false"`
	RewardCardID  *uuid.UUID     `json:"rewardCardId" gorm:"type:uuid"`
	CreatedAt     time.Time      `json:"createdAt"`

	// Relations
	Dungeon *Dungeon `json:"dungeon,omitempty" gorm:"foreignKey:DungeonID"`
	Clashes []Clash  `json:"clashes" gorm:"foreignKey:BattleID;constraint:OnDelete:CASCADE"`
}

func (b *Battle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DeckSnapshotCard is one deck card as it fought: its effective stats at
// fight time, boosts included.
type DeckSnapshotCard struct {
	PlayerCardID uuid.UUID      `json:"playerCardId"`
	Name         string         `json:"name"`
	Damage       int            `json:"damage"`
	Health       int            `json:"health"`
	Element      battle.Element `json:"element"`
}

type Clash struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	BattleID        uuid.UUID      `json:"battleId" gorm:"type:uuid;not null;index"`
	Order           int            `json:"order" gorm:"column:clash_order;not null"`
	Winner          battle.Side    `json:"winner" gorm:"type:varchar(16);not null"`
	Reason          battle.Reason  `json:"reason" gorm:"type:varchar(32);not null"`
	PlayerCardName  string         `json:"playerCardName"`
	PlayerDamage    int            `json:"playerDamage"`
	PlayerHealth    int            `json:"playerHealth"`
	PlayerElement   battle.Element `json:"playerElement" gorm:"type:varchar(16)"`
	DungeonCardName string         `json:"dungeonCardName"`
	DungeonDamage   int            `json:"dungeonDamage"`
	DungeonHealth   int            `json:"dungeonHealth"`
	DungeonElement  battle.Element `json:"dungeonElement" gorm:"type:varchar(16)"`
}

func (c *Clash) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewClash builds the stored form of a resolved clash.
func NewClash(battleID uuid.UUID, c battle.Clash) Clash {
	return Clash{
		BattleID:        battleID,
		Order:           c.Order,
		Winner:          c.Winner,
		Reason:          c.Reason,
		PlayerCardName:  c.Player.Name,
		PlayerDamage:    c.Player.Damage,
		PlayerHealth:    c.Player.Health,
		PlayerElement:   c.Player.Element,
		DungeonCardName: c.Dungeon.Name,
		DungeonDamage:   c.Dungeon.Damage,
		DungeonHealth:   c.Dungeon.Health,
		DungeonElement:  c.Dungeon.Element,
	}
}
