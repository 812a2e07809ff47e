package postgres

import (
	"context"
	"errors"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type battleRepository struct {
	db *gorm.DB
}

func NewBattleRepository(db *gorm.DB) *battleRepository {
	return &battleRepository{db: db}
}

func (r *battleRepository) Create(ctx context.Context, b *domain.Battle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		for i := range b.Clashes {
			b.Clashes[i].BattleID = b.ID
		}
		if len(b.Clashes) == 0 {
			return nil
		}
		return tx.Create(&b.Clashes).Error
	})
}

func (r *battleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	var b domain.Battle
	err := r.db.WithContext(ctx).
		Preload("Dungeon").
		Preload("Clashes", func(db *gorm.DB) *gorm.DB {
			return db.Order("clash_order ASC")
		}).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *battleRepository) GetByGameID(ctx context.Context, gameID uuid.UUID, limit, offset int) ([]*domain.Battle, error) {
	var battles []*domain.Battle
	err := r.db.WithContext(ctx).
		Preload("Dungeon").
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *battleRepository) ClaimReward(ctx context.Context, battleID, playerCardID uuid.UUID, reward battle.Reward) (*domain.PlayerCard, error) {
	var card domain.PlayerCard

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Battle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", battleID).Error; err != nil {
			return err
		}
		if b.Outcome != battle.OutcomeWon || b.RewardClaimed {
			return domain.ErrRewardUnavailable
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&card, "id = ? AND game_id = ?", playerCardID, b.GameID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCardNotOwned
		}
		if err != nil {
			return err
		}

		// the flag guard makes a concurrent second claim a no-op
		claimed := tx.Model(&domain.Battle{}).
			Where("id = ? AND reward_claimed = ?", b.ID, false).
			Updates(map[string]interface{}{
				"reward_claimed": true,
				"reward_card_id": card.ID,
			})
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			return domain.ErrRewardUnavailable
		}

		err = tx.Model(&domain.PlayerCard{}).
			Where("id = ?", card.ID).
			Updates(map[string]interface{}{
				"damage_boost": gorm.Expr("damage_boost + ?", reward.DamageBoost),
				"health_boost": gorm.Expr("health_boost + ?", reward.HealthBoost),
			}).Error
		if err != nil {
			return err
		}

		return tx.Preload("Card").First(&card, "id = ?", card.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}
