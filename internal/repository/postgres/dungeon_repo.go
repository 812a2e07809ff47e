package postgres

import (
	"context"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dungeonRepository struct {
	db *gorm.DB
}

func NewDungeonRepository(db *gorm.DB) *dungeonRepository {
	return &dungeonRepository{db: db}
}

func (r *dungeonRepository) Create(ctx context.Context, dungeon *domain.Dungeon) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(dungeon).Error; err != nil {
			return err
		}
		for i := range dungeon.Slots {
			dungeon.Slots[i].DungeonID = dungeon.ID
		}
		if len(dungeon.Slots) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&dungeon.Slots).Error
	})
}

func (r *dungeonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dungeon, error) {
	var dungeon domain.Dungeon
	err := r.withSlots(r.db.WithContext(ctx)).First(&dungeon, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dungeon, nil
}

func (r *dungeonRepository) GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.Dungeon, error) {
	var dungeons []*domain.Dungeon
	err := r.withSlots(r.db.WithContext(ctx)).
		Where("environment_id = ?", environmentID).
		Order("name ASC").
		Find(&dungeons).Error
	if err != nil {
		return nil, err
	}
	return dungeons, nil
}

func (r *dungeonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.DungeonSlot{}, "dungeon_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Dungeon{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *dungeonRepository) withSlots(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Slots.Card").
		Preload("Slots.LeaderCard.Card")
}
