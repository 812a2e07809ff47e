package postgres

import (
	"context"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type environmentRepository struct {
	db *gorm.DB
}

func NewEnvironmentRepository(db *gorm.DB) *environmentRepository {
	return &environmentRepository{db: db}
}

func (r *environmentRepository) Create(ctx context.Context, env *domain.Environment) error {
	return r.db.WithContext(ctx).Create(env).Error
}

func (r *environmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Environment, error) {
	var env domain.Environment
	err := r.db.WithContext(ctx).First(&env, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *environmentRepository) GetAll(ctx context.Context) ([]*domain.Environment, error) {
	var envs []*domain.Environment
	err := r.db.WithContext(ctx).Order("name ASC").Find(&envs).Error
	if err != nil {
		return nil, err
	}
	return envs, nil
}

func (r *environmentRepository) Update(ctx context.Context, env *domain.Environment) error {
	return r.db.WithContext(ctx).Save(env).Error
}

// Delete removes the environment and all of its content. It fails with
// domain.ErrInUse while any game is still played in it.
func (r *environmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var games int64
		if err := tx.Model(&domain.Game{}).Where("environment_id = ?", id).Count(&games).Error; err != nil {
			return err
		}
		if games > 0 {
			return domain.ErrInUse
		}

		dungeonIDs := tx.Model(&domain.Dungeon{}).Select("id").Where("environment_id = ?", id)
		if err := tx.Where("dungeon_id IN (?)", dungeonIDs).Delete(&domain.DungeonSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Dungeon{}, "environment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.LeaderCard{}, "environment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Card{}, "environment_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Environment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
