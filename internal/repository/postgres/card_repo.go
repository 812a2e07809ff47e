package postgres

import (
	"context"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("name ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type leaderCardRepository struct {
	db *gorm.DB
}

func NewLeaderCardRepository(db *gorm.DB) *leaderCardRepository {
	return &leaderCardRepository{db: db}
}

func (r *leaderCardRepository) Create(ctx context.Context, leader *domain.LeaderCard) error {
	return r.db.WithContext(ctx).Omit("Card").Create(leader).Error
}

func (r *leaderCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaderCard, error) {
	var leader domain.LeaderCard
	err := r.db.WithContext(ctx).Preload("Card").First(&leader, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &leader, nil
}

func (r *leaderCardRepository) GetByEnvironmentID(ctx context.Context, environmentID uuid.UUID) ([]*domain.LeaderCard, error) {
	var leaders []*domain.LeaderCard
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("environment_id = ?", environmentID).
		Order("name ASC").
		Find(&leaders).Error
	if err != nil {
		return nil, err
	}
	return leaders, nil
}

func (r *leaderCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.LeaderCard{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
