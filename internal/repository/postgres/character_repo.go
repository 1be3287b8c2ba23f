package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"gorm.io/gorm"
)

type characterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *characterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *domain.Character) error {
	return r.db.WithContext(ctx).Create(character).Error
}

func (r *characterRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Character, error) {
	var character domain.Character
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		First(&character, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) GetByCampaign(ctx context.Context, campaignID, userID uuid.UUID) ([]*domain.Character, error) {
	var characters []*domain.Character
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		Order("created_at ASC").
		Find(&characters).Error
	if err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *characterRepository) Update(ctx context.Context, character *domain.Character) error {
	return r.db.WithContext(ctx).Save(character).Error
}

func (r *characterRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Character{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
