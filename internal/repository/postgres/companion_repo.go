package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"gorm.io/gorm"
)

type companionRepository struct {
	db *gorm.DB
}

func NewCompanionRepository(db *gorm.DB) *companionRepository {
	return &companionRepository{db: db}
}

func (r *companionRepository) Create(ctx context.Context, companion *domain.Companion) error {
	return r.db.WithContext(ctx).Create(companion).Error
}

func (r *companionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Companion, error) {
	var companion domain.Companion
	err := r.db.WithContext(ctx).First(&companion, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanionNotFound
		}
		return nil, err
	}
	return &companion, nil
}

func (r *companionRepository) GetByCharacter(ctx context.Context, characterID, userID uuid.UUID) ([]*domain.Companion, error) {
	var companions []*domain.Companion
	err := r.db.WithContext(ctx).
		Where("character_id = ? AND user_id = ?", characterID, userID).
		Order("created_at ASC").
		Find(&companions).Error
	if err != nil {
		return nil, err
	}
	return companions, nil
}

func (r *companionRepository) Update(ctx context.Context, companion *domain.Companion) error {
	return r.db.WithContext(ctx).Save(companion).Error
}

func (r *companionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Companion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCompanionNotFound
	}
	return nil
}
