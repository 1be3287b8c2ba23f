package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
)

// Every read and write is scoped by the requesting user's id: ownership is
// enforced by the store, mirroring the row-level security of the backing
// database, not by the calculation core.

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Campaign, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type CharacterRepository interface {
	Create(ctx context.Context, character *domain.Character) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Character, error)
	GetByCampaign(ctx context.Context, campaignID, userID uuid.UUID) ([]*domain.Character, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type CompanionRepository interface {
	Create(ctx context.Context, companion *domain.Companion) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Companion, error)
	GetByCharacter(ctx context.Context, characterID, userID uuid.UUID) ([]*domain.Companion, error)
	Update(ctx context.Context, companion *domain.Companion) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Repositories struct {
	Campaign  CampaignRepository
	Character CharacterRepository
	Companion CompanionRepository
}
