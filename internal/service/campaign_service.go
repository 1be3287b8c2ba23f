package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
)

type CampaignService struct {
	campaignRepo repository.CampaignRepository
}

func NewCampaignService(campaignRepo repository.CampaignRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo}
}

type CreateCampaignInput struct {
	Name        string
	Description string
}

func (s *CampaignService) Create(ctx context.Context, ownerID uuid.UUID, input CreateCampaignInput) (*domain.Campaign, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	campaign := &domain.Campaign{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Campaign, error) {
	return s.campaignRepo.GetByOwner(ctx, ownerID)
}

// Delete removes a campaign and, with it, every character it contains.
func (s *CampaignService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.campaignRepo.Delete(ctx, id, ownerID)
}
