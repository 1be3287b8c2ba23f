package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
)

type CompanionService struct {
	companionRepo repository.CompanionRepository
	characterRepo repository.CharacterRepository
}

func NewCompanionService(companionRepo repository.CompanionRepository, characterRepo repository.CharacterRepository) *CompanionService {
	return &CompanionService{
		companionRepo: companionRepo,
		characterRepo: characterRepo,
	}
}

type CompanionInput struct {
	Name         string
	CreatureType string
	ArmorClass   int
	Speed        int
	MaxHP        int
	CurrentHP    *int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	Notes string
}

func (s *CompanionService) Create(ctx context.Context, characterID, userID uuid.UUID, input CompanionInput) (*domain.Companion, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if _, err := s.characterRepo.GetByID(ctx, characterID, userID); err != nil {
		return nil, err
	}

	companion := &domain.Companion{
		ID:           uuid.New(),
		CharacterID:  characterID,
		UserID:       userID,
		Name:         strings.TrimSpace(input.Name),
		CreatureType: input.CreatureType,
		ArmorClass:   input.ArmorClass,
		Speed:        input.Speed,
		MaxHP:        input.MaxHP,
		CurrentHP:    input.CurrentHP,
		Strength:     defaultScore(input.Strength),
		Dexterity:    defaultScore(input.Dexterity),
		Constitution: defaultScore(input.Constitution),
		Intelligence: defaultScore(input.Intelligence),
		Wisdom:       defaultScore(input.Wisdom),
		Charisma:     defaultScore(input.Charisma),
		Notes:        input.Notes,
	}
	if err := s.companionRepo.Create(ctx, companion); err != nil {
		return nil, err
	}
	return companion, nil
}

func (s *CompanionService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Companion, error) {
	return s.companionRepo.GetByID(ctx, id, userID)
}

func (s *CompanionService) ListByCharacter(ctx context.Context, characterID, userID uuid.UUID) ([]*domain.Companion, error) {
	return s.companionRepo.GetByCharacter(ctx, characterID, userID)
}

func (s *CompanionService) Update(ctx context.Context, id, userID uuid.UUID, input CompanionInput) (*domain.Companion, error) {
	companion, err := s.companionRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	companion.Name = strings.TrimSpace(input.Name)
	companion.CreatureType = input.CreatureType
	companion.ArmorClass = input.ArmorClass
	companion.Speed = input.Speed
	companion.MaxHP = input.MaxHP
	companion.CurrentHP = input.CurrentHP
	companion.Strength = defaultScore(input.Strength)
	companion.Dexterity = defaultScore(input.Dexterity)
	companion.Constitution = defaultScore(input.Constitution)
	companion.Intelligence = defaultScore(input.Intelligence)
	companion.Wisdom = defaultScore(input.Wisdom)
	companion.Charisma = defaultScore(input.Charisma)
	companion.Notes = input.Notes

	if err := s.companionRepo.Update(ctx, companion); err != nil {
		return nil, err
	}
	return companion, nil
}

func (s *CompanionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.companionRepo.Delete(ctx, id, userID)
}
