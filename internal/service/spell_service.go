package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
	"github.com/mparker/character-vault/internal/rules"
	"github.com/mparker/character-vault/internal/sheet"
	"gorm.io/datatypes"
)

type SpellService struct {
	characterRepo repository.CharacterRepository
	rules         *rules.Client
}

func NewSpellService(characterRepo repository.CharacterRepository, rulesClient *rules.Client) *SpellService {
	return &SpellService{
		characterRepo: characterRepo,
		rules:         rulesClient,
	}
}

// ListSpells returns the selectable spells for a class at a level. The class
// string may be raw user input; it is normalized to its API key first.
func (s *SpellService) ListSpells(ctx context.Context, class string, level int) ([]domain.SpellMeta, error) {
	if level < 0 || level > 9 {
		return nil, domain.ErrInvalidSpellLevel
	}
	return s.rules.ListSpells(ctx, domain.NormalizeClass(class), level)
}

func (s *SpellService) GetSpell(ctx context.Context, index string) (*domain.SpellMeta, error) {
	return s.rules.GetSpell(ctx, index)
}

// BackfillCharacter resolves missing spell indices and fetches uncached
// metadata for one character, persisting whatever the gateway managed to
// return. Lookup failures are non-fatal; the sheet keeps rendering those
// spells by name.
func (s *SpellService) BackfillCharacter(ctx context.Context, id, userID uuid.UUID) (int, error) {
	character, err := s.characterRepo.GetByID(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	var details domain.Details
	if len(character.Details) > 0 {
		if err := json.Unmarshal(character.Details, &details); err != nil {
			return 0, nil
		}
	}
	details = sheet.Normalize(details)

	added := s.rules.Backfill(ctx, &details)

	blob, err := json.Marshal(details)
	if err != nil {
		return added, err
	}
	character.Details = datatypes.JSON(blob)
	if err := s.characterRepo.Update(ctx, character); err != nil {
		return added, err
	}
	return added, nil
}
