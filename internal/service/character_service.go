package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
	"github.com/mparker/character-vault/internal/sheet"
	"gorm.io/datatypes"
)

type CharacterService struct {
	characterRepo repository.CharacterRepository
	campaignRepo  repository.CampaignRepository
}

func NewCharacterService(characterRepo repository.CharacterRepository, campaignRepo repository.CampaignRepository) *CharacterService {
	return &CharacterService{
		characterRepo: characterRepo,
		campaignRepo:  campaignRepo,
	}
}

// CharacterSheet is the view-ready snapshot: the stored record, its
// normalized details and every derived value the sheet displays.
type CharacterSheet struct {
	Character     *domain.Character   `json:"character"`
	Details       domain.Details      `json:"details"`
	Derived       sheet.DerivedStats  `json:"derived"`
	Prepared      *sheet.PreparedInfo `json:"prepared,omitempty"`
	PreparedCount int                 `json:"preparedCount"`
}

type CreateCharacterInput struct {
	CampaignID uuid.UUID
	Name       string
	Class      string
	Race       string
	Level      int
	ArmorClass int
	Speed      int
	MaxHP      int
	CurrentHP  *int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

func (s *CharacterService) Create(ctx context.Context, userID uuid.UUID, input CreateCharacterInput) (*domain.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Level < 1 || input.Level > 20 {
		return nil, domain.ErrInvalidLevel
	}
	if _, err := s.campaignRepo.GetByID(ctx, input.CampaignID); err != nil {
		return nil, err
	}

	character := &domain.Character{
		ID:           uuid.New(),
		UserID:       userID,
		CampaignID:   input.CampaignID,
		Name:         strings.TrimSpace(input.Name),
		Class:        input.Class,
		Race:         input.Race,
		Level:        input.Level,
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
	}

	// Fresh characters without explicit hit points get them from class and
	// level.
	if character.MaxHP == 0 {
		conMod := sheet.AbilityModifier(character.Constitution)
		character.MaxHP = sheet.MaxHPForLevel(character.Class, character.Level, conMod)
	}
	if character.CurrentHP == nil {
		hp := character.MaxHP
		character.CurrentHP = &hp
	}

	details, err := json.Marshal(domain.Details{})
	if err != nil {
		return nil, err
	}
	character.Details = datatypes.JSON(details)

	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) GetSheet(ctx context.Context, id, userID uuid.UUID) (*CharacterSheet, error) {
	character, err := s.characterRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.buildSheet(character), nil
}

func (s *CharacterService) ListByCampaign(ctx context.Context, campaignID, userID uuid.UUID) ([]*domain.Character, error) {
	return s.characterRepo.GetByCampaign(ctx, campaignID, userID)
}

type SaveSheetInput struct {
	Name       string
	Class      string
	Race       string
	Level      int
	Experience int
	ArmorClass int
	Speed      int
	MaxHP      int
	CurrentHP  *int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	Details domain.Details
}

// SaveSheet rewrites the whole record from an in-memory snapshot. The
// details blob is normalized, sort keys are assigned from list position, and
// stored current HP is clamped down to the freshly computed max. Last write
// wins: two saves in quick succession leave the second one in storage.
func (s *CharacterService) SaveSheet(ctx context.Context, id, userID uuid.UUID, input SaveSheetInput) (*CharacterSheet, error) {
	character, err := s.characterRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Level < 1 || input.Level > 20 {
		return nil, domain.ErrInvalidLevel
	}

	character.Name = strings.TrimSpace(input.Name)
	character.Class = input.Class
	character.Race = input.Race
	character.Level = input.Level
	character.Experience = input.Experience
	character.ArmorClass = input.ArmorClass
	character.Speed = input.Speed
	character.MaxHP = input.MaxHP
	character.CurrentHP = input.CurrentHP
	character.Strength = defaultScore(input.Strength)
	character.Dexterity = defaultScore(input.Dexterity)
	character.Constitution = defaultScore(input.Constitution)
	character.Intelligence = defaultScore(input.Intelligence)
	character.Wisdom = defaultScore(input.Wisdom)
	character.Charisma = defaultScore(input.Charisma)

	return s.persist(ctx, character, input.Details)
}

// PrepareSpell adds a learned spell at the given level, enforcing the
// prepared cap (cantrips are exempt) and rejecting duplicates. On rejection
// nothing is written.
func (s *CharacterService) PrepareSpell(ctx context.Context, id, userID uuid.UUID, level int, name string) (*CharacterSheet, error) {
	if level < 0 || level > 9 {
		return nil, domain.ErrInvalidSpellLevel
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	character, err := s.characterRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	details := sheet.Normalize(s.decodeDetails(character))

	key := domain.SpellLevelKey(level)
	for _, ref := range details.Spells[key] {
		if strings.EqualFold(ref.Name, name) {
			return nil, domain.ErrSpellAlreadyPrepared
		}
	}

	if level >= 1 {
		derived := sheet.ComputeDerived(*character, details)
		info := sheet.PreparedSpellInfo(character.Class, derived.Abilities, character.Level, details)
		if info != nil && sheet.CountPreparedSpells(details.Spells) >= info.Total {
			return nil, domain.ErrPreparedLimitReached
		}
	}

	if details.Spells == nil {
		details.Spells = domain.SpellBook{}
	}
	details.Spells[key] = append(details.Spells[key], domain.LearnedSpellRef{Name: name})

	return s.persist(ctx, character, details)
}

func (s *CharacterService) UnprepareSpell(ctx context.Context, id, userID uuid.UUID, level int, name string) (*CharacterSheet, error) {
	if level < 0 || level > 9 {
		return nil, domain.ErrInvalidSpellLevel
	}

	character, err := s.characterRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	details := sheet.Normalize(s.decodeDetails(character))

	key := domain.SpellLevelKey(level)
	list := details.Spells[key]
	kept := make(domain.SpellList, 0, len(list))
	for _, ref := range list {
		if !strings.EqualFold(ref.Name, strings.TrimSpace(name)) {
			kept = append(kept, ref)
		}
	}
	if len(kept) == len(list) {
		return nil, domain.ErrSpellNotFound
	}
	details.Spells[key] = kept

	return s.persist(ctx, character, details)
}

func (s *CharacterService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.characterRepo.Delete(ctx, id, userID)
}

// persist runs the canonical save pipeline: normalize, assign ids and sort
// keys, clamp current HP to the recomputed max, write wholesale.
func (s *CharacterService) persist(ctx context.Context, character *domain.Character, details domain.Details) (*CharacterSheet, error) {
	details = sheet.Normalize(details)

	for i := range details.Items {
		order := i
		details.Items[i].SortOrder = &order
		if details.Items[i].ID == "" {
			details.Items[i].ID = uuid.NewString()
		}
	}

	derived := sheet.ComputeDerived(*character, details)
	if character.CurrentHP != nil && *character.CurrentHP > derived.MaxHP {
		clamped := derived.MaxHP
		character.CurrentHP = &clamped
	}
	if details.CurrentHP != nil && *details.CurrentHP > derived.MaxHP {
		clamped := derived.MaxHP
		details.CurrentHP = &clamped
	}

	blob, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	character.Details = datatypes.JSON(blob)

	if err := s.characterRepo.Update(ctx, character); err != nil {
		return nil, err
	}
	return s.buildSheet(character), nil
}

func (s *CharacterService) buildSheet(character *domain.Character) *CharacterSheet {
	details := sheet.Normalize(s.decodeDetails(character))
	derived := sheet.ComputeDerived(*character, details)
	return &CharacterSheet{
		Character:     character,
		Details:       details,
		Derived:       derived,
		Prepared:      sheet.PreparedSpellInfo(character.Class, derived.Abilities, character.Level, details),
		PreparedCount: sheet.CountPreparedSpells(details.Spells),
	}
}

// decodeDetails tolerates a corrupt blob: the sheet still renders, just
// without its extension record.
func (s *CharacterService) decodeDetails(character *domain.Character) domain.Details {
	var details domain.Details
	if len(character.Details) == 0 {
		return details
	}
	if err := json.Unmarshal(character.Details, &details); err != nil {
		log.Printf("ERROR [character.decodeDetails] characterID=%s: %v", character.ID, err)
		return domain.Details{}
	}
	return details
}

func defaultScore(score int) int {
	if score == 0 {
		return 10
	}
	return score
}
