package testutil

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthToken mints an HS256 token the way the external auth provider does,
// signed with the shared test secret.
func AuthToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// CampaignBuilder creates test campaigns with a builder pattern
type CampaignBuilder struct {
	ownerID     uuid.UUID
	name        string
	description string
}

// NewCampaignBuilder creates a new CampaignBuilder with default values
func NewCampaignBuilder(ownerID uuid.UUID) *CampaignBuilder {
	return &CampaignBuilder{
		ownerID: ownerID,
		name:    fmt.Sprintf("campaign_%s", uuid.New().String()[:8]),
	}
}

// WithName sets the campaign name
func (b *CampaignBuilder) WithName(name string) *CampaignBuilder {
	b.name = name
	return b
}

// WithDescription sets the campaign description
func (b *CampaignBuilder) WithDescription(description string) *CampaignBuilder {
	b.description = description
	return b
}

// Build creates the campaign in the database
func (b *CampaignBuilder) Build(t *testing.T, db *gorm.DB) *domain.Campaign {
	t.Helper()

	campaign := &domain.Campaign{
		ID:          uuid.New(),
		OwnerID:     b.ownerID,
		Name:        b.name,
		Description: b.description,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return campaign
}

// CharacterBuilder creates test characters with a builder pattern
type CharacterBuilder struct {
	userID     uuid.UUID
	campaignID uuid.UUID
	name       string
	class      string
	level      int
	scores     map[string]int
	details    *domain.Details
	rawDetails []byte
}

// NewCharacterBuilder creates a new CharacterBuilder with default values
func NewCharacterBuilder(userID, campaignID uuid.UUID) *CharacterBuilder {
	return &CharacterBuilder{
		userID:     userID,
		campaignID: campaignID,
		name:       fmt.Sprintf("character_%s", uuid.New().String()[:8]),
		class:      "fighter",
		level:      1,
		scores:     map[string]int{},
	}
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.name = name
	return b
}

// WithClass sets the character class
func (b *CharacterBuilder) WithClass(class string) *CharacterBuilder {
	b.class = class
	return b
}

// WithLevel sets the character level
func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	b.level = level
	return b
}

// WithScore sets one ability score by column name (e.g. "wisdom")
func (b *CharacterBuilder) WithScore(ability string, score int) *CharacterBuilder {
	b.scores[ability] = score
	return b
}

// WithDetails sets the details blob from a structured value
func (b *CharacterBuilder) WithDetails(details domain.Details) *CharacterBuilder {
	b.details = &details
	return b
}

// WithRawDetails sets the details blob verbatim, for legacy-shape payloads
func (b *CharacterBuilder) WithRawDetails(raw string) *CharacterBuilder {
	b.rawDetails = []byte(raw)
	return b
}

// Build creates the character in the database
func (b *CharacterBuilder) Build(t *testing.T, db *gorm.DB) *domain.Character {
	t.Helper()

	character := &domain.Character{
		ID:           uuid.New(),
		UserID:       b.userID,
		CampaignID:   b.campaignID,
		Name:         b.name,
		Class:        b.class,
		Level:        b.level,
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}

	for ability, score := range b.scores {
		switch ability {
		case "strength":
			character.Strength = score
		case "dexterity":
			character.Dexterity = score
		case "constitution":
			character.Constitution = score
		case "intelligence":
			character.Intelligence = score
		case "wisdom":
			character.Wisdom = score
		case "charisma":
			character.Charisma = score
		default:
			t.Fatalf("unknown ability column %q", ability)
		}
	}

	blob := b.rawDetails
	if blob == nil {
		details := domain.Details{}
		if b.details != nil {
			details = *b.details
		}
		encoded, err := json.Marshal(details)
		if err != nil {
			t.Fatalf("failed to marshal details: %v", err)
		}
		blob = encoded
	}
	character.Details = datatypes.JSON(blob)

	if err := db.Create(character).Error; err != nil {
		t.Fatalf("failed to create character: %v", err)
	}
	return character
}
