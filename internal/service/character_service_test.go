package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository/postgres"
	"github.com/mparker/character-vault/internal/service"
	"github.com/mparker/character-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCharacterService(t *testing.T) (*service.CharacterService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewCharacterService(repos.Character, repos.Campaign), testDB
}

func TestCharacterService_CreateSeedsHitPoints(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)

	character, err := svc.Create(ctx, userID, service.CreateCharacterInput{
		CampaignID:   campaign.ID,
		Name:         "Grog",
		Class:        "barbarian",
		Level:        1,
		Constitution: 16,
	})
	require.NoError(t, err)

	// d12 + CON mod (+3)
	assert.Equal(t, 15, character.MaxHP)
	require.NotNil(t, character.CurrentHP)
	assert.Equal(t, 15, *character.CurrentHP)
	assert.Equal(t, 10, character.Strength, "unset scores default to 10")
}

func TestCharacterService_CreateValidation(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)

	_, err := svc.Create(ctx, userID, service.CreateCharacterInput{CampaignID: campaign.ID, Name: "  ", Level: 1})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.Create(ctx, userID, service.CreateCharacterInput{CampaignID: campaign.ID, Name: "Grog", Level: 21})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = svc.Create(ctx, userID, service.CreateCharacterInput{CampaignID: uuid.New(), Name: "Grog", Level: 1})
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestCharacterService_SaveSheetNormalizesAndClamps(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).Build(t, testDB.DB)

	overMax := 99
	sheet, err := svc.SaveSheet(ctx, character.ID, userID, service.SaveSheetInput{
		Name:      "Theren",
		Class:     "wizard",
		Level:     2,
		MaxHP:     14,
		CurrentHP: &overMax,
		Details: domain.Details{
			Items: []domain.Item{
				{Name: "Cloak"},
				{Name: "Staff"},
			},
			Inventory: "Torch",
		},
	})
	require.NoError(t, err)

	// Items get ids and positional sort keys; the legacy line migrates.
	require.Len(t, sheet.Details.Items, 3)
	for i, item := range sheet.Details.Items {
		assert.NotEmpty(t, item.ID)
		require.NotNil(t, item.SortOrder)
		assert.Equal(t, i, *item.SortOrder)
	}
	assert.Equal(t, "Torch", sheet.Details.Items[2].Name)

	// Stored current HP clamps down to the recomputed max.
	require.NotNil(t, sheet.Character.CurrentHP)
	assert.Equal(t, 14, *sheet.Character.CurrentHP)
	assert.Equal(t, 14, sheet.Derived.CurrentHP)
}

func TestCharacterService_SaveSheetRewritesSpellBlob(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).
		WithRawDetails(`{"spells":{"level1":"Shield\nMage Armor — at dawn"}}`).
		Build(t, testDB.DB)

	sheet, err := svc.GetSheet(ctx, character.ID, userID)
	require.NoError(t, err)
	require.Len(t, sheet.Details.Spells["level1"], 2)
	assert.Equal(t, "Mage Armor", sheet.Details.Spells["level1"][1].Name)
	assert.Equal(t, "at dawn", sheet.Details.Spells["level1"][1].Note)

	// A save persists the array shape; the string blob cannot come back.
	saved, err := svc.SaveSheet(ctx, character.ID, userID, service.SaveSheetInput{
		Name:    character.Name,
		Level:   1,
		Details: sheet.Details,
	})
	require.NoError(t, err)
	assert.Contains(t, string(saved.Character.Details), `"spells":{"level1":[`)
}

func TestCharacterService_PrepareSpell(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	// Level 1 wizard, INT 8: prepared cap is floored at 1.
	character := testutil.NewCharacterBuilder(userID, campaign.ID).
		WithClass("wizard").
		WithLevel(1).
		WithScore("intelligence", 8).
		Build(t, testDB.DB)

	sheet, err := svc.PrepareSpell(ctx, character.ID, userID, 1, "Shield")
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.PreparedCount)

	// Duplicate names are rejected case-insensitively.
	_, err = svc.PrepareSpell(ctx, character.ID, userID, 1, "shield")
	assert.ErrorIs(t, err, domain.ErrSpellAlreadyPrepared)

	// The cap is reached; a second leveled spell is rejected.
	_, err = svc.PrepareSpell(ctx, character.ID, userID, 1, "Mage Armor")
	assert.ErrorIs(t, err, domain.ErrPreparedLimitReached)

	// Cantrips never count against the cap.
	sheet, err = svc.PrepareSpell(ctx, character.ID, userID, 0, "Light")
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.PreparedCount)
}

func TestCharacterService_PrepareSpellValidation(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).Build(t, testDB.DB)

	_, err := svc.PrepareSpell(ctx, character.ID, userID, 10, "Wish")
	assert.ErrorIs(t, err, domain.ErrInvalidSpellLevel)

	_, err = svc.PrepareSpell(ctx, character.ID, userID, 1, "   ")
	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestCharacterService_UnprepareSpell(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).
		WithClass("cleric").
		WithLevel(3).
		WithScore("wisdom", 16).
		Build(t, testDB.DB)

	_, err := svc.PrepareSpell(ctx, character.ID, userID, 1, "Bless")
	require.NoError(t, err)

	sheet, err := svc.UnprepareSpell(ctx, character.ID, userID, 1, "bless")
	require.NoError(t, err)
	assert.Equal(t, 0, sheet.PreparedCount)

	_, err = svc.UnprepareSpell(ctx, character.ID, userID, 1, "Bless")
	assert.ErrorIs(t, err, domain.ErrSpellNotFound)
}

func TestCharacterService_CorruptDetailsStillRenders(t *testing.T) {
	svc, testDB := newCharacterService(t)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	// Valid jsonb, wrong shape: the column accepts it, the decoder cannot.
	character := testutil.NewCharacterBuilder(userID, campaign.ID).
		WithRawDetails(`[1,2,3]`).
		Build(t, testDB.DB)

	sheet, err := svc.GetSheet(ctx, character.ID, userID)
	require.NoError(t, err)
	assert.Empty(t, sheet.Details.Items)
	assert.Equal(t, 10, sheet.Derived.ArmorClass)
}
