package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository/postgres"
	"github.com/mparker/character-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCharacterRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)

	character := &domain.Character{
		ID:         uuid.New(),
		UserID:     userID,
		CampaignID: campaign.ID,
		Name:       "Theren",
		Class:      "wizard",
		Level:      3,
		Details:    datatypes.JSON(`{"background":"Sage"}`),
	}
	require.NoError(t, repo.Create(ctx, character))

	got, err := repo.GetByID(ctx, character.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Theren", got.Name)
	assert.Equal(t, "wizard", got.Class)
	assert.NotNil(t, got.Campaign, "campaign relation is preloaded")
	assert.Equal(t, campaign.ID, got.Campaign.ID)
	assert.JSONEq(t, `{"background":"Sage"}`, string(got.Details))
}

func TestCharacterRepository_OwnershipScoping(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	campaign := testutil.NewCampaignBuilder(owner).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(owner, campaign.ID).Build(t, testDB.DB)

	// Another user cannot see, list or delete the character.
	_, err := repo.GetByID(ctx, character.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	list, err := repo.GetByCampaign(ctx, campaign.ID, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = repo.Delete(ctx, character.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	// The owner still can.
	_, err = repo.GetByID(ctx, character.ID, owner)
	require.NoError(t, err)
}

func TestCharacterRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).WithName("Before").Build(t, testDB.DB)

	character.Name = "After"
	character.Level = 5
	require.NoError(t, repo.Update(ctx, character))

	got, err := repo.GetByID(ctx, character.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, 5, got.Level)
}

func TestCharacterRepository_GetByCampaign(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	userID := uuid.New()
	campaignA := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	campaignB := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	testutil.NewCharacterBuilder(userID, campaignA.ID).Build(t, testDB.DB)
	testutil.NewCharacterBuilder(userID, campaignA.ID).Build(t, testDB.DB)
	testutil.NewCharacterBuilder(userID, campaignB.ID).Build(t, testDB.DB)

	list, err := repo.GetByCampaign(ctx, campaignA.ID, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCharacterRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, character.ID, userID))

	_, err := repo.GetByID(ctx, character.ID, userID)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestCampaignRepository_DeleteCascadesCharacters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	campaignRepo := postgres.NewCampaignRepository(testDB.DB)
	characterRepo := postgres.NewCharacterRepository(testDB.DB)
	ctx := context.Background()

	userID := uuid.New()
	campaign := testutil.NewCampaignBuilder(userID).Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).Build(t, testDB.DB)

	require.NoError(t, campaignRepo.Delete(ctx, campaign.ID, userID))

	_, err := characterRepo.GetByID(ctx, character.ID, userID)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}
