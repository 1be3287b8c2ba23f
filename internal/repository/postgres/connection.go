package postgres

import (
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Campaign{},
		&domain.Character{},
		&domain.Companion{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Campaign:  NewCampaignRepository(db),
		Character: NewCharacterRepository(db),
		Companion: NewCompanionRepository(db),
	}
}
