package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Character struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	CampaignID uuid.UUID `json:"campaignId" gorm:"type:uuid;index;not null"`

	Name       string `json:"name" gorm:"not null"`
	Class      string `json:"class"`
	Level      int    `json:"level" gorm:"not null;default:1"`
	Race       string `json:"race"`
	Experience int    `json:"experience" gorm:"default:0"`

	// Base values before any item or armor modifiers. Zero means "unset" for
	// armor class and speed (the calculator substitutes 10 and 30). CurrentHP
	// is a pointer because 0 is a meaningful value for a dying character.
	ArmorClass int  `json:"armorClass"`
	Speed      int  `json:"speed"`
	MaxHP      int  `json:"maxHp"`
	CurrentHP  *int `json:"currentHp"`

	Strength     int `json:"strength" gorm:"default:10"`
	Dexterity    int `json:"dexterity" gorm:"default:10"`
	Constitution int `json:"constitution" gorm:"default:10"`
	Intelligence int `json:"intelligence" gorm:"default:10"`
	Wisdom       int `json:"wisdom" gorm:"default:10"`
	Charisma     int `json:"charisma" gorm:"default:10"`

	// Free-structured extension record, read and rewritten wholesale on save.
	Details datatypes.JSON `json:"details" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
}

type Campaign struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Companion is a dependent creature record (familiar, animal companion,
// steel defender) linked to a character through Details.CompanionID.
type Companion struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CharacterID uuid.UUID `json:"characterId" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`

	Name         string `json:"name" gorm:"not null"`
	CreatureType string `json:"creatureType"`
	ArmorClass   int    `json:"armorClass"`
	Speed        int    `json:"speed"`
	MaxHP        int    `json:"maxHp"`
	CurrentHP    *int   `json:"currentHp"`

	Strength     int `json:"strength" gorm:"default:10"`
	Dexterity    int `json:"dexterity" gorm:"default:10"`
	Constitution int `json:"constitution" gorm:"default:10"`
	Intelligence int `json:"intelligence" gorm:"default:10"`
	Wisdom       int `json:"wisdom" gorm:"default:10"`
	Charisma     int `json:"charisma" gorm:"default:10"`

	Notes string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
