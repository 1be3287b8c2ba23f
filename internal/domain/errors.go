package domain

import "errors"

// Lookup errors
var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrCompanionNotFound = errors.New("companion not found")
	ErrSpellNotFound     = errors.New("spell not found")
)

// Validation errors
var (
	ErrInvalidLevel         = errors.New("level must be between 1 and 20")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidSpellLevel    = errors.New("spell level must be between 0 and 9")
	ErrSpellAlreadyPrepared = errors.New("spell is already in the list for that level")
	ErrPreparedLimitReached = errors.New("prepared spell limit reached")
)
