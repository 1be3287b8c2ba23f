package service

import (
	"github.com/mparker/character-vault/internal/config"
	"github.com/mparker/character-vault/internal/repository"
	"github.com/mparker/character-vault/internal/rules"
)

type Services struct {
	Auth      *AuthService
	Campaign  *CampaignService
	Character *CharacterService
	Companion *CompanionService
	Spell     *SpellService
}

func NewServices(repos *repository.Repositories, rulesClient *rules.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(cfg),
		Campaign:  NewCampaignService(repos.Campaign),
		Character: NewCharacterService(repos.Character, repos.Campaign),
		Companion: NewCompanionService(repos.Companion, repos.Character),
		Spell:     NewSpellService(repos.Character, rulesClient),
	}
}
