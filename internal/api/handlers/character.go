package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/api/middleware"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/service"
	"github.com/mparker/character-vault/internal/websocket"
)

type CharacterHandler struct {
	characterService *service.CharacterService
	spellService     *service.SpellService
	hub              *websocket.Hub
}

func NewCharacterHandler(characterService *service.CharacterService, spellService *service.SpellService, hub *websocket.Hub) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
		spellService:     spellService,
		hub:              hub,
	}
}

type createCharacterRequest struct {
	CampaignID uuid.UUID `json:"campaignId"`
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	Race       string    `json:"race"`
	Level      int       `json:"level"`
	ArmorClass int       `json:"armorClass"`
	Speed      int       `json:"speed"`
	MaxHP      int       `json:"maxHp"`
	CurrentHP  *int      `json:"currentHp"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Level == 0 {
		req.Level = 1
	}

	character, err := h.characterService.Create(r.Context(), userID, service.CreateCharacterInput{
		CampaignID:   req.CampaignID,
		Name:         req.Name,
		Class:        req.Class,
		Race:         req.Race,
		Level:        req.Level,
		ArmorClass:   req.ArmorClass,
		Speed:        req.Speed,
		MaxHP:        req.MaxHP,
		CurrentHP:    req.CurrentHP,
		Strength:     req.Strength,
		Dexterity:    req.Dexterity,
		Constitution: req.Constitution,
		Intelligence: req.Intelligence,
		Wisdom:       req.Wisdom,
		Charisma:     req.Charisma,
	})
	if err != nil {
		log.Printf("ERROR [character.Create]: %v", err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(character)
}

func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	sheet, err := h.characterService.GetSheet(r.Context(), id, userID)
	if err != nil {
		log.Printf("ERROR [character.Get] characterID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

type saveSheetRequest struct {
	createCharacterRequest
	Experience int            `json:"experience"`
	Details    domain.Details `json:"details"`
}

func (h *CharacterHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	var req saveSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sheet, err := h.characterService.SaveSheet(r.Context(), id, userID, service.SaveSheetInput{
		Name:         req.Name,
		Class:        req.Class,
		Race:         req.Race,
		Level:        req.Level,
		Experience:   req.Experience,
		ArmorClass:   req.ArmorClass,
		Speed:        req.Speed,
		MaxHP:        req.MaxHP,
		CurrentHP:    req.CurrentHP,
		Strength:     req.Strength,
		Dexterity:    req.Dexterity,
		Constitution: req.Constitution,
		Intelligence: req.Intelligence,
		Wisdom:       req.Wisdom,
		Charisma:     req.Charisma,
		Details:      req.Details,
	})
	if err != nil {
		log.Printf("ERROR [character.Save] characterID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	h.hub.BroadcastCharacterUpdated(sheet.Character.CampaignID, sheet.Character.ID, sheet)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	// Fetch first so the campaign id is known for the broadcast.
	sheet, err := h.characterService.GetSheet(r.Context(), id, userID)
	if err == nil {
		err = h.characterService.Delete(r.Context(), id, userID)
	}
	if err != nil {
		log.Printf("ERROR [character.Delete] characterID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	h.hub.BroadcastCharacterDeleted(sheet.Character.CampaignID, id)
	w.WriteHeader(http.StatusNoContent)
}

type prepareSpellRequest struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
}

func (h *CharacterHandler) PrepareSpell(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	var req prepareSpellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sheet, err := h.characterService.PrepareSpell(r.Context(), id, userID, req.Level, req.Name)
	if err != nil {
		log.Printf("ERROR [character.PrepareSpell] characterID=%s spell=%q: %v", id, req.Name, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	h.hub.BroadcastCharacterUpdated(sheet.Character.CampaignID, sheet.Character.ID, sheet)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

func (h *CharacterHandler) UnprepareSpell(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	var req prepareSpellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sheet, err := h.characterService.UnprepareSpell(r.Context(), id, userID, req.Level, req.Name)
	if err != nil {
		log.Printf("ERROR [character.UnprepareSpell] characterID=%s spell=%q: %v", id, req.Name, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

type backfillResponse struct {
	Added int `json:"added"`
}

func (h *CharacterHandler) BackfillSpells(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	added, err := h.spellService.BackfillCharacter(r.Context(), id, userID)
	if err != nil {
		log.Printf("ERROR [character.BackfillSpells] characterID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(backfillResponse{Added: added})
}
