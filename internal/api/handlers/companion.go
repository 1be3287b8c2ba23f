package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/api/middleware"
	"github.com/mparker/character-vault/internal/service"
)

type CompanionHandler struct {
	companionService *service.CompanionService
}

func NewCompanionHandler(companionService *service.CompanionService) *CompanionHandler {
	return &CompanionHandler{companionService: companionService}
}

type companionRequest struct {
	Name         string `json:"name"`
	CreatureType string `json:"creatureType"`
	ArmorClass   int    `json:"armorClass"`
	Speed        int    `json:"speed"`
	MaxHP        int    `json:"maxHp"`
	CurrentHP    *int   `json:"currentHp"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	Notes string `json:"notes"`
}

func (r companionRequest) toInput() service.CompanionInput {
	return service.CompanionInput{
		Name:         r.Name,
		CreatureType: r.CreatureType,
		ArmorClass:   r.ArmorClass,
		Speed:        r.Speed,
		MaxHP:        r.MaxHP,
		CurrentHP:    r.CurrentHP,
		Strength:     r.Strength,
		Dexterity:    r.Dexterity,
		Constitution: r.Constitution,
		Intelligence: r.Intelligence,
		Wisdom:       r.Wisdom,
		Charisma:     r.Charisma,
		Notes:        r.Notes,
	}
}

func (h *CompanionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	characterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	var req companionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	companion, err := h.companionService.Create(r.Context(), characterID, userID, req.toInput())
	if err != nil {
		log.Printf("ERROR [companion.Create] characterID=%s: %v", characterID, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(companion)
}

func (h *CompanionHandler) ListByCharacter(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	characterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return
	}

	companions, err := h.companionService.ListByCharacter(r.Context(), characterID, userID)
	if err != nil {
		log.Printf("ERROR [companion.ListByCharacter] characterID=%s: %v", characterID, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companions)
}

func (h *CompanionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid companion id", http.StatusBadRequest)
		return
	}

	companion, err := h.companionService.Get(r.Context(), id, userID)
	if err != nil {
		log.Printf("ERROR [companion.Get] companionID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companion)
}

func (h *CompanionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid companion id", http.StatusBadRequest)
		return
	}

	var req companionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	companion, err := h.companionService.Update(r.Context(), id, userID, req.toInput())
	if err != nil {
		log.Printf("ERROR [companion.Update] companionID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companion)
}

func (h *CompanionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid companion id", http.StatusBadRequest)
		return
	}

	if err := h.companionService.Delete(r.Context(), id, userID); err != nil {
		log.Printf("ERROR [companion.Delete] companionID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
