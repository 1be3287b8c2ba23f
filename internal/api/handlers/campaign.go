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

type CampaignHandler struct {
	campaignService  *service.CampaignService
	characterService *service.CharacterService
}

func NewCampaignHandler(campaignService *service.CampaignService, characterService *service.CharacterService) *CampaignHandler {
	return &CampaignHandler{
		campaignService:  campaignService,
		characterService: characterService,
	}
}

type createCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	campaign, err := h.campaignService.Create(r.Context(), userID, service.CreateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		log.Printf("ERROR [campaign.Create]: %v", err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	campaigns, err := h.campaignService.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [campaign.List]: %v", err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := h.campaignService.Get(r.Context(), id)
	if err != nil {
		log.Printf("ERROR [campaign.Get] campaignID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid campaign id", http.StatusBadRequest)
		return
	}

	if err := h.campaignService.Delete(r.Context(), id, userID); err != nil {
		log.Printf("ERROR [campaign.Delete] campaignID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CampaignHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid campaign id", http.StatusBadRequest)
		return
	}

	characters, err := h.characterService.ListByCampaign(r.Context(), id, userID)
	if err != nil {
		log.Printf("ERROR [campaign.ListCharacters] campaignID=%s: %v", id, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(characters)
}
