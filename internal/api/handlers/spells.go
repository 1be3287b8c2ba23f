package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mparker/character-vault/internal/service"
)

type SpellHandler struct {
	spellService *service.SpellService
}

func NewSpellHandler(spellService *service.SpellService) *SpellHandler {
	return &SpellHandler{spellService: spellService}
}

func (h *SpellHandler) List(w http.ResponseWriter, r *http.Request) {
	class := r.URL.Query().Get("class")
	if class == "" {
		http.Error(w, "Query parameter 'class' is required", http.StatusBadRequest)
		return
	}

	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		http.Error(w, "Query parameter 'level' must be an integer", http.StatusBadRequest)
		return
	}

	spells, err := h.spellService.ListSpells(r.Context(), class, level)
	if err != nil {
		log.Printf("ERROR [spells.List] class=%q level=%d: %v", class, level, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spells)
}

func (h *SpellHandler) Get(w http.ResponseWriter, r *http.Request) {
	index := chi.URLParam(r, "index")

	spell, err := h.spellService.GetSpell(r.Context(), index)
	if err != nil {
		log.Printf("ERROR [spells.Get] index=%q: %v", index, err)
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spell)
}
