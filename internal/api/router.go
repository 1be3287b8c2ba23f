package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mparker/character-vault/internal/api/handlers"
	"github.com/mparker/character-vault/internal/api/middleware"
	"github.com/mparker/character-vault/internal/service"
	"github.com/mparker/character-vault/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	campaignHandler := handlers.NewCampaignHandler(services.Campaign, services.Character)
	characterHandler := handlers.NewCharacterHandler(services.Character, services.Spell, hub)
	companionHandler := handlers.NewCompanionHandler(services.Companion)
	spellHandler := handlers.NewSpellHandler(services.Spell)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// WebSocket endpoint (token is validated from the query string)
	r.Get("/ws", wsHandler.Handle)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Campaign routes
			r.Route("/campaigns", func(r chi.Router) {
				r.Post("/", campaignHandler.Create)
				r.Get("/", campaignHandler.List)
				r.Get("/{id}", campaignHandler.Get)
				r.Delete("/{id}", campaignHandler.Delete)
				r.Get("/{id}/characters", campaignHandler.ListCharacters)
			})

			// Character routes
			r.Route("/characters", func(r chi.Router) {
				r.Post("/", characterHandler.Create)
				r.Get("/{id}", characterHandler.Get)
				r.Put("/{id}", characterHandler.Save)
				r.Delete("/{id}", characterHandler.Delete)
				r.Post("/{id}/prepare", characterHandler.PrepareSpell)
				r.Post("/{id}/unprepare", characterHandler.UnprepareSpell)
				r.Post("/{id}/backfill-spells", characterHandler.BackfillSpells)
				r.Post("/{id}/companions", companionHandler.Create)
				r.Get("/{id}/companions", companionHandler.ListByCharacter)
			})

			// Companion routes
			r.Route("/companions", func(r chi.Router) {
				r.Get("/{id}", companionHandler.Get)
				r.Put("/{id}", companionHandler.Update)
				r.Delete("/{id}", companionHandler.Delete)
			})

			// Spell catalog routes
			r.Route("/spells", func(r chi.Router) {
				r.Get("/", spellHandler.List)
				r.Get("/{index}", spellHandler.Get)
			})
		})
	})

	return r
}
