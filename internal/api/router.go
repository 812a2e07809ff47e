package api

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/handlers"
	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/config"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/dom/dungeon-deck/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	if cfg.Environment != "test" {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	envHandler := handlers.NewEnvironmentHandler(services.Environment)
	cardHandler := handlers.NewCardHandler(services.Card)
	dungeonHandler := handlers.NewDungeonHandler(services.Dungeon)
	gameHandler := handlers.NewGameHandler(services.Game)
	deckHandler := handlers.NewDeckHandler(services.Deck)
	battleHandler := handlers.NewBattleHandler(services.Battle)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	requireAdmin := middleware.RequireRole(services.Auth, domain.UserRoleAdmin)
	requireWebmaster := middleware.RequireRole(services.Auth, domain.UserRoleWebmaster)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
				r.Put("/password", authHandler.ChangePassword)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Account management
			r.Route("/users", func(r chi.Router) {
				r.Use(requireWebmaster)
				r.Get("/", userHandler.List)
				r.Put("/{userId}/role", userHandler.SetRole)
				r.Delete("/{userId}", userHandler.Delete)
			})

			// Content: readable by every player, written by admins
			r.Route("/environments", func(r chi.Router) {
				r.Get("/", envHandler.List)
				r.Get("/{envId}", envHandler.Get)
				r.Get("/{envId}/cards", cardHandler.ListCards)
				r.Get("/{envId}/leaders", cardHandler.ListLeaders)
				r.Get("/{envId}/dungeons", dungeonHandler.List)
				r.Get("/{envId}/dungeons/{dungeonId}", dungeonHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Post("/", envHandler.Create)
					r.Put("/{envId}", envHandler.Update)
					r.Delete("/{envId}", envHandler.Delete)

					r.Post("/{envId}/cards", cardHandler.CreateCard)
					r.Put("/{envId}/cards/{cardId}", cardHandler.UpdateCard)
					r.Delete("/{envId}/cards/{cardId}", cardHandler.DeleteCard)

					r.Post("/{envId}/leaders", cardHandler.CreateLeader)
					r.Delete("/{envId}/leaders/{leaderId}", cardHandler.DeleteLeader)

					r.Post("/{envId}/dungeons", dungeonHandler.Create)
					r.Delete("/{envId}/dungeons/{dungeonId}", dungeonHandler.Delete)
				})
			})

			// Games: each player sees only their own
			r.Route("/games", func(r chi.Router) {
				r.Get("/", gameHandler.List)
				r.Post("/", gameHandler.Start)

				r.Route("/{gameId}", func(r chi.Router) {
					r.Get("/", gameHandler.Get)
					r.Delete("/", gameHandler.Delete)
					r.Get("/cards", gameHandler.ListCards)

					r.Get("/decks", deckHandler.List)
					r.Post("/decks", deckHandler.Create)
					r.Get("/decks/{deckId}", deckHandler.Get)
					r.Put("/decks/{deckId}", deckHandler.Update)
					r.Delete("/decks/{deckId}", deckHandler.Delete)

					r.Get("/battles", battleHandler.List)
					r.Post("/battles", battleHandler.Fight)
					r.Get("/battles/{battleId}", battleHandler.Get)
					r.Post("/battles/{battleId}/reward", battleHandler.ClaimReward)
				})
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
