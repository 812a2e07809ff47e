package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/google/uuid"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type StartGameRequest struct {
	EnvironmentID uuid.UUID `json:"environmentId"`
	Name          string    `json:"name"`
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	games, err := h.gameService.List(r.Context(), userID)
	if err != nil {
		writeError(w, "GameHandler.List", err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req StartGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.gameService.Start(r.Context(), userID, service.StartGameInput{
		EnvironmentID: req.EnvironmentID,
		Name:          req.Name,
	})
	if err != nil {
		writeError(w, "GameHandler.Start", err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	game, err := h.gameService.Get(r.Context(), userID, gameID)
	if err != nil {
		writeError(w, "GameHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	if err := h.gameService.Delete(r.Context(), userID, gameID); err != nil {
		writeError(w, "GameHandler.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	cards, err := h.gameService.ListCards(r.Context(), userID, gameID)
	if err != nil {
		writeError(w, "GameHandler.ListCards", err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}
