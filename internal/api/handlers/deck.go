package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/google/uuid"
)

type DeckHandler struct {
	deckService *service.DeckService
}

func NewDeckHandler(deckService *service.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

type DeckRequest struct {
	Name          string      `json:"name"`
	PlayerCardIDs []uuid.UUID `json:"playerCardIds"`
}

func (req DeckRequest) input() service.DeckInput {
	return service.DeckInput{Name: req.Name, PlayerCardIDs: req.PlayerCardIDs}
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	decks, err := h.deckService.List(r.Context(), userID, gameID)
	if err != nil {
		writeError(w, "DeckHandler.List", err)
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	var req DeckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deck, err := h.deckService.Create(r.Context(), userID, gameID, req.input())
	if err != nil {
		writeError(w, "DeckHandler.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	deckID, ok := urlUUID(w, r, "deckId")
	if !ok {
		return
	}

	deck, err := h.deckService.Get(r.Context(), userID, gameID, deckID)
	if err != nil {
		writeError(w, "DeckHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	deckID, ok := urlUUID(w, r, "deckId")
	if !ok {
		return
	}

	var req DeckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deck, err := h.deckService.Update(r.Context(), userID, gameID, deckID, req.input())
	if err != nil {
		writeError(w, "DeckHandler.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	deckID, ok := urlUUID(w, r, "deckId")
	if !ok {
		return
	}

	if err := h.deckService.Delete(r.Context(), userID, gameID, deckID); err != nil {
		writeError(w, "DeckHandler.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
