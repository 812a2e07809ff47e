package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/google/uuid"
)

type BattleHandler struct {
	battleService *service.BattleService
}

func NewBattleHandler(battleService *service.BattleService) *BattleHandler {
	return &BattleHandler{battleService: battleService}
}

type FightRequest struct {
	DeckID    uuid.UUID `json:"deckId"`
	DungeonID uuid.UUID `json:"dungeonId"`
}

type ClaimRewardRequest struct {
	PlayerCardID uuid.UUID `json:"playerCardId"`
}

func (h *BattleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	limit, offset := pageParams(r)

	battles, err := h.battleService.List(r.Context(), userID, gameID, limit, offset)
	if err != nil {
		writeError(w, "BattleHandler.List", err)
		return
	}
	writeJSON(w, http.StatusOK, battles)
}

func (h *BattleHandler) Fight(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}

	var req FightRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.battleService.Fight(r.Context(), userID, gameID, service.FightInput{
		DeckID:    req.DeckID,
		DungeonID: req.DungeonID,
	})
	if err != nil {
		if errors.Is(err, battle.ErrConfiguration) {
			log.Printf("ERROR [BattleHandler.Fight] dungeon %s is malformed: %v", req.DungeonID, err)
			http.Error(w, "Dungeon is misconfigured", http.StatusUnprocessableEntity)
			return
		}
		writeError(w, "BattleHandler.Fight", err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BattleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	battleID, ok := urlUUID(w, r, "battleId")
	if !ok {
		return
	}

	b, err := h.battleService.Get(r.Context(), userID, gameID, battleID)
	if err != nil {
		writeError(w, "BattleHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BattleHandler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	gameID, ok := urlUUID(w, r, "gameId")
	if !ok {
		return
	}
	battleID, ok := urlUUID(w, r, "battleId")
	if !ok {
		return
	}

	var req ClaimRewardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.battleService.ClaimReward(r.Context(), userID, gameID, battleID, service.ClaimRewardInput{
		PlayerCardID: req.PlayerCardID,
	})
	if err != nil {
		writeError(w, "BattleHandler.ClaimReward", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
