package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/google/uuid"
)

// CardHandler serves the cards and leader cards of an environment.
type CardHandler struct {
	cardService *service.CardService
}

func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

type CardRequest struct {
	Name    string `json:"name"`
	Damage  int    `json:"damage"`
	Health  int    `json:"health"`
	Element string `json:"element"`
}

func (req CardRequest) input() service.CardInput {
	return service.CardInput{
		Name:    req.Name,
		Damage:  req.Damage,
		Health:  req.Health,
		Element: battle.Element(req.Element),
	}
}

type LeaderRequest struct {
	CardID    uuid.UUID `json:"cardId"`
	Name      string    `json:"name"`
	BoostType string    `json:"boostType"`
}

func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), envID)
	if err != nil {
		writeError(w, "CardHandler.ListCards", err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	var req CardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), envID, req.input())
	if err != nil {
		writeError(w, "CardHandler.CreateCard", err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}
	cardID, ok := urlUUID(w, r, "cardId")
	if !ok {
		return
	}

	var req CardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), envID, cardID, req.input())
	if err != nil {
		writeError(w, "CardHandler.UpdateCard", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}
	cardID, ok := urlUUID(w, r, "cardId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), envID, cardID); err != nil {
		writeError(w, "CardHandler.DeleteCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) ListLeaders(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	leaders, err := h.cardService.ListLeaders(r.Context(), envID)
	if err != nil {
		writeError(w, "CardHandler.ListLeaders", err)
		return
	}
	writeJSON(w, http.StatusOK, leaders)
}

func (h *CardHandler) CreateLeader(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	var req LeaderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	leader, err := h.cardService.CreateLeader(r.Context(), envID, service.LeaderInput{
		CardID:    req.CardID,
		Name:      req.Name,
		BoostType: battle.BoostType(req.BoostType),
	})
	if err != nil {
		writeError(w, "CardHandler.CreateLeader", err)
		return
	}
	writeJSON(w, http.StatusCreated, leader)
}

func (h *CardHandler) DeleteLeader(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}
	leaderID, ok := urlUUID(w, r, "leaderId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteLeader(r.Context(), envID, leaderID); err != nil {
		writeError(w, "CardHandler.DeleteLeader", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
