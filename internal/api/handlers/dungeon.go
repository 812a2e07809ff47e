package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/google/uuid"
)

type DungeonHandler struct {
	dungeonService *service.DungeonService
}

func NewDungeonHandler(dungeonService *service.DungeonService) *DungeonHandler {
	return &DungeonHandler{dungeonService: dungeonService}
}

type SlotRequest struct {
	CardID       *uuid.UUID `json:"cardId,omitempty"`
	LeaderCardID *uuid.UUID `json:"leaderCardId,omitempty"`
}

type DungeonRequest struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Slots    []SlotRequest `json:"slots"`
}

func (h *DungeonHandler) List(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	dungeons, err := h.dungeonService.List(r.Context(), envID)
	if err != nil {
		writeError(w, "DungeonHandler.List", err)
		return
	}
	writeJSON(w, http.StatusOK, dungeons)
}

func (h *DungeonHandler) Get(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}
	dungeonID, ok := urlUUID(w, r, "dungeonId")
	if !ok {
		return
	}

	dungeon, err := h.dungeonService.Get(r.Context(), envID, dungeonID)
	if err != nil {
		writeError(w, "DungeonHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, dungeon)
}

func (h *DungeonHandler) Create(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	var req DungeonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slots := make([]service.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, service.SlotInput{CardID: s.CardID, LeaderCardID: s.LeaderCardID})
	}

	dungeon, err := h.dungeonService.Create(r.Context(), envID, service.DungeonInput{
		Name:     req.Name,
		Category: battle.Category(req.Category),
		Slots:    slots,
	})
	if err != nil {
		writeError(w, "DungeonHandler.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, dungeon)
}

func (h *DungeonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}
	dungeonID, ok := urlUUID(w, r, "dungeonId")
	if !ok {
		return
	}

	if err := h.dungeonService.Delete(r.Context(), envID, dungeonID); err != nil {
		writeError(w, "DungeonHandler.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
