package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/service"
)

type EnvironmentHandler struct {
	envService *service.EnvironmentService
}

func NewEnvironmentHandler(envService *service.EnvironmentService) *EnvironmentHandler {
	return &EnvironmentHandler{envService: envService}
}

type EnvironmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *EnvironmentHandler) List(w http.ResponseWriter, r *http.Request) {
	envs, err := h.envService.List(r.Context())
	if err != nil {
		writeError(w, "EnvironmentHandler.List", err)
		return
	}
	writeJSON(w, http.StatusOK, envs)
}

func (h *EnvironmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	env, err := h.envService.Get(r.Context(), envID)
	if err != nil {
		writeError(w, "EnvironmentHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *EnvironmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req EnvironmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.envService.Create(r.Context(), userID, service.EnvironmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, "EnvironmentHandler.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, env)
}

func (h *EnvironmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	var req EnvironmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.envService.Update(r.Context(), envID, service.EnvironmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, "EnvironmentHandler.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *EnvironmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	envID, ok := urlUUID(w, r, "envId")
	if !ok {
		return
	}

	if err := h.envService.Delete(r.Context(), envID); err != nil {
		writeError(w, "EnvironmentHandler.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
