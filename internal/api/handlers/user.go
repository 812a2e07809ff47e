package handlers

import (
	"net/http"

	"github.com/dom/dungeon-deck/internal/api/middleware"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/service"
)

// UserHandler serves the webmaster's account management.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	users, err := h.userService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, "UserHandler.List", err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())
	userID, ok := urlUUID(w, r, "userId")
	if !ok {
		return
	}

	var req SetRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.SetRole(r.Context(), actorID, userID, domain.UserRole(req.Role))
	if err != nil {
		writeError(w, "UserHandler.SetRole", err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())
	userID, ok := urlUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), actorID, userID); err != nil {
		writeError(w, "UserHandler.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
