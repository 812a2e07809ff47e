package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// badRequestErrors are validation failures whose message is safe to show.
var badRequestErrors = []error{
	domain.ErrInvalidUserRole,
	domain.ErrInvalidElement,
	domain.ErrInvalidBoostType,
	domain.ErrInvalidCategory,
	domain.ErrInvalidStats,
	domain.ErrNameRequired,
	domain.ErrInvalidComposition,
	domain.ErrForeignCard,
	domain.ErrDeckSize,
	domain.ErrDuplicateDeckCard,
	domain.ErrCardNotOwned,
	battle.ErrInvalidInput,
	service.ErrDisplayNameRequired,
	service.ErrPasswordTooShort,
	service.ErrEmptyEnvironment,
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to a status code and a plain-text body.
// Unexpected errors are logged under op and hidden from the client.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, service.ErrSelfModification):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInUse),
		errors.Is(err, domain.ErrRewardUnavailable),
		errors.Is(err, service.ErrDisplayNameExists):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefreshToken):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	log.Printf("ERROR [%s] %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// urlUUID parses a UUID path parameter, answering 400 if it is malformed.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
