package handlers

import (
	"errors"
	"net/http"

	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/services"
)

var errInvalidMonsterParam = errors.New("monster query parameters must be positive integers")

type CounterHandler struct {
	catalogService services.CatalogService
}

func NewCounterHandler(catalogService services.CatalogService) *CounterHandler {
	return &CounterHandler{catalogService: catalogService}
}

func (h *CounterHandler) CreateCounter(w http.ResponseWriter, r *http.Request) {
	defenseID, err := getIDFromURL(r, "defenseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateCounterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.DefenseTeamID = defenseID
	input.CreatorID = currentUserID

	counter, err := h.catalogService.CreateCounter(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"counter": counter}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CounterHandler) DeleteCounter(w http.ResponseWriter, r *http.Request) {
	counterID, err := getIDFromURL(r, "counterID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.catalogService.DeleteCounter(r.Context(), counterID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
