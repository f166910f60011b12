package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/services"
)

type DefenseHandler struct {
	catalogService services.CatalogService
}

func NewDefenseHandler(catalogService services.CatalogService) *DefenseHandler {
	return &DefenseHandler{catalogService: catalogService}
}

// ListDefenses serves the catalog. Repeated ?monster= parameters narrow
// it to defenses containing all of the given ids.
func (h *DefenseHandler) ListDefenses(w http.ResponseWriter, r *http.Request) {
	selected, err := monsterIDsFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	defenses, err := h.catalogService.ListDefenses(r.Context(), selected)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"defenses": defenses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DefenseHandler) GetDefenseBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	viewerID := middleware.ViewerIDFromContext(r.Context())

	view, err := h.catalogService.GetDefenseBySlug(r.Context(), slug, viewerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"defense": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DefenseHandler) CreateDefense(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateDefenseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.CreatorID = currentUserID

	defense, err := h.catalogService.CreateDefense(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"defense": defense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DefenseHandler) DeleteDefense(w http.ResponseWriter, r *http.Request) {
	defenseID, err := getIDFromURL(r, "defenseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.catalogService.DeleteDefense(r.Context(), defenseID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func monsterIDsFromQuery(r *http.Request) ([]int, error) {
	values := r.URL.Query()["monster"]
	ids := make([]int, 0, len(values))
	for _, value := range values {
		id, err := strconv.Atoi(value)
		if err != nil || id <= 0 {
			return nil, errInvalidMonsterParam
		}
		ids = append(ids, id)
	}
	return ids, nil
}
