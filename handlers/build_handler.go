package handlers

import (
	"net/http"

	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/services"
)

type BuildHandler struct {
	buildService services.BuildService
}

func NewBuildHandler(buildService services.BuildService) *BuildHandler {
	return &BuildHandler{buildService: buildService}
}

func (h *BuildHandler) ListMyBuilds(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	builds, err := h.buildService.ListUserBuilds(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"builds": builds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BuildHandler) CreateBuild(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateBuildInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.UserID = currentUserID

	build, err := h.buildService.CreateBuild(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"build": build}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BuildHandler) UpdateBuild(w http.ResponseWriter, r *http.Request) {
	buildID, err := getIDFromURL(r, "buildID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Content *string `json:"content"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	build, err := h.buildService.UpdateBuild(r.Context(), buildID, currentUserID, input.Content)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"build": build}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BuildHandler) DeleteBuild(w http.ResponseWriter, r *http.Request) {
	buildID, err := getIDFromURL(r, "buildID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.buildService.DeleteBuild(r.Context(), buildID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
