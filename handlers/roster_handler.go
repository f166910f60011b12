package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/services"
)

// Game exports run a few MB for large accounts.
const maxSnapshotBytes = 10 << 20

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ImportSnapshot accepts the raw game export, either as a multipart
// upload under the "file" field or as a plain JSON body.
func (h *RosterHandler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	fileName, raw, err := readSnapshotUpload(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snapshot, err := h.rosterService.ImportSnapshot(r.Context(), currentUserID, fileName, raw)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	snapshot, err := h.rosterService.GetRoster(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func readSnapshotUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSnapshotBytes); err != nil {
			return "", nil, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, errors.New("multipart upload must carry a 'file' field")
		}
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, raw, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, errors.New("snapshot body must not be empty")
	}
	return "import.json", raw, nil
}
