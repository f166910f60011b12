package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxlgn/counterhub/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"defense not found", services.ErrDefenseNotFound, http.StatusNotFound},
		{"build not found", services.ErrBuildNotFound, http.StatusNotFound},
		{"roster not found", services.ErrRosterNotFound, http.StatusNotFound},
		{"duplicate build", services.ErrBuildConflict, http.StatusConflict},
		{"duplicate slug", services.ErrDefenseSlugConflict, http.StatusConflict},
		{"unknown counter reference", services.ErrCounterUnknown, http.StatusUnprocessableEntity},
		{"invalid snapshot", services.ErrSnapshotInvalid, http.StatusBadRequest},
		{"bad team", services.ErrTeamMonstersInvalid, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"not approved", services.ErrUserNotApproved, http.StatusForbidden},
		{"not the owner", services.ErrForbiddenOperation, http.StatusForbidden},
		{"store down", services.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestMapServiceErrorToHTTPWrappedErrors(t *testing.T) {
	// Services wrap sentinels with context; the mapping must see through
	// the wrapping.
	wrapped := fmt.Errorf("importing snapshot: %w", services.ErrUpstreamUnavailable)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	mapServiceErrorToHTTP(rec, req, wrapped)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
