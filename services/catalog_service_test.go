package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
)

type fakeDefenseRepo struct {
	repositories.DefenseRepository
	getBySlug func(ctx context.Context, slug string) (*models.DefenseTeam, error)
}

func (f *fakeDefenseRepo) GetBySlug(ctx context.Context, slug string) (*models.DefenseTeam, error) {
	return f.getBySlug(ctx, slug)
}

type fakeCounterRepo struct {
	repositories.CounterRepository
	listByDefenseID func(ctx context.Context, defenseID int) ([]models.CounterTeam, error)
}

func (f *fakeCounterRepo) ListByDefenseID(ctx context.Context, defenseID int) ([]models.CounterTeam, error) {
	return f.listByDefenseID(ctx, defenseID)
}

type fakeRosterRepo struct {
	repositories.RosterRepository
	getByUserID func(ctx context.Context, userID int) (*models.RosterSnapshot, error)
}

func (f *fakeRosterRepo) GetByUserID(ctx context.Context, userID int) (*models.RosterSnapshot, error) {
	return f.getByUserID(ctx, userID)
}

func catalogFixture(rosterRepo repositories.RosterRepository) CatalogService {
	defenseRepo := &fakeDefenseRepo{
		getBySlug: func(context.Context, string) (*models.DefenseTeam, error) {
			return &models.DefenseTeam{ID: 1, Slug: "a-b-c"}, nil
		},
	}
	counterRepo := &fakeCounterRepo{
		listByDefenseID: func(context.Context, int) ([]models.CounterTeam, error) {
			return []models.CounterTeam{{
				ID: 10,
				Monsters: models.MonsterList{
					{ID: 101, Name: "a"}, {ID: 102, Name: "b"}, {ID: 103, Name: "c"},
				},
			}}, nil
		},
	}
	return NewCatalogService(nil, defenseRepo, counterRepo, nil, rosterRepo, nil)
}

func TestGetDefenseBySlugRosterOutageAnswersUnavailable(t *testing.T) {
	// A store outage while resolving the viewer's roster must surface,
	// not silently zero every score.
	rosterRepo := &fakeRosterRepo{
		getByUserID: func(context.Context, int) (*models.RosterSnapshot, error) {
			return nil, fmt.Errorf("%w: connection refused", repositories.ErrStoreUnavailable)
		},
	}

	_, err := catalogFixture(rosterRepo).GetDefenseBySlug(context.Background(), "a-b-c", 7)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetDefenseBySlugWithoutImportedRoster(t *testing.T) {
	rosterRepo := &fakeRosterRepo{
		getByUserID: func(context.Context, int) (*models.RosterSnapshot, error) {
			return nil, repositories.ErrRosterNotFound
		},
	}

	view, err := catalogFixture(rosterRepo).GetDefenseBySlug(context.Background(), "a-b-c", 7)

	require.NoError(t, err)
	require.Len(t, view.Counters, 1)
	assert.Equal(t, 0, view.Counters[0].Score)
	assert.Equal(t, []bool{false, false, false}, view.Counters[0].Owned)
}

func TestGetDefenseBySlugAnonymousSkipsRosterLookup(t *testing.T) {
	rosterRepo := &fakeRosterRepo{
		getByUserID: func(context.Context, int) (*models.RosterSnapshot, error) {
			t.Fatal("anonymous viewers must not trigger a roster lookup")
			return nil, nil
		},
	}

	view, err := catalogFixture(rosterRepo).GetDefenseBySlug(context.Background(), "a-b-c", 0)

	require.NoError(t, err)
	require.Len(t, view.Counters, 1)
	assert.Equal(t, 0, view.Counters[0].Score)
}

func TestGetDefenseBySlugRanksAgainstViewerRoster(t *testing.T) {
	rosterRepo := &fakeRosterRepo{
		getByUserID: func(context.Context, int) (*models.RosterSnapshot, error) {
			return &models.RosterSnapshot{
				UserID: 7,
				Data:   []byte(`{"unit_list":[{"unit_master_id":101},{"unit_master_id":103}]}`),
			}, nil
		},
	}

	view, err := catalogFixture(rosterRepo).GetDefenseBySlug(context.Background(), "a-b-c", 7)

	require.NoError(t, err)
	require.Len(t, view.Counters, 1)
	assert.Equal(t, 2, view.Counters[0].Score)
	assert.Equal(t, []bool{true, false, true}, view.Counters[0].Owned)
}
