package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/maxlgn/counterhub/live"
	"github.com/maxlgn/counterhub/matching"
	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
)

// RankedCounter decorates a counter team with the viewer's readiness:
// the score and a per-slot owned flag, in monster order.
type RankedCounter struct {
	models.CounterTeam
	Score int    `json:"score"`
	Owned []bool `json:"owned"`
}

// DefenseView is one defense with its counters ranked for the viewer.
// For anonymous viewers or users without an imported roster every score
// is zero and catalog order is preserved (the ranking is stable).
type DefenseView struct {
	models.DefenseTeam
	Counters []RankedCounter `json:"counters"`
}

type CreateDefenseInput struct {
	Monsters  models.MonsterList `json:"monsters"`
	CreatorID int                `json:"-"`
}

type CreateCounterInput struct {
	DefenseTeamID int                `json:"-"`
	Monsters      models.MonsterList `json:"monsters"`
	Description   string             `json:"description"`
	CreatorID     int                `json:"-"`
}

type CatalogService interface {
	ListDefenses(ctx context.Context, selectedMonsterIDs []int) ([]models.DefenseTeam, error)
	GetDefenseBySlug(ctx context.Context, slug string, viewerID int) (*DefenseView, error)
	CreateDefense(ctx context.Context, input CreateDefenseInput) (*models.DefenseTeam, error)
	DeleteDefense(ctx context.Context, id int) error
	CreateCounter(ctx context.Context, input CreateCounterInput) (*models.CounterTeam, error)
	DeleteCounter(ctx context.Context, id int) error
}

type catalogService struct {
	db          *sql.DB
	defenseRepo repositories.DefenseRepository
	counterRepo repositories.CounterRepository
	buildRepo   repositories.BuildRepository
	rosterRepo  repositories.RosterRepository
	hub         *live.Hub
}

func NewCatalogService(
	db *sql.DB,
	defenseRepo repositories.DefenseRepository,
	counterRepo repositories.CounterRepository,
	buildRepo repositories.BuildRepository,
	rosterRepo repositories.RosterRepository,
	hub *live.Hub,
) CatalogService {
	return &catalogService{
		db:          db,
		defenseRepo: defenseRepo,
		counterRepo: counterRepo,
		buildRepo:   buildRepo,
		rosterRepo:  rosterRepo,
		hub:         hub,
	}
}

// ListDefenses returns the catalog with embedded counters, optionally
// narrowed to defenses containing every selected monster id.
func (s *catalogService) ListDefenses(ctx context.Context, selectedMonsterIDs []int) ([]models.DefenseTeam, error) {
	defenses, err := s.defenseRepo.List(ctx)
	if err != nil {
		return nil, translateRepoError(err)
	}

	defenses = matching.FilterDefensesByMonsters(defenses, selectedMonsterIDs)

	counters, err := s.counterRepo.ListAll(ctx)
	if err != nil {
		return nil, translateRepoError(err)
	}
	byDefense := make(map[int][]models.CounterTeam, len(defenses))
	for _, counter := range counters {
		byDefense[counter.DefenseTeamID] = append(byDefense[counter.DefenseTeamID], counter)
	}
	for i := range defenses {
		defenses[i].Counters = byDefense[defenses[i].ID]
	}

	return defenses, nil
}

func (s *catalogService) GetDefenseBySlug(ctx context.Context, slug string, viewerID int) (*DefenseView, error) {
	defense, err := s.defenseRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrDefenseNotFound) {
			return nil, ErrDefenseNotFound
		}
		return nil, translateRepoError(err)
	}

	counters, err := s.counterRepo.ListByDefenseID(ctx, defense.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	ownedIDs, err := s.viewerOwnedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	owned := matching.NewOwnedSet(ownedIDs)
	ranked := matching.RankCounters(counters, owned)

	view := &DefenseView{DefenseTeam: *defense, Counters: make([]RankedCounter, 0, len(ranked))}
	for _, counter := range ranked {
		flags := make([]bool, 0, len(counter.Monsters))
		for _, monster := range counter.Monsters {
			flags = append(flags, owned.Contains(monster.ID))
		}
		view.Counters = append(view.Counters, RankedCounter{
			CounterTeam: counter,
			Score:       matching.CounterScore(counter, owned),
			Owned:       flags,
		})
	}
	return view, nil
}

// viewerOwnedIDs resolves the viewer's roster. Anonymous viewers and
// users without an import see an empty roster, not an error. Anything
// else, a connectivity failure in particular, is propagated: an outage
// must answer 503, not quietly zero every score.
func (s *catalogService) viewerOwnedIDs(ctx context.Context, viewerID int) ([]int, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	snapshot, err := s.rosterRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterNotFound) {
			return nil, nil
		}
		return nil, translateRepoError(err)
	}
	ids, err := ExtractOwnedIDs(snapshot.Data)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *catalogService) CreateDefense(ctx context.Context, input CreateDefenseInput) (*models.DefenseTeam, error) {
	if err := input.Monsters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTeamMonstersInvalid, err)
	}

	defense := &models.DefenseTeam{
		Name:      teamName(input.Monsters),
		Slug:      matching.DeriveSlug(input.Monsters),
		Monsters:  input.Monsters,
		CreatorID: &input.CreatorID,
	}

	if err := s.defenseRepo.Create(ctx, defense); err != nil {
		if errors.Is(err, repositories.ErrDefenseSlugConflict) {
			return nil, ErrDefenseSlugConflict
		}
		return nil, translateRepoError(err)
	}

	s.broadcast(live.CatalogRoom, live.EventDefenseCreated, defense)
	return defense, nil
}

// DeleteDefense cascades over dependent builds and counters in one
// transaction, so a partial failure can never orphan build notes.
func (s *catalogService) DeleteDefense(ctx context.Context, id int) error {
	defense, err := s.defenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDefenseNotFound) {
			return ErrDefenseNotFound
		}
		return translateRepoError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translateRepoError(err)
	}
	defer tx.Rollback()

	if err := s.buildRepo.DeleteByDefenseID(ctx, tx, id); err != nil {
		return translateRepoError(err)
	}
	if err := s.counterRepo.DeleteByDefenseID(ctx, tx, id); err != nil {
		return translateRepoError(err)
	}
	if err := s.defenseRepo.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, repositories.ErrDefenseNotFound) {
			return ErrDefenseNotFound
		}
		return translateRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return translateRepoError(err)
	}

	s.broadcast(live.CatalogRoom, live.EventDefenseDeleted, defense)
	s.broadcast(live.DefenseRoom(defense.Slug), live.EventDefenseDeleted, defense)
	return nil
}

func (s *catalogService) CreateCounter(ctx context.Context, input CreateCounterInput) (*models.CounterTeam, error) {
	if err := input.Monsters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTeamMonstersInvalid, err)
	}

	defense, err := s.defenseRepo.GetByID(ctx, input.DefenseTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrDefenseNotFound) {
			return nil, ErrDefenseNotFound
		}
		return nil, translateRepoError(err)
	}

	counter := &models.CounterTeam{
		Name:          teamName(input.Monsters),
		DefenseTeamID: defense.ID,
		Monsters:      input.Monsters,
		Description:   input.Description,
		CreatorID:     &input.CreatorID,
	}

	if err := s.counterRepo.Create(ctx, counter); err != nil {
		if errors.Is(err, repositories.ErrCounterDefenseInvalid) {
			return nil, ErrDefenseNotFound
		}
		return nil, translateRepoError(err)
	}

	s.broadcast(live.CatalogRoom, live.EventCounterCreated, counter)
	s.broadcast(live.DefenseRoom(defense.Slug), live.EventCounterCreated, counter)
	return counter, nil
}

func (s *catalogService) DeleteCounter(ctx context.Context, id int) error {
	counter, err := s.counterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCounterNotFound) {
			return ErrCounterNotFound
		}
		return translateRepoError(err)
	}
	defense, err := s.defenseRepo.GetByID(ctx, counter.DefenseTeamID)
	if err != nil && !errors.Is(err, repositories.ErrDefenseNotFound) {
		return translateRepoError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translateRepoError(err)
	}
	defer tx.Rollback()

	if err := s.buildRepo.DeleteByCounterID(ctx, tx, id); err != nil {
		return translateRepoError(err)
	}
	if err := s.counterRepo.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, repositories.ErrCounterNotFound) {
			return ErrCounterNotFound
		}
		return translateRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return translateRepoError(err)
	}

	s.broadcast(live.CatalogRoom, live.EventCounterDeleted, counter)
	if defense != nil {
		s.broadcast(live.DefenseRoom(defense.Slug), live.EventCounterDeleted, counter)
	}
	return nil
}

func (s *catalogService) broadcast(room, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(room, live.Event{Type: eventType, Payload: payload})
}

func teamName(monsters models.MonsterList) string {
	names := make([]string, 0, len(monsters))
	for _, monster := range monsters {
		names = append(names, monster.Name)
	}
	return strings.Join(names, " - ")
}
