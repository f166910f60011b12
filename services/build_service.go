package services

import (
	"context"
	"errors"

	"github.com/maxlgn/counterhub/matching"
	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
)

type CreateBuildInput struct {
	CounterTeamID int     `json:"counter_team_id"`
	Content       *string `json:"content"`
	UserID        int     `json:"-"`
}

type BuildService interface {
	ListUserBuilds(ctx context.Context, userID int) ([]models.Build, error)
	CreateBuild(ctx context.Context, input CreateBuildInput) (*models.Build, error)
	UpdateBuild(ctx context.Context, buildID, userID int, content *string) (*models.Build, error)
	DeleteBuild(ctx context.Context, buildID, userID int) error
}

type buildService struct {
	buildRepo repositories.BuildRepository
}

func NewBuildService(buildRepo repositories.BuildRepository) BuildService {
	return &buildService{buildRepo: buildRepo}
}

func (s *buildService) ListUserBuilds(ctx context.Context, userID int) ([]models.Build, error) {
	builds, err := s.buildRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return builds, nil
}

// CreateBuild pre-checks the duplicate guard for a friendly error, then
// lets the unique index settle any race between concurrent submissions.
func (s *buildService) CreateBuild(ctx context.Context, input CreateBuildInput) (*models.Build, error) {
	if input.CounterTeamID <= 0 {
		return nil, ErrCounterUnknown
	}

	existing, err := s.buildRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if matching.HasBuildFor(existing, input.CounterTeamID) {
		return nil, ErrBuildConflict
	}

	build := &models.Build{
		UserID:        input.UserID,
		CounterTeamID: input.CounterTeamID,
		Content:       input.Content,
	}
	if err := s.buildRepo.Create(ctx, build); err != nil {
		switch {
		case errors.Is(err, repositories.ErrBuildConflict):
			return nil, ErrBuildConflict
		case errors.Is(err, repositories.ErrBuildCounterInvalid):
			return nil, ErrCounterUnknown
		}
		return nil, translateRepoError(err)
	}
	return build, nil
}

func (s *buildService) UpdateBuild(ctx context.Context, buildID, userID int, content *string) (*models.Build, error) {
	build, err := s.getOwnedBuild(ctx, buildID, userID)
	if err != nil {
		return nil, err
	}

	build.Content = content
	if err := s.buildRepo.Update(ctx, build); err != nil {
		if errors.Is(err, repositories.ErrBuildNotFound) {
			return nil, ErrBuildNotFound
		}
		return nil, translateRepoError(err)
	}
	return build, nil
}

func (s *buildService) DeleteBuild(ctx context.Context, buildID, userID int) error {
	if _, err := s.getOwnedBuild(ctx, buildID, userID); err != nil {
		return err
	}
	if err := s.buildRepo.Delete(ctx, buildID); err != nil {
		if errors.Is(err, repositories.ErrBuildNotFound) {
			return ErrBuildNotFound
		}
		return translateRepoError(err)
	}
	return nil
}

func (s *buildService) getOwnedBuild(ctx context.Context, buildID, userID int) (*models.Build, error) {
	build, err := s.buildRepo.GetByID(ctx, buildID)
	if err != nil {
		if errors.Is(err, repositories.ErrBuildNotFound) {
			return nil, ErrBuildNotFound
		}
		return nil, translateRepoError(err)
	}
	if build.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return build, nil
}
