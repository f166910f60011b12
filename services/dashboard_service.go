package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	userRepo    repositories.UserRepository
	defenseRepo repositories.DefenseRepository
	counterRepo repositories.CounterRepository
	buildRepo   repositories.BuildRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	defenseRepo repositories.DefenseRepository,
	counterRepo repositories.CounterRepository,
	buildRepo repositories.BuildRepository,
) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		defenseRepo: defenseRepo,
		counterRepo: counterRepo,
		buildRepo:   buildRepo,
	}
}

// GetStats fetches the admin counters concurrently; the first failing
// query cancels the rest.
func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.UsersTotal, err = s.userRepo.Count(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.PendingApprovals, err = s.userRepo.CountPending(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.DefensesTotal, err = s.defenseRepo.Count(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CountersTotal, err = s.counterRepo.Count(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.BuildsTotal, err = s.buildRepo.Count(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, translateRepoError(err)
	}
	return stats, nil
}
