package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
	"github.com/maxlgn/counterhub/storage"
)

type AdminService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (models.UserListResponse, error)
	ApproveUser(ctx context.Context, userID int) error
	SetUserRole(ctx context.Context, userID int, role models.UserRole) error
	DeleteUser(ctx context.Context, userID int) error
}

type adminService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewAdminService(userRepo repositories.UserRepository, uploader storage.FileUploader, logger *slog.Logger) AdminService {
	return &adminService{
		userRepo: userRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context, filter models.UserFilter) (models.UserListResponse, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return models.UserListResponse{}, translateRepoError(err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return models.UserListResponse{
		Users:      users,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *adminService) ApproveUser(ctx context.Context, userID int) error {
	if err := s.userRepo.SetApproved(ctx, userID, true); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return translateRepoError(err)
	}
	return nil
}

func (s *adminService) SetUserRole(ctx context.Context, userID int, role models.UserRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return translateRepoError(err)
	}
	return nil
}

// DeleteUser removes the account. Builds and the roster snapshot row go
// with it through the FK cascade; the archived snapshot file in object
// storage is removed best effort, a leftover object never blocks the
// deletion.
func (s *adminService) DeleteUser(ctx context.Context, userID int) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return translateRepoError(err)
	}

	if s.uploader != nil {
		if err := s.uploader.Delete(ctx, snapshotObjectKey(userID)); err != nil {
			s.logger.Warn("failed to remove archived roster snapshot",
				slog.Int("user_id", userID),
				slog.Any("error", err))
		}
	}
	return nil
}
