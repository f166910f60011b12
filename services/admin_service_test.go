package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxlgn/counterhub/repositories"
	"github.com/maxlgn/counterhub/storage"
)

type fakeUserRepo struct {
	repositories.UserRepository
	delete func(ctx context.Context, id int) error
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	return f.delete(ctx, id)
}

type recordingUploader struct {
	deletedKeys []string
	deleteErr   error
}

func (u *recordingUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key}, nil
}

func (u *recordingUploader) Delete(ctx context.Context, key string) error {
	u.deletedKeys = append(u.deletedKeys, key)
	return u.deleteErr
}

func (u *recordingUploader) GetPublicURL(string) string { return "" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeleteUserRemovesArchivedSnapshot(t *testing.T) {
	userRepo := &fakeUserRepo{
		delete: func(context.Context, int) error { return nil },
	}
	uploader := &recordingUploader{}
	svc := NewAdminService(userRepo, uploader, discardLogger())

	require.NoError(t, svc.DeleteUser(context.Background(), 7))
	assert.Equal(t, []string{"snapshots/7.json"}, uploader.deletedKeys)
}

func TestDeleteUserSucceedsWhenArchiveRemovalFails(t *testing.T) {
	userRepo := &fakeUserRepo{
		delete: func(context.Context, int) error { return nil },
	}
	uploader := &recordingUploader{deleteErr: errors.New("bucket unreachable")}
	svc := NewAdminService(userRepo, uploader, discardLogger())

	assert.NoError(t, svc.DeleteUser(context.Background(), 7))
}

func TestDeleteUserNotFoundSkipsArchiveRemoval(t *testing.T) {
	userRepo := &fakeUserRepo{
		delete: func(context.Context, int) error { return repositories.ErrUserNotFound },
	}
	uploader := &recordingUploader{}
	svc := NewAdminService(userRepo, uploader, discardLogger())

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 7), ErrUserNotFound)
	assert.Empty(t, uploader.deletedKeys)
}

func TestDeleteUserWithoutUploader(t *testing.T) {
	userRepo := &fakeUserRepo{
		delete: func(context.Context, int) error { return nil },
	}
	svc := NewAdminService(userRepo, nil, discardLogger())

	assert.NoError(t, svc.DeleteUser(context.Background(), 7))
}
