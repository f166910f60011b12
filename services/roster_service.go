package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maxlgn/counterhub/models"
	"github.com/maxlgn/counterhub/repositories"
	"github.com/maxlgn/counterhub/storage"
)

type RosterService interface {
	ImportSnapshot(ctx context.Context, userID int, fileName string, raw []byte) (*models.RosterSnapshot, error)
	GetRoster(ctx context.Context, userID int) (*models.RosterSnapshot, error)
}

type rosterService struct {
	rosterRepo repositories.RosterRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewRosterService(rosterRepo repositories.RosterRepository, uploader storage.FileUploader, logger *slog.Logger) RosterService {
	return &rosterService{
		rosterRepo: rosterRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

// snapshotObjectKey is where a user's raw import is archived in object
// storage. One key per user: a re-import overwrites, account deletion
// removes it.
func snapshotObjectKey(userID int) string {
	return fmt.Sprintf("snapshots/%d.json", userID)
}

type snapshotDocument struct {
	UnitList []snapshotUnit `json:"unit_list"`
}

type snapshotUnit struct {
	UnitMasterID *int `json:"unit_master_id"`
}

// ValidateSnapshot checks that raw is a game export this application
// understands: a JSON object whose unit_list array entries each carry a
// positive numeric unit_master_id. It returns the extracted ids.
func ValidateSnapshot(raw []byte) ([]int, error) {
	var doc snapshotDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: document is not valid JSON: %v", ErrSnapshotInvalid, err)
	}
	if doc.UnitList == nil {
		return nil, fmt.Errorf("%w: missing unit_list array", ErrSnapshotInvalid)
	}
	ids := make([]int, 0, len(doc.UnitList))
	for i, unit := range doc.UnitList {
		if unit.UnitMasterID == nil || *unit.UnitMasterID <= 0 {
			return nil, fmt.Errorf("%w: unit_list entry %d has no valid unit_master_id", ErrSnapshotInvalid, i)
		}
		ids = append(ids, *unit.UnitMasterID)
	}
	return ids, nil
}

// ExtractOwnedIDs reads the owned monster ids out of a snapshot that
// already passed import validation.
func ExtractOwnedIDs(raw json.RawMessage) ([]int, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("stored snapshot is unreadable: %w", err)
	}
	ids := make([]int, 0, len(doc.UnitList))
	for _, unit := range doc.UnitList {
		if unit.UnitMasterID != nil {
			ids = append(ids, *unit.UnitMasterID)
		}
	}
	return ids, nil
}

// ImportSnapshot validates and stores a new roster export. The database
// upsert is a single statement; the stored roster is either replaced
// whole or left untouched. Archiving the raw file to object storage is
// best effort and never fails the import.
func (s *rosterService) ImportSnapshot(ctx context.Context, userID int, fileName string, raw []byte) (*models.RosterSnapshot, error) {
	ids, err := ValidateSnapshot(raw)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(raw)
	snapshot := &models.RosterSnapshot{
		UserID:   userID,
		Data:     json.RawMessage(raw),
		DataHash: hex.EncodeToString(hash[:]),
		FileName: fileName,
		OwnedIDs: ids,
	}

	if err := s.rosterRepo.Upsert(ctx, snapshot); err != nil {
		return nil, translateRepoError(err)
	}

	if s.uploader != nil {
		key := snapshotObjectKey(userID)
		if _, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(raw)); err != nil {
			s.logger.Warn("failed to archive roster snapshot",
				slog.Int("user_id", userID),
				slog.Any("error", err))
		}
	}

	return snapshot, nil
}

func (s *rosterService) GetRoster(ctx context.Context, userID int) (*models.RosterSnapshot, error) {
	snapshot, err := s.rosterRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterNotFound) {
			return nil, ErrRosterNotFound
		}
		return nil, translateRepoError(err)
	}

	ids, err := ExtractOwnedIDs(snapshot.Data)
	if err != nil {
		return nil, err
	}
	snapshot.OwnedIDs = ids
	return snapshot, nil
}
