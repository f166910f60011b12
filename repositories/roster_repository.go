package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxlgn/counterhub/models"
)

var ErrRosterNotFound = errors.New("roster snapshot not found")

type RosterRepository interface {
	Upsert(ctx context.Context, snapshot *models.RosterSnapshot) error
	GetByUserID(ctx context.Context, userID int) (*models.RosterSnapshot, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

// Upsert replaces the user's snapshot in a single statement, so a
// failed import can never leave a half-updated roster behind.
func (r *postgresRosterRepository) Upsert(ctx context.Context, snapshot *models.RosterSnapshot) error {
	query := `
		INSERT INTO roster_snapshots (user_id, data, data_hash, file_name, imported_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET data = EXCLUDED.data,
			data_hash = EXCLUDED.data_hash,
			file_name = EXCLUDED.file_name,
			imported_at = NOW()
		RETURNING imported_at`

	err := r.db.QueryRowContext(ctx, query,
		snapshot.UserID,
		[]byte(snapshot.Data),
		snapshot.DataHash,
		snapshot.FileName,
	).Scan(&snapshot.ImportedAt)
	return classifyError(err)
}

func (r *postgresRosterRepository) GetByUserID(ctx context.Context, userID int) (*models.RosterSnapshot, error) {
	query := `
		SELECT user_id, data, data_hash, file_name, imported_at
		FROM roster_snapshots
		WHERE user_id = $1`

	snapshot := &models.RosterSnapshot{}
	var data []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.UserID,
		&data,
		&snapshot.DataHash,
		&snapshot.FileName,
		&snapshot.ImportedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterNotFound
		}
		return nil, classifyError(err)
	}
	snapshot.Data = data
	return snapshot, nil
}
