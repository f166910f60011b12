package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/maxlgn/counterhub/models"
)

var (
	ErrBuildNotFound       = errors.New("build not found")
	ErrBuildConflict       = errors.New("build already exists for this counter team")
	ErrBuildCounterInvalid = errors.New("build references an unknown counter team")
)

type BuildRepository interface {
	Create(ctx context.Context, build *models.Build) error
	GetByID(ctx context.Context, id int) (*models.Build, error)
	ListByUserID(ctx context.Context, userID int) ([]models.Build, error)
	Update(ctx context.Context, build *models.Build) error
	Delete(ctx context.Context, id int) error
	DeleteByCounterID(ctx context.Context, exec SQLExecutor, counterID int) error
	DeleteByDefenseID(ctx context.Context, exec SQLExecutor, defenseID int) error
	Count(ctx context.Context) (int, error)
}

type postgresBuildRepository struct {
	db *sql.DB
}

func NewPostgresBuildRepository(db *sql.DB) BuildRepository {
	return &postgresBuildRepository{db: db}
}

// Create relies on the unique index over (user_id, counter_team_id) as
// the authoritative duplicate guard: the advisory service-side check is
// racy under concurrent submissions, the index is not.
func (r *postgresBuildRepository) Create(ctx context.Context, build *models.Build) error {
	query := `
		INSERT INTO builds (user_id, counter_team_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		build.UserID,
		build.CounterTeamID,
		build.Content,
	).Scan(&build.ID, &build.CreatedAt, &build.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "builds_user_id_counter_team_id_key" {
					return ErrBuildConflict
				}
			case "23503":
				if pqErr.Constraint == "builds_counter_team_id_fkey" {
					return ErrBuildCounterInvalid
				}
			}
		}
		return classifyError(err)
	}
	return nil
}

func (r *postgresBuildRepository) GetByID(ctx context.Context, id int) (*models.Build, error) {
	query := `
		SELECT id, user_id, counter_team_id, content, created_at, updated_at
		FROM builds
		WHERE id = $1`

	build := &models.Build{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&build.ID,
		&build.UserID,
		&build.CounterTeamID,
		&build.Content,
		&build.CreatedAt,
		&build.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildNotFound
		}
		return nil, classifyError(err)
	}
	return build, nil
}

// ListByUserID returns the user's builds newest first, each with its
// counter team and the counter's parent defense embedded.
func (r *postgresBuildRepository) ListByUserID(ctx context.Context, userID int) ([]models.Build, error) {
	query := `
		SELECT
			b.id, b.user_id, b.counter_team_id, b.content, b.created_at, b.updated_at,
			c.id, c.name, c.defense_team_id, c.monsters, c.description, c.creator_id, c.created_at,
			d.id, d.name, d.slug, d.monsters, d.creator_id, d.created_at
		FROM builds b
		JOIN counter_teams c ON b.counter_team_id = c.id
		JOIN defense_teams d ON c.defense_team_id = d.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	builds := make([]models.Build, 0)
	for rows.Next() {
		var build models.Build
		var counter models.CounterTeam
		var defense models.DefenseTeam
		if err := rows.Scan(
			&build.ID, &build.UserID, &build.CounterTeamID, &build.Content, &build.CreatedAt, &build.UpdatedAt,
			&counter.ID, &counter.Name, &counter.DefenseTeamID, &counter.Monsters, &counter.Description, &counter.CreatorID, &counter.CreatedAt,
			&defense.ID, &defense.Name, &defense.Slug, &defense.Monsters, &defense.CreatorID, &defense.CreatedAt,
		); err != nil {
			return nil, err
		}
		build.Counter = &counter
		build.Defense = &defense
		builds = append(builds, build)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return builds, nil
}

func (r *postgresBuildRepository) Update(ctx context.Context, build *models.Build) error {
	query := `
		UPDATE builds
		SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, build.Content, build.ID).Scan(&build.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBuildNotFound
		}
		return classifyError(err)
	}
	return nil
}

func (r *postgresBuildRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM builds WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	return checkAffectedRows(result, ErrBuildNotFound)
}

func (r *postgresBuildRepository) DeleteByCounterID(ctx context.Context, exec SQLExecutor, counterID int) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM builds WHERE counter_team_id = $1`, counterID)
	return classifyError(err)
}

func (r *postgresBuildRepository) DeleteByDefenseID(ctx context.Context, exec SQLExecutor, defenseID int) error {
	query := `
		DELETE FROM builds
		WHERE counter_team_id IN (
			SELECT id FROM counter_teams WHERE defense_team_id = $1
		)`
	_, err := exec.ExecContext(ctx, query, defenseID)
	return classifyError(err)
}

func (r *postgresBuildRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&count)
	return count, classifyError(err)
}
