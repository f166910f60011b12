package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/maxlgn/counterhub/models"
)

var (
	ErrDefenseNotFound     = errors.New("defense team not found")
	ErrDefenseSlugConflict = errors.New("defense team slug conflict")
)

type DefenseRepository interface {
	Create(ctx context.Context, defense *models.DefenseTeam) error
	GetByID(ctx context.Context, id int) (*models.DefenseTeam, error)
	GetBySlug(ctx context.Context, slug string) (*models.DefenseTeam, error)
	List(ctx context.Context) ([]models.DefenseTeam, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresDefenseRepository struct {
	db *sql.DB
}

func NewPostgresDefenseRepository(db *sql.DB) DefenseRepository {
	return &postgresDefenseRepository{db: db}
}

func (r *postgresDefenseRepository) Create(ctx context.Context, defense *models.DefenseTeam) error {
	query := `
		INSERT INTO defense_teams (name, slug, monsters, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		defense.Name,
		defense.Slug,
		defense.Monsters,
		defense.CreatorID,
	).Scan(&defense.ID, &defense.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "defense_teams_slug_key" {
			return ErrDefenseSlugConflict
		}
		return classifyError(err)
	}
	return nil
}

func (r *postgresDefenseRepository) GetByID(ctx context.Context, id int) (*models.DefenseTeam, error) {
	query := `
		SELECT id, name, slug, monsters, creator_id, created_at
		FROM defense_teams
		WHERE id = $1`
	return r.scanDefense(ctx, query, id)
}

func (r *postgresDefenseRepository) GetBySlug(ctx context.Context, slug string) (*models.DefenseTeam, error) {
	query := `
		SELECT id, name, slug, monsters, creator_id, created_at
		FROM defense_teams
		WHERE slug = $1`
	return r.scanDefense(ctx, query, slug)
}

func (r *postgresDefenseRepository) List(ctx context.Context) ([]models.DefenseTeam, error) {
	query := `
		SELECT id, name, slug, monsters, creator_id, created_at
		FROM defense_teams
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	defenses := make([]models.DefenseTeam, 0)
	for rows.Next() {
		var defense models.DefenseTeam
		if err := rows.Scan(&defense.ID, &defense.Name, &defense.Slug, &defense.Monsters, &defense.CreatorID, &defense.CreatedAt); err != nil {
			return nil, err
		}
		defenses = append(defenses, defense)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return defenses, nil
}

// Delete runs on the provided executor so the service can wrap it in
// the same transaction that removes dependent counters and builds.
func (r *postgresDefenseRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM defense_teams WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	return checkAffectedRows(result, ErrDefenseNotFound)
}

func (r *postgresDefenseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM defense_teams`).Scan(&count)
	return count, classifyError(err)
}

func (r *postgresDefenseRepository) scanDefense(ctx context.Context, query string, args ...interface{}) (*models.DefenseTeam, error) {
	defense := &models.DefenseTeam{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&defense.ID,
		&defense.Name,
		&defense.Slug,
		&defense.Monsters,
		&defense.CreatorID,
		&defense.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDefenseNotFound
		}
		return nil, classifyError(err)
	}
	return defense, nil
}
