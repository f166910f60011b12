package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/maxlgn/counterhub/models"
)

var (
	ErrCounterNotFound       = errors.New("counter team not found")
	ErrCounterDefenseInvalid = errors.New("counter team references an unknown defense team")
)

type CounterRepository interface {
	Create(ctx context.Context, counter *models.CounterTeam) error
	GetByID(ctx context.Context, id int) (*models.CounterTeam, error)
	ListByDefenseID(ctx context.Context, defenseID int) ([]models.CounterTeam, error)
	ListAll(ctx context.Context) ([]models.CounterTeam, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	DeleteByDefenseID(ctx context.Context, exec SQLExecutor, defenseID int) error
	Count(ctx context.Context) (int, error)
}

type postgresCounterRepository struct {
	db *sql.DB
}

func NewPostgresCounterRepository(db *sql.DB) CounterRepository {
	return &postgresCounterRepository{db: db}
}

func (r *postgresCounterRepository) Create(ctx context.Context, counter *models.CounterTeam) error {
	query := `
		INSERT INTO counter_teams (name, defense_team_id, monsters, description, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		counter.Name,
		counter.DefenseTeamID,
		counter.Monsters,
		counter.Description,
		counter.CreatorID,
	).Scan(&counter.ID, &counter.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "counter_teams_defense_team_id_fkey" {
			return ErrCounterDefenseInvalid
		}
		return classifyError(err)
	}
	return nil
}

func (r *postgresCounterRepository) GetByID(ctx context.Context, id int) (*models.CounterTeam, error) {
	query := `
		SELECT id, name, defense_team_id, monsters, description, creator_id, created_at
		FROM counter_teams
		WHERE id = $1`

	counter := &models.CounterTeam{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&counter.ID,
		&counter.Name,
		&counter.DefenseTeamID,
		&counter.Monsters,
		&counter.Description,
		&counter.CreatorID,
		&counter.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCounterNotFound
		}
		return nil, classifyError(err)
	}
	return counter, nil
}

func (r *postgresCounterRepository) ListByDefenseID(ctx context.Context, defenseID int) ([]models.CounterTeam, error) {
	query := `
		SELECT id, name, defense_team_id, monsters, description, creator_id, created_at
		FROM counter_teams
		WHERE defense_team_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, defenseID)
}

func (r *postgresCounterRepository) ListAll(ctx context.Context) ([]models.CounterTeam, error) {
	query := `
		SELECT id, name, defense_team_id, monsters, description, creator_id, created_at
		FROM counter_teams
		ORDER BY defense_team_id ASC, created_at ASC, id ASC`
	return r.list(ctx, query)
}

func (r *postgresCounterRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM counter_teams WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	return checkAffectedRows(result, ErrCounterNotFound)
}

func (r *postgresCounterRepository) DeleteByDefenseID(ctx context.Context, exec SQLExecutor, defenseID int) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM counter_teams WHERE defense_team_id = $1`, defenseID)
	return classifyError(err)
}

func (r *postgresCounterRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM counter_teams`).Scan(&count)
	return count, classifyError(err)
}

func (r *postgresCounterRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.CounterTeam, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	counters := make([]models.CounterTeam, 0)
	for rows.Next() {
		var counter models.CounterTeam
		if err := rows.Scan(
			&counter.ID,
			&counter.Name,
			&counter.DefenseTeamID,
			&counter.Monsters,
			&counter.Description,
			&counter.CreatorID,
			&counter.CreatedAt,
		); err != nil {
			return nil, err
		}
		counters = append(counters, counter)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return counters, nil
}
