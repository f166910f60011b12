package models

import "time"

// Build holds a user's free-form notes for one counter team. At most one
// build per (user, counter team) pair, enforced by a unique index.
type Build struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	CounterTeamID int       `json:"counter_team_id" db:"counter_team_id"`
	Content       *string   `json:"content" db:"content"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Counter *CounterTeam `json:"counter,omitempty" db:"-"`
	Defense *DefenseTeam `json:"defense,omitempty" db:"-"`
}
