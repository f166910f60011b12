package models

import "time"

// DefenseTeam is a published 3-monster PvP composition. The slug is
// derived from the monster names and is the externally addressable
// identifier; a unique index on it rejects duplicate compositions.
// CreatorID is nil once the creating account has been deleted.
type DefenseTeam struct {
	ID        int         `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Slug      string      `json:"slug" db:"slug"`
	Monsters  MonsterList `json:"monsters" db:"monsters"`
	CreatorID *int        `json:"creator_id" db:"creator_id"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`

	Counters []CounterTeam `json:"counters,omitempty" db:"-"`
}

// CounterTeam is a proposed answer to one defense team. It has no
// lifecycle of its own: deleting the parent defense removes it together
// with any dependent builds.
type CounterTeam struct {
	ID            int         `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	DefenseTeamID int         `json:"defense_team_id" db:"defense_team_id"`
	Monsters      MonsterList `json:"monsters" db:"monsters"`
	Description   string      `json:"description" db:"description"`
	CreatorID     *int        `json:"creator_id" db:"creator_id"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}
