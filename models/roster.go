package models

import (
	"encoding/json"
	"time"
)

// RosterSnapshot is the latest imported game export for one user. The
// raw document is kept verbatim; owned monster ids are extracted from
// unit_list[].unit_master_id on read.
type RosterSnapshot struct {
	UserID     int             `json:"user_id" db:"user_id"`
	Data       json.RawMessage `json:"-" db:"data"`
	DataHash   string          `json:"data_hash" db:"data_hash"`
	FileName   string          `json:"file_name" db:"file_name"`
	ImportedAt time.Time       `json:"imported_at" db:"imported_at"`

	OwnedIDs []int `json:"owned_ids,omitempty" db:"-"`
}
