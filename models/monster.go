package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Monster identity is the numeric game id. Names are display-only:
// the source catalog contains distinct ids sharing a name, so matching
// must never compare by name.
type Monster struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TeamSize is the fixed composition size for defense and counter teams.
const TeamSize = 3

// MonsterList is a team composition persisted as a jsonb column.
type MonsterList []Monster

func (m MonsterList) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MonsterList) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for MonsterList: %T", src)
	}
	return json.Unmarshal(data, m)
}

func (m MonsterList) IDs() []int {
	ids := make([]int, 0, len(m))
	for _, monster := range m {
		ids = append(ids, monster.ID)
	}
	return ids
}

// Validate checks a composition submitted for team creation.
func (m MonsterList) Validate() error {
	if len(m) != TeamSize {
		return fmt.Errorf("a team requires exactly %d monsters, got %d", TeamSize, len(m))
	}
	for i, monster := range m {
		if monster.ID <= 0 {
			return fmt.Errorf("monster %d has an invalid id", i+1)
		}
		if monster.Name == "" {
			return errors.New("monster names must not be empty")
		}
	}
	return nil
}
