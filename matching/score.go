// Package matching holds the roster matching and counter ranking rules.
// Everything here is a pure transformation over snapshots the caller has
// already fetched; no function performs I/O or returns domain errors.
package matching

import (
	"sort"

	"github.com/maxlgn/counterhub/models"
)

// OwnedSet is a user's owned-monster id set.
type OwnedSet map[int]struct{}

func NewOwnedSet(ids []int) OwnedSet {
	set := make(OwnedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s OwnedSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// CounterScore counts how many of the counter's monsters the caller
// owns. Matching is by id only; a malformed counter with fewer than
// three monsters simply scores what its present slots score.
func CounterScore(counter models.CounterTeam, owned OwnedSet) int {
	score := 0
	for _, monster := range counter.Monsters {
		if owned.Contains(monster.ID) {
			score++
		}
	}
	return score
}

// RankCounters orders counters by descending score, so the compositions
// the user can field right away come first. The sort is stable: equal
// scores keep their catalog order. Zero-score counters are kept, never
// filtered out. The input slice is not modified.
func RankCounters(counters []models.CounterTeam, owned OwnedSet) []models.CounterTeam {
	ranked := make([]models.CounterTeam, len(counters))
	copy(ranked, counters)
	sort.SliceStable(ranked, func(i, j int) bool {
		return CounterScore(ranked[i], owned) > CounterScore(ranked[j], owned)
	})
	return ranked
}

// FilterDefensesByMonsters returns the defenses whose composition
// contains every selected id (AND semantics: a popular monster alone
// would match far too many unrelated defenses under OR). An empty
// selection is the identity case and returns the catalog unchanged.
// Result order preserves catalog order.
func FilterDefensesByMonsters(defenses []models.DefenseTeam, selectedIDs []int) []models.DefenseTeam {
	if len(selectedIDs) == 0 {
		return defenses
	}
	matched := make([]models.DefenseTeam, 0, len(defenses))
	for _, defense := range defenses {
		members := NewOwnedSet(defense.Monsters.IDs())
		containsAll := true
		for _, id := range selectedIDs {
			if !members.Contains(id) {
				containsAll = false
				break
			}
		}
		if containsAll {
			matched = append(matched, defense)
		}
	}
	return matched
}

// HasBuildFor reports whether the user already attached a build to the
// given counter team. This advisory check backs the duplicate-build
// guard in the service layer; the database unique index on
// (user_id, counter_team_id) remains the authoritative barrier against
// concurrent submissions.
func HasBuildFor(builds []models.Build, counterTeamID int) bool {
	for _, build := range builds {
		if build.CounterTeamID == counterTeamID {
			return true
		}
	}
	return false
}
