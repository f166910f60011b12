package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxlgn/counterhub/models"
)

func counterWith(ids ...int) models.CounterTeam {
	monsters := make(models.MonsterList, 0, len(ids))
	for _, id := range ids {
		monsters = append(monsters, models.Monster{ID: id, Name: "m"})
	}
	return models.CounterTeam{Monsters: monsters}
}

func defenseWith(id int, monsterIDs ...int) models.DefenseTeam {
	monsters := make(models.MonsterList, 0, len(monsterIDs))
	for _, mid := range monsterIDs {
		monsters = append(monsters, models.Monster{ID: mid, Name: "m"})
	}
	return models.DefenseTeam{ID: id, Monsters: monsters}
}

func TestCounterScore(t *testing.T) {
	counter := counterWith(1, 2, 3)

	assert.Equal(t, 2, CounterScore(counter, NewOwnedSet([]int{2, 3})))
	assert.Equal(t, 0, CounterScore(counter, NewOwnedSet(nil)))
	assert.Equal(t, 3, CounterScore(counter, NewOwnedSet([]int{1, 2, 3, 99})))
}

func TestCounterScoreBounds(t *testing.T) {
	counter := counterWith(10, 20, 30)
	ownedSets := []OwnedSet{
		NewOwnedSet(nil),
		NewOwnedSet([]int{10}),
		NewOwnedSet([]int{10, 20}),
		NewOwnedSet([]int{10, 20, 30}),
		NewOwnedSet([]int{1, 2, 3, 4, 5}),
	}
	for _, owned := range ownedSets {
		score := CounterScore(counter, owned)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 3)
	}
}

func TestCounterScoreMonotonic(t *testing.T) {
	counter := counterWith(1, 2, 3)

	owned := []int{}
	previous := CounterScore(counter, NewOwnedSet(owned))
	for _, id := range []int{7, 1, 8, 2, 3} {
		owned = append(owned, id)
		score := CounterScore(counter, NewOwnedSet(owned))
		assert.GreaterOrEqual(t, score, previous, "adding an owned id must never lower a score")
		previous = score
	}
}

func TestCounterScoreMatchesByIDOnly(t *testing.T) {
	// Two distinct ids sharing a display name must not be merged.
	counter := models.CounterTeam{Monsters: models.MonsterList{
		{ID: 101, Name: "Lushen"},
		{ID: 102, Name: "Lushen"},
		{ID: 103, Name: "Verdehile"},
	}}
	assert.Equal(t, 1, CounterScore(counter, NewOwnedSet([]int{101})))
}

func TestCounterScoreShortTeam(t *testing.T) {
	// Malformed catalog rows with fewer than 3 monsters must not panic.
	assert.Equal(t, 1, CounterScore(counterWith(1), NewOwnedSet([]int{1, 2})))
	assert.Equal(t, 0, CounterScore(models.CounterTeam{}, NewOwnedSet([]int{1})))
}

func TestRankCountersOrdersByScoreDescending(t *testing.T) {
	low := counterWith(7, 8, 9)
	mid := counterWith(1, 8, 9)
	high := counterWith(1, 2, 3)
	owned := NewOwnedSet([]int{1, 2, 3})

	ranked := RankCounters([]models.CounterTeam{low, mid, high}, owned)

	require.Len(t, ranked, 3)
	assert.Equal(t, high.Monsters, ranked[0].Monsters)
	assert.Equal(t, mid.Monsters, ranked[1].Monsters)
	assert.Equal(t, low.Monsters, ranked[2].Monsters)
}

func TestRankCountersStableForEqualScores(t *testing.T) {
	c2 := counterWith(1, 2, 3)
	c2.ID = 2
	c1 := counterWith(1, 2, 3)
	c1.ID = 1
	owned := NewOwnedSet([]int{1, 2, 3})

	ranked := RankCounters([]models.CounterTeam{c2, c1}, owned)

	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].ID, "equal scores keep input order")
	assert.Equal(t, 1, ranked[1].ID)
}

func TestRankCountersKeepsZeroScoreEntries(t *testing.T) {
	unowned := counterWith(1, 2, 3)
	ranked := RankCounters([]models.CounterTeam{unowned}, NewOwnedSet(nil))

	require.Len(t, ranked, 1, "a zero score de-emphasizes a counter, it never hides it")
	assert.Equal(t, 0, CounterScore(ranked[0], NewOwnedSet(nil)))
}

func TestRankCountersDoesNotMutateInput(t *testing.T) {
	counters := []models.CounterTeam{counterWith(7, 8, 9), counterWith(1, 2, 3)}
	counters[0].ID = 1
	counters[1].ID = 2

	RankCounters(counters, NewOwnedSet([]int{1, 2, 3}))

	assert.Equal(t, 1, counters[0].ID)
	assert.Equal(t, 2, counters[1].ID)
}

func TestFilterDefensesEmptySelectionIsIdentity(t *testing.T) {
	defenses := []models.DefenseTeam{defenseWith(1, 1, 2, 3), defenseWith(2, 4, 5, 6)}

	result := FilterDefensesByMonsters(defenses, nil)

	require.Len(t, result, 2)
	assert.Equal(t, defenses, result)
}

func TestFilterDefensesRequiresAllSelected(t *testing.T) {
	d1 := defenseWith(1, 1, 2, 3)
	d2 := defenseWith(2, 4, 5, 6)
	defenses := []models.DefenseTeam{d1, d2}

	// No defense contains both 1 and 4.
	assert.Empty(t, FilterDefensesByMonsters(defenses, []int{1, 4}))

	result := FilterDefensesByMonsters(defenses, []int{1})
	require.Len(t, result, 1)
	assert.Equal(t, d1.ID, result[0].ID)
}

func TestFilterDefensesPreservesCatalogOrder(t *testing.T) {
	defenses := []models.DefenseTeam{
		defenseWith(3, 1, 2, 3),
		defenseWith(1, 1, 5, 6),
		defenseWith(2, 1, 2, 9),
	}

	result := FilterDefensesByMonsters(defenses, []int{1})

	require.Len(t, result, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{result[0].ID, result[1].ID, result[2].ID})
}

func TestFilterDefensesShortTeamMatchesNothingExtra(t *testing.T) {
	short := defenseWith(1, 1)
	result := FilterDefensesByMonsters([]models.DefenseTeam{short}, []int{1, 2})
	assert.Empty(t, result)
}

func TestHasBuildFor(t *testing.T) {
	builds := []models.Build{
		{ID: 1, CounterTeamID: 10},
		{ID: 2, CounterTeamID: 30},
	}

	assert.True(t, HasBuildFor(builds, 30))
	assert.False(t, HasBuildFor(builds, 20))
	assert.False(t, HasBuildFor(nil, 10))
}

func TestHasBuildForIgnoresContentAndOrder(t *testing.T) {
	content := "<p>runes</p>"
	builds := []models.Build{
		{ID: 5, CounterTeamID: 42, Content: &content},
		{ID: 1, CounterTeamID: 7, Content: nil},
	}

	assert.True(t, HasBuildFor(builds, 7))
	assert.True(t, HasBuildFor(builds, 42))
}
