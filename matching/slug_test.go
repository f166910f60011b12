package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxlgn/counterhub/models"
)

func TestDeriveSlug(t *testing.T) {
	monsters := models.MonsterList{
		{ID: 1, Name: "Lushen"},
		{ID: 2, Name: "Verdehile"},
		{ID: 3, Name: "Orion"},
	}
	assert.Equal(t, "lushen-verdehile-orion", DeriveSlug(monsters))
}

func TestDeriveSlugFoldsDiacritics(t *testing.T) {
	monsters := models.MonsterList{
		{ID: 1, Name: "Théomars"},
		{ID: 2, Name: "Séra"},
		{ID: 3, Name: "Fée"},
	}
	assert.Equal(t, "theomars-sera-fee", DeriveSlug(monsters))
}

func TestDeriveSlugDropsNonAlphanumerics(t *testing.T) {
	monsters := models.MonsterList{
		{ID: 1, Name: "Mo Long"},
		{ID: 2, Name: "Woosa (Water)"},
		{ID: 3, Name: "2A-Raoq"},
	}
	assert.Equal(t, "molong-woosawater-2araoq", DeriveSlug(monsters))
}

func TestDeriveSlugIsOrderSensitive(t *testing.T) {
	a := models.Monster{ID: 1, Name: "Lushen"}
	b := models.Monster{ID: 2, Name: "Orion"}
	c := models.Monster{ID: 3, Name: "Verdehile"}

	assert.NotEqual(t,
		DeriveSlug(models.MonsterList{a, b, c}),
		DeriveSlug(models.MonsterList{c, b, a}),
	)
}

func TestDeriveSlugDeterministic(t *testing.T) {
	monsters := models.MonsterList{
		{ID: 1, Name: "Béthony"},
		{ID: 2, Name: "Żółw"},
		{ID: 3, Name: "Ælfric"},
	}
	first := DeriveSlug(monsters)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveSlug(monsters))
	}
}
