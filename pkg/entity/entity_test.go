package entity_test

import (
	"testing"

	"github.com/limbo/squirrels/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := entity.DefaultCatalog()
	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, entity.ChallengeMarathoner, list[0].ID)
	assert.Equal(t, entity.ChallengeSteadyPacer, list[1].ID)
	assert.Equal(t, entity.ChallengeDisciplined, list[2].ID)

	ch, ok := c.Lookup("C2")
	assert.True(t, ok)
	assert.Equal(t, 50.0, ch.Target)
	assert.True(t, ch.Unit.IsDistance())

	_, ok = c.Lookup("C9")
	assert.False(t, ok)
}

func TestNewCatalog(t *testing.T) {
	testCases := []struct {
		Desc       string
		Challenges []entity.Challenge
		Error      error
	}{
		{
			Desc:       "valid",
			Challenges: []entity.Challenge{{ID: "A", Target: 1}, {ID: "B", Target: 2.5}},
		},
		{
			Desc:       "zero target",
			Challenges: []entity.Challenge{{ID: "A", Target: 0}},
			Error:      entity.ErrNonPositiveTarget,
		},
		{
			Desc:       "negative target",
			Challenges: []entity.Challenge{{ID: "A", Target: -3}},
			Error:      entity.ErrNonPositiveTarget,
		},
		{
			Desc:       "duplicate id",
			Challenges: []entity.Challenge{{ID: "A", Target: 1}, {ID: "A", Target: 2}},
			Error:      entity.ErrDuplicateChallenge,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			_, err := entity.NewCatalog(tc.Challenges...)
			assert.ErrorIs(t, err, tc.Error)
		})
	}
}

func TestCatalogListIsCopy(t *testing.T) {
	c := entity.DefaultCatalog()
	list := c.List()
	list[0].Title = "changed"
	assert.Equal(t, "The Marathoner", c.List()[0].Title)
}

func TestUserHelpers(t *testing.T) {
	u := entity.User{ID: "u1", Name: "  alice ", Friends: []string{"u2"}}
	assert.Equal(t, "AL", u.Initials())
	assert.True(t, u.HasFriend("u2"))
	assert.False(t, u.HasFriend("u3"))

	short := entity.User{Name: "z"}
	assert.Equal(t, "Z", short.Initials())
}

func TestDatabaseClone(t *testing.T) {
	db := entity.Database{
		"u1": {ID: "u1", Name: "Alice", Activities: []entity.Activity{{ID: "a1", Value: 1}}, Friends: []string{"u2"}},
	}
	c := db.Clone()
	u := c["u1"]
	u.Activities[0].Value = 99
	u.Friends[0] = "zzz"
	assert.Equal(t, 1.0, db["u1"].Activities[0].Value)
	assert.Equal(t, "u2", db["u1"].Friends[0])
}

func TestDatabaseUsersOrdering(t *testing.T) {
	db := entity.Database{
		"3": {ID: "3", Name: "bob"},
		"1": {ID: "1", Name: "Alice"},
		"2": {ID: "2", Name: "alice"},
	}
	users := db.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "2", users[1].ID)
	assert.Equal(t, "3", users[2].ID)
}
