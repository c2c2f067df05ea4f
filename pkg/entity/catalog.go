package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositiveTarget  = errors.New("challenge target must be positive")
	ErrDuplicateChallenge = errors.New("duplicate challenge id")
)

// Catalog is the ordered, immutable list of challenges a runner can join.
type Catalog struct {
	list []Challenge
	byID map[ChallengeID]Challenge
}

// NewCatalog validates targets once, so percentage math never divides by zero later.
func NewCatalog(challenges ...Challenge) (*Catalog, error) {
	c := &Catalog{
		list: make([]Challenge, 0, len(challenges)),
		byID: make(map[ChallengeID]Challenge, len(challenges)),
	}
	for _, ch := range challenges {
		if !(ch.Target > 0) {
			return nil, fmt.Errorf("%w: %s", ErrNonPositiveTarget, ch.ID)
		}
		if _, ok := c.byID[ch.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChallenge, ch.ID)
		}
		c.list = append(c.list, ch)
		c.byID[ch.ID] = ch
	}
	return c, nil
}

func MustCatalog(challenges ...Challenge) *Catalog {
	c, err := NewCatalog(challenges...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(id ChallengeID) (Challenge, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

func (c *Catalog) List() []Challenge {
	return append([]Challenge(nil), c.list...)
}

var DefaultChallenges = []Challenge{
	{
		ID:          ChallengeMarathoner,
		Title:       "The Marathoner",
		Target:      120,
		Unit:        UnitKilometers,
		Description: "Target: 120 km",
		Trophy:      "🥇 Real Flying Squirrel",
		BigValue:    "120",
	},
	{
		ID:          ChallengeSteadyPacer,
		Title:       "The Steady Pacer",
		Target:      50,
		Unit:        UnitKilometers,
		Description: "Target: 50 km",
		Trophy:      "🥈 Weekend Warrior",
		BigValue:    "50",
	},
	{
		ID:          ChallengeDisciplined,
		Title:       "The Disciplined",
		Target:      4,
		Unit:        UnitRuns,
		Description: "Target: 4 runs/workouts",
		Trophy:      "🥉 Consistency King",
		BigValue:    "4",
	},
}

var defaultCatalog = MustCatalog(DefaultChallenges...)

func DefaultCatalog() *Catalog {
	return defaultCatalog
}
