// Package progress turns raw activity logs into totals, percentages,
// rankings and trend series. Every function is pure: inputs are never
// modified and results depend on nothing but the arguments.
package progress

import (
	"math"
	"sort"

	"github.com/limbo/squirrels/pkg/entity"
)

// Total sums activity values without intermediate rounding.
func Total(user entity.User) float64 {
	var sum float64
	for _, a := range user.Activities {
		sum += a.Value
	}
	return sum
}

// Percentage clamps 100*total/target into [0, 100]. Target must be positive,
// which the catalog guarantees.
func Percentage(total, target float64) float64 {
	p := 100 * total / target
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// PercentageFor returns 0 for a user whose challenge is not in the catalog.
func PercentageFor(user entity.User, catalog *entity.Catalog) float64 {
	ch, ok := catalog.Lookup(user.ChallengeID)
	if !ok {
		return 0
	}
	return Percentage(Total(user), ch.Target)
}

// Round is for display only; aggregation always works on raw sums.
func Round(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}

type Summary struct {
	ChallengeID    entity.ChallengeID `json:"challengeId"`
	ChallengeTitle string             `json:"challengeTitle"`
	Unit           entity.Unit        `json:"unit"`
	Target         float64            `json:"target"`
	Total          float64            `json:"total"`
	Remaining      float64            `json:"remaining"`
	Percentage     float64            `json:"percentage"`
	Completed      bool               `json:"completed"`
}

// Summarize builds the "my target" card: total rounded to two places,
// percentage on the raw total.
func Summarize(user entity.User, catalog *entity.Catalog) Summary {
	total := Total(user)
	s := Summary{
		ChallengeID: user.ChallengeID,
		Total:       Round(total, 2),
	}
	ch, ok := catalog.Lookup(user.ChallengeID)
	if !ok {
		return s
	}
	s.ChallengeTitle = ch.Title
	s.Unit = ch.Unit
	s.Target = ch.Target
	s.Percentage = Percentage(total, ch.Target)
	s.Remaining = Round(math.Max(0, ch.Target-total), 2)
	s.Completed = total >= ch.Target
	return s
}

// RecentLog orders activities newest first by creation time. Entries with
// equal timestamps keep their stored order.
func RecentLog(activities []entity.Activity) []entity.Activity {
	sorted := append([]entity.Activity(nil), activities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}
