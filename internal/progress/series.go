package progress

import (
	"errors"
	"sort"
	"time"

	"github.com/limbo/squirrels/pkg/entity"
)

const DateLayout = "2006-01-02"

var (
	ErrNoActivities       = errors.New("no activities logged")
	ErrInsufficientSeries = errors.New("at least 2 activities are needed for a trend")
)

type Point struct {
	Date       string  `json:"date"`
	ActivityID string  `json:"activityId"`
	Value      float64 `json:"value"`
	Cumulative float64 `json:"cumulative"`
}

// CumulativeSeries accumulates activity values in calendar-date order (not
// creation order). Activities on the same day keep their stored order;
// unparsable dates sort last.
func CumulativeSeries(activities []entity.Activity) ([]Point, error) {
	switch len(activities) {
	case 0:
		return nil, ErrNoActivities
	case 1:
		return nil, ErrInsufficientSeries
	}
	type dated struct {
		a   entity.Activity
		day time.Time
		ok  bool
	}
	items := make([]dated, 0, len(activities))
	for _, a := range activities {
		day, err := time.Parse(DateLayout, a.Date)
		items = append(items, dated{a: a, day: day, ok: err == nil})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].day.Before(items[j].day)
	})
	points := make([]Point, 0, len(items))
	var running float64
	for _, it := range items {
		running += it.a.Value
		points = append(points, Point{
			Date:       it.a.Date,
			ActivityID: it.a.ID,
			Value:      it.a.Value,
			Cumulative: running,
		})
	}
	return points, nil
}
