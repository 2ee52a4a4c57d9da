// Package postprocess anchors "latent" resolutions -- a bare
// time-of-day with no date, or an interval of two such times -- to the
// reference timestamp, rolling over to the next day if the time of day
// has already passed.
//
// Grounded on original_source/ctparse/time/postprocess_latent.py,
// kept separate from package search since it runs once over a final
// resolution, not during the search itself ("introduced for backwards
// compatibility", per the original's own docstring).
package postprocess

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
)

// Apply anchors art to ts if it is a bare time-of-day Time or a
// time-of-day Interval, leaving every other artifact untouched.
func Apply(ts time.Time, art artifact.Artifact) artifact.Artifact {
	switch a := art.(type) {
	case *artifact.Time:
		if a.IsTOD() {
			return latentTOD(ts, a)
		}
	case *artifact.Interval:
		if a.IsTimeInterval() {
			return latentTimeInterval(ts, a)
		}
	}
	return art
}

func latentTOD(ts time.Time, tod *artifact.Time) *artifact.Time {
	minute := 0
	if tod.Minute != nil {
		minute = *tod.Minute
	}
	dm := time.Date(ts.Year(), ts.Month(), ts.Day(), *tod.Hour, minute, 0, 0, ts.Location())
	if !dm.After(ts) {
		dm = dm.AddDate(0, 0, 1)
	}
	return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day()).
		WithHour(dm.Hour()).WithMinute(dm.Minute())
}

func latentTimeInterval(ts time.Time, ti *artifact.Interval) *artifact.Interval {
	minuteOf := func(t *artifact.Time) int {
		if t.Minute != nil {
			return *t.Minute
		}
		return 0
	}
	dmFrom := time.Date(ts.Year(), ts.Month(), ts.Day(), *ti.TFrom.Hour, minuteOf(ti.TFrom), 0, 0, ts.Location())
	dmTo := time.Date(ts.Year(), ts.Month(), ts.Day(), *ti.TTo.Hour, minuteOf(ti.TTo), 0, 0, ts.Location())
	if !dmFrom.After(ts) {
		dmFrom = dmFrom.AddDate(0, 0, 1)
		dmTo = dmTo.AddDate(0, 0, 1)
	}
	from := artifact.NewTime().WithYear(dmFrom.Year()).WithMonth(int(dmFrom.Month())).WithDay(dmFrom.Day()).
		WithHour(dmFrom.Hour()).WithMinute(dmFrom.Minute())
	to := artifact.NewTime().WithYear(dmTo.Year()).WithMonth(int(dmTo.Month())).WithDay(dmTo.Day()).
		WithHour(dmTo.Hour()).WithMinute(dmTo.Minute())
	return artifact.NewInterval(from, to)
}
