// Package timerules registers the domain rule corpus -- weekday,
// month, day-of-month, year, part-of-day, relative-date and
// time-of-day rules, plus the "Latent" family that lets an
// underspecified artifact stand on its own as a result -- into the
// shared rule.Global registry.
//
// Grounded on original_source/ctparse/time/rules.py.
package timerules

import (
	"strconv"
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

func timeDim() rule.Atom {
	return rule.Dimension("Time", func(a artifact.Artifact) bool {
		_, ok := a.(*artifact.Time)
		return ok
	})
}

func intervalDim() rule.Atom {
	return rule.Dimension("Interval", func(a artifact.Artifact) bool {
		_, ok := a.(*artifact.Interval)
		return ok
	})
}

func timePredicate(name string, test func(*artifact.Time) bool) rule.Atom {
	return rule.Predicate(name, func(a artifact.Artifact) bool {
		t, ok := a.(*artifact.Time)
		return ok && test(t)
	})
}

func isDOM() rule.Atom     { return timePredicate("isDOM", (*artifact.Time).IsDOM) }
func isDOW() rule.Atom     { return timePredicate("isDOW", (*artifact.Time).IsDOW) }
func isPOD() rule.Atom     { return timePredicate("isPOD", (*artifact.Time).IsPOD) }
func isTOD() rule.Atom     { return timePredicate("isTOD", (*artifact.Time).IsTOD) }
func isDate() rule.Atom    { return timePredicate("isDate", (*artifact.Time).IsDate) }
func isDOY() rule.Atom     { return timePredicate("isDOY", (*artifact.Time).IsDOY) }
func isYear() rule.Atom    { return timePredicate("isYear", (*artifact.Time).IsYear) }
func isMonth() rule.Atom   { return timePredicate("isMonth", (*artifact.Time).IsMonth) }
func hasDOW() rule.Atom    { return timePredicate("hasDOW", (*artifact.Time).HasDOW) }
func isDateTime() rule.Atom {
	return timePredicate("isDateTime", (*artifact.Time).IsDateTime)
}

func intervalPredicate(name string, test func(*artifact.Interval) bool) rule.Atom {
	return rule.Predicate(name, func(a artifact.Artifact) bool {
		iv, ok := a.(*artifact.Interval)
		return ok && test(iv)
	})
}

func isTimeInterval() rule.Atom {
	return intervalPredicate("isTimeInterval", (*artifact.Interval).IsTimeInterval)
}

func asInterval(a artifact.Artifact) *artifact.Interval {
	iv, _ := a.(*artifact.Interval)
	return iv
}

// pyWeekday converts Go's Sunday=0..Saturday=6 into ctparse's
// Monday=0..Sunday=6 day-of-week numbering.
func pyWeekday(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// advanceToWeekday returns the first date >= ts (time-of-day preserved)
// whose weekday is targetDOW, mirroring dateutil's
// `relativedelta(weekday=targetDOW)`.
func advanceToWeekday(ts time.Time, targetDOW int) time.Time {
	delta := (targetDOW - pyWeekday(ts) + 7) % 7
	return ts.AddDate(0, 0, delta)
}

// nextMonthlyWeekdayDOM finds the first date >= ts, on or after ts's
// month, whose day-of-month is dom and whose weekday is targetDOW.
// Substitutes for dateutil.rrule(MONTHLY, byweekday=, bymonthday=,
// count=1) in ruleDOWDOM -- Go's stdlib has no recurrence-rule engine,
// so this scans forward month by month instead.
func nextMonthlyWeekdayDOM(ts time.Time, targetDOW, dom int) time.Time {
	for m := 0; m < 84; m++ {
		first := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location()).AddDate(0, m, 0)
		candidate := time.Date(first.Year(), first.Month(), dom, ts.Hour(), ts.Minute(), ts.Second(), 0, ts.Location())
		if candidate.Month() != first.Month() {
			continue
		}
		if pyWeekday(candidate) != targetDOW {
			continue
		}
		if candidate.Before(ts) {
			continue
		}
		return candidate
	}
	return ts
}

func asTime(a artifact.Artifact) *artifact.Time { t, _ := a.(*artifact.Time); return t }
func asRegex(a artifact.Artifact) *artifact.RegexMatch {
	r, _ := a.(*artifact.RegexMatch)
	return r
}

func groupInt(m *artifact.RegexMatch, name string) (int, bool) {
	s, ok := m.Group(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// windowYear applies ruleYear's two-digit-year windowing convention:
// any year below 1900 maps into the 2000s. ruleDDMMYYYY does not use
// it; it adds 2000 to any year below 2000.
func windowYear(y int) int {
	if y < 1900 {
		return y + 2000
	}
	return y
}
