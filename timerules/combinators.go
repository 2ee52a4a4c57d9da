package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerCombinators ports the rules that join two already-produced
// artifacts into a more specific one: DOM+month, month+DOM, weekday
// qualifiers and weekday/day-of-month/date joins.
func registerCombinators(reg *rule.Registry) {
	reg.Register("ruleDOMMonth", rule.Pattern{isDOM(), isMonth()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dom, m := asTime(w[0]), asTime(w[1])
		return artifact.NewTime().WithDay(*dom.Day).WithMonth(*m.Month)
	})

	of := reg.Regex(`of`)
	reg.Register("ruleDOMMonth2", rule.Pattern{isDOM(), of, isMonth()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dom, m := asTime(w[0]), asTime(w[2])
		return artifact.NewTime().WithDay(*dom.Day).WithMonth(*m.Month)
	})

	reg.Register("ruleMonthDOM", rule.Pattern{isMonth(), isDOM()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		m, dom := asTime(w[0]), asTime(w[1])
		return artifact.NewTime().WithMonth(*m.Month).WithDay(*dom.Day)
	})

	atDOW := reg.Regex(`am|diese[nm]|at|on|this`)
	reg.Register("ruleAtDOW", rule.Pattern{atDOW, hasDOW()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow := asTime(w[1])
		dm := advanceToWeekday(ts, *dow.DOW)
		if dm.Equal(ts) {
			dm = dm.AddDate(0, 0, 7)
		}
		base := artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
		return base.Intersect(dow, "DOW")
	})

	nextDOW := reg.Regex(`(?:(?:am )?(?:dem |den )?(?:kommenden|nächsten))|(?:(?:on |at )?(?:the )?(?:next|following))`)
	reg.Register("ruleNextDOW", rule.Pattern{nextDOW, hasDOW()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow := asTime(w[1])
		dm := advanceToWeekday(ts, *dow.DOW).AddDate(0, 0, 7)
		base := artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
		return base.Intersect(dow, "DOW")
	})

	reg.Register("ruleDOYYear", rule.Pattern{isDOY(), isYear()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		doy, y := asTime(w[0]), asTime(w[1])
		return artifact.NewTime().WithYear(*y.Year).WithMonth(*doy.Month).WithDay(*doy.Day)
	})

	reg.Register("ruleDOWPOD", rule.Pattern{isDOW(), isPOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow, pod := asTime(w[0]), asTime(w[1])
		return artifact.NewTime().WithDOW(*dow.DOW).WithPOD(pod.POD)
	})

	reg.Register("ruleDOWDOM", rule.Pattern{hasDOW(), isDOM()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow, dom := asTime(w[0]), asTime(w[1])
		dm := nextMonthlyWeekdayDOM(ts, *dow.DOW, *dom.Day)
		base := artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
		return base.Intersect(dow, "DOW")
	})

	reg.Register("ruleDOWDate", rule.Pattern{hasDOW(), isDate()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow, date := asTime(w[0]), asTime(w[1])
		return date.Intersect(dow, "DOW")
	})
}
