package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerLatent ports the LatentX family: rules that let an
// underspecified time entity (a bare day-of-month, weekday,
// day-of-year, time-of-day, time interval or part-of-day) stand on its
// own as a final result by anchoring it to the next matching instant
// strictly after the reference time.
func registerLatent(reg *rule.Registry) {
	reg.Register("ruleLatentDOM", rule.Pattern{isDOM()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dom := asTime(w[0])
		dm := time.Date(ts.Year(), ts.Month(), *dom.Day, 0, 0, 0, 0, ts.Location())
		if !dm.After(ts) {
			dm = dm.AddDate(0, 1, 0)
		}
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})

	reg.Register("ruleLatentDOW", rule.Pattern{hasDOW()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dow := asTime(w[0])
		dm := advanceToWeekday(ts, *dow.DOW)
		if !dm.After(ts) {
			dm = dm.AddDate(0, 0, 7)
		}
		base := artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
		return base.Intersect(dow, "DOW")
	})

	reg.Register("ruleLatentDOY", rule.Pattern{isDOY()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		doy := asTime(w[0])
		dm := time.Date(ts.Year(), time.Month(*doy.Month), *doy.Day, 0, 0, 0, 0, ts.Location())
		if !dm.After(ts) {
			dm = time.Date(ts.Year()+1, time.Month(*doy.Month), *doy.Day, 0, 0, 0, 0, ts.Location())
		}
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})

	reg.Register("ruleLatentTOD", rule.Pattern{isTOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		tod := asTime(w[0])
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
	})

	reg.Register("ruleLatentTimeInterval", rule.Pattern{isTimeInterval()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		ti := asInterval(w[0])
		fromMinute, toMinute := 0, 0
		if ti.TFrom.Minute != nil {
			fromMinute = *ti.TFrom.Minute
		}
		if ti.TTo.Minute != nil {
			toMinute = *ti.TTo.Minute
		}
		dmFrom := time.Date(ts.Year(), ts.Month(), ts.Day(), *ti.TFrom.Hour, fromMinute, 0, 0, ts.Location())
		dmTo := time.Date(ts.Year(), ts.Month(), ts.Day(), *ti.TTo.Hour, toMinute, 0, 0, ts.Location())
		if !dmFrom.After(ts) {
			dmFrom = dmFrom.AddDate(0, 0, 1)
			dmTo = dmTo.AddDate(0, 0, 1)
		}
		from := artifact.NewTime().WithYear(dmFrom.Year()).WithMonth(int(dmFrom.Month())).WithDay(dmFrom.Day()).
			WithHour(dmFrom.Hour()).WithMinute(dmFrom.Minute())
		to := artifact.NewTime().WithYear(dmTo.Year()).WithMonth(int(dmTo.Month())).WithDay(dmTo.Day()).
			WithHour(dmTo.Hour()).WithMinute(dmTo.Minute())
		return artifact.NewInterval(from, to)
	})

	reg.Register("ruleLatentPOD", rule.Pattern{isPOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		pod := asTime(w[0])
		hFrom, _, ok := artifact.PODHours(pod.POD)
		if !ok {
			return nil
		}
		tFrom := time.Date(ts.Year(), ts.Month(), ts.Day(), hFrom, 0, 0, 0, ts.Location())
		if !tFrom.After(ts) {
			tFrom = tFrom.AddDate(0, 0, 1)
		}
		return artifact.NewTime().WithYear(tFrom.Year()).WithMonth(int(tFrom.Month())).WithDay(tFrom.Day()).
			WithPOD(pod.POD)
	})
}
