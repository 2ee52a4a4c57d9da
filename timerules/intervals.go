package timerules

import (
	"strings"
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

func todPOD(tod, pod *artifact.Time) artifact.Artifact {
	hour := *tod.Hour
	switch {
	case hour <= 12 && (strings.Contains(pod.POD, "afternoon") || strings.Contains(pod.POD, "evening") || strings.Contains(pod.POD, "night")):
		hour += 12
	case hour > 12 && (strings.Contains(pod.POD, "beforenoon") || strings.Contains(pod.POD, "morning")):
		// "17Uhr morgen" -- hour already rules out this POD, do not merge.
		return nil
	}
	minute := 0
	if tod.Minute != nil {
		minute = *tod.Minute
	}
	return artifact.NewTime().WithHour(hour).WithMinute(minute)
}

// registerIntervals ports the rules that combine a time-of-day with a
// part-of-day or date, the open "before"/"after" interval rules, and
// the range-forming pair rules (DateDate, DOMDate, DOYDate,
// DateTimeDateTime, TODTOD, DateInterval).
func registerIntervals(reg *rule.Registry) {
	reg.Register("ruleTODPOD", rule.Pattern{isTOD(), isPOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return todPOD(asTime(w[0]), asTime(w[1]))
	})
	reg.Register("rulePODTOD", rule.Pattern{isPOD(), isTOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return todPOD(asTime(w[1]), asTime(w[0]))
	})

	reg.Register("ruleDateTOD", rule.Pattern{isDate(), isTOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d, tod := asTime(w[0]), asTime(w[1])
		minute := 0
		if tod.Minute != nil {
			minute = *tod.Minute
		}
		return artifact.NewTime().WithYear(*d.Year).WithMonth(*d.Month).WithDay(*d.Day).WithHour(*tod.Hour).WithMinute(minute)
	})
	reg.Register("ruleTODDate", rule.Pattern{isTOD(), isDate()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		tod, d := asTime(w[0]), asTime(w[1])
		minute := 0
		if tod.Minute != nil {
			minute = *tod.Minute
		}
		return artifact.NewTime().WithYear(*d.Year).WithMonth(*d.Month).WithDay(*d.Day).WithHour(*tod.Hour).WithMinute(minute)
	})
	reg.Register("ruleDatePOD", rule.Pattern{isDate(), isPOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d, pod := asTime(w[0]), asTime(w[1])
		return artifact.NewTime().WithYear(*d.Year).WithMonth(*d.Month).WithDay(*d.Day).WithPOD(pod.POD)
	})

	before := reg.Regex(`vor|before|spätestens|latest`)
	reg.Register("ruleBeforeTime", rule.Pattern{before, timeDim()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewInterval(nil, asTime(w[1]))
	})
	after := reg.Regex(`nach|ab|after|frühe?stens|earliest`)
	reg.Register("ruleAfterTime", rule.Pattern{after, timeDim()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewInterval(asTime(w[1]), nil)
	})

	toJoin := reg.Regex(rule.ToJoin)

	reg.Register("ruleDateDate", rule.Pattern{isDate(), toJoin, isDate()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d1, d2 := asTime(w[0]), asTime(w[2])
		if *d1.Year > *d2.Year {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month > *d2.Month {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month == *d2.Month && *d1.Day >= *d2.Day {
			return nil
		}
		return artifact.NewInterval(d1, d2)
	})

	reg.Register("ruleDOMDate", rule.Pattern{isDOM(), toJoin, isDate()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d1, d2 := asTime(w[0]), asTime(w[2])
		if *d1.Day >= *d2.Day {
			return nil
		}
		from := artifact.NewTime().WithYear(*d2.Year).WithMonth(*d2.Month).WithDay(*d1.Day)
		return artifact.NewInterval(from, d2)
	})

	reg.Register("ruleDOYDate", rule.Pattern{isDOY(), toJoin, isDate()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d1, d2 := asTime(w[0]), asTime(w[2])
		if *d1.Month > *d2.Month {
			return nil
		}
		if *d1.Month == *d2.Month && *d1.Day >= *d2.Day {
			return nil
		}
		from := artifact.NewTime().WithYear(*d2.Year).WithMonth(*d1.Month).WithDay(*d1.Day)
		return artifact.NewInterval(from, d2)
	})

	reg.Register("ruleDateTimeDateTime", rule.Pattern{isDateTime(), toJoin, isDateTime()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d1, d2 := asTime(w[0]), asTime(w[2])
		if *d1.Year > *d2.Year {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month > *d2.Month {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month == *d2.Month && *d1.Day > *d2.Day {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month == *d2.Month && *d1.Day == *d2.Day && *d1.Hour > *d2.Hour {
			return nil
		}
		if *d1.Year == *d2.Year && *d1.Month == *d2.Month && *d1.Day == *d2.Day && *d1.Hour == *d2.Hour && *d1.Minute >= *d2.Minute {
			return nil
		}
		return artifact.NewInterval(d1, d2)
	})

	reg.Register("ruleTODTOD", rule.Pattern{isTOD(), toJoin, isTOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		t1, t2 := asTime(w[0]), asTime(w[2])
		if *t1.Hour == *t2.Hour {
			switch {
			case t1.Minute != nil && t2.Minute != nil && *t1.Minute >= *t2.Minute:
				return nil
			case t1.Minute == nil && t2.Minute != nil:
				return nil
			case t1.Minute == nil && t2.Minute == nil:
				return nil
			}
		}
		// t1.Hour > t2.Hour is not rejected here: "11:30 PM - 3:35 AM" is
		// a day-wrapping interval, resolved once a concrete date attaches
		// in ruleDateInterval/ruleLatentTimeInterval.
		return artifact.NewInterval(t1, t2)
	})

	reg.Register("ruleDateInterval", rule.Pattern{isDate(), intervalDim()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		d, iv := asTime(w[0]), asInterval(w[1])
		fromIsTOD := iv.TFrom == nil || iv.TFrom.IsTOD()
		toIsTOD := iv.TTo == nil || iv.TTo.IsTOD()
		if !fromIsTOD || !toIsTOD {
			return nil
		}
		switch {
		case iv.TFrom == nil:
			to := artifact.NewTime().WithYear(*d.Year).WithMonth(*d.Month).WithDay(*d.Day).WithHour(*iv.TTo.Hour)
			if iv.TTo.Minute != nil {
				to.WithMinute(*iv.TTo.Minute)
			}
			return artifact.NewInterval(nil, to)
		case iv.TTo == nil:
			from := artifact.NewTime().WithYear(*d.Year).WithMonth(*d.Month).WithDay(*d.Day).WithHour(*iv.TFrom.Hour)
			if iv.TFrom.Minute != nil {
				from.WithMinute(*iv.TFrom.Minute)
			}
			return artifact.NewInterval(from, nil)
		default:
			// ruleDateInterval - day wrap: a TOD-TOD pair that reads
			// backwards on the given date ("Nov 13 11:30 PM - 3:35 AM")
			// means t_to falls on the following day, not the same one.
			fromMinute, toMinute := 0, 0
			if iv.TFrom.Minute != nil {
				fromMinute = *iv.TFrom.Minute
			}
			if iv.TTo.Minute != nil {
				toMinute = *iv.TTo.Minute
			}
			fromDate := time.Date(*d.Year, time.Month(*d.Month), *d.Day, *iv.TFrom.Hour, fromMinute, 0, 0, ts.Location())
			toDate := time.Date(*d.Year, time.Month(*d.Month), *d.Day, *iv.TTo.Hour, toMinute, 0, 0, ts.Location())
			if !toDate.After(fromDate) {
				toDate = toDate.AddDate(0, 0, 1)
			}

			from := artifact.NewTime().WithYear(fromDate.Year()).WithMonth(int(fromDate.Month())).WithDay(fromDate.Day()).WithHour(fromDate.Hour())
			if iv.TFrom.Minute != nil {
				from.WithMinute(fromDate.Minute())
			}
			to := artifact.NewTime().WithYear(toDate.Year()).WithMonth(int(toDate.Month())).WithDay(toDate.Day()).WithHour(toDate.Hour())
			if iv.TTo.Minute != nil {
				to.WithMinute(toDate.Minute())
			}
			return artifact.NewInterval(from, to)
		}
	})
}
