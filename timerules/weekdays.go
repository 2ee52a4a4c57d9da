package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// weekdayModifier is the optional trailing part-of-day qualifier every
// weekday rule accepts ("monday morning", "montags früh", ...). Ported
// from rules.py's `_wd_mod_re`.
const weekdayModifier = `(?:\s*(?:(?<morning>morning|morgend?s?|früh)|(?<beforenoon>vormittags?)|(?<noon>noon|mittags?)|(?<afternoon>afternoon|nachmittags?)|(?<evening>evening|abends?)|(?<night>nights?|nachts?)))?`

func wdPOD(m *artifact.RegexMatch) string {
	for _, pair := range []struct {
		group, pod string
	}{
		{"morning", "morning"}, {"beforenoon", "beforenoon"}, {"noon", "noon"},
		{"afternoon", "afternoon"}, {"evening", "evening"}, {"night", "night"},
	} {
		if v, ok := m.Group(pair.group); ok && v != "" {
			return pair.pod
		}
	}
	return ""
}

type weekday struct {
	name    string
	pattern string
	dow     int
}

var weekdays = []weekday{
	{"ruleMonday", `(?:montags?|mondays?|mon?\.?)` + weekdayModifier, 0},
	{"ruleTuesday", `(?:die?nstags?|die?\.?|tuesdays?|tue?\.?)` + weekdayModifier, 1},
	{"ruleWednesday", `(?:mittwochs?|mi\.?|wednesdays?|wed\.?)` + weekdayModifier, 2},
	{"ruleThursday", `(?:donn?erstags?|don?\.?|thursdays?|thur?\.?)` + weekdayModifier, 3},
	{"ruleFriday", `(?:freitags?|fridays?|fri?\.?)` + weekdayModifier, 4},
	{"ruleSaturday", `(?:samstags?|sonnabends?|saturdays?|sat?\.?)` + weekdayModifier, 5},
	{"ruleSunday", `(?:sonntags?|so\.?|sundays?|sun?\.?)` + weekdayModifier, 6},
}

func registerWeekdays(reg *rule.Registry) {
	for _, wd := range weekdays {
		wd := wd
		atom := reg.Regex(wd.pattern)
		reg.Register(wd.name, rule.Pattern{atom}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
			m := asRegex(w[0])
			res := artifact.NewTime().WithDOW(wd.dow)
			if pod := wdPOD(m); pod != "" {
				res.WithPOD(pod)
			}
			return res
		})
	}
}
