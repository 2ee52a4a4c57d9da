package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

type monthDef struct {
	name    string
	pattern string
	num     int
}

var months = []monthDef{
	{"January", `january?|jan\.?`, 1},
	{"February", `february?|feb\.?`, 2},
	{"March", `märz|march|mar\.?|mär\.?`, 3},
	{"April", `april|apr\.?`, 4},
	{"May", `mai|may\.?`, 5},
	{"June", `juni|june|jun\.?`, 6},
	{"July", `juli|july|jul\.?`, 7},
	{"August", `august|aug\.?`, 8},
	{"September", `september|sept?\.?`, 9},
	{"October", `oktober|october|oct\.?|okt\.?`, 10},
	{"November", `november|nov\.?`, 11},
	{"December", `december|dezember|dez\.?|dec\.?`, 12},
}

// registerMonths mirrors rules.py's `mkMonths`: one rule per month name
// that produces a bare Time(month=n).
func registerMonths(reg *rule.Registry) {
	for _, md := range months {
		md := md
		atom := reg.Regex(`(?:` + md.pattern + `)`)
		reg.Register("ruleMonth"+md.name, rule.Pattern{atom}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
			return artifact.NewTime().WithMonth(md.num)
		})
	}
}

// registerDDMonths mirrors rules.py's `mkDDMonths`: "<day>. <month
// name>" producing a full day-of-year Time(month=n, day=d).
func registerDDMonths(reg *rule.Registry) {
	for _, md := range months {
		md := md
		atom := reg.Regex(`(?<day>{{day}})\.?\s*(?:` + md.pattern + `)`)
		reg.Register("ruleDDMonth"+md.name, rule.Pattern{atom}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
			m := asRegex(w[0])
			day, ok := groupInt(m, "day")
			if !ok {
				return nil
			}
			return artifact.NewTime().WithMonth(md.num).WithDay(day)
		})
	}
}
