package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerDOMYear ports ruleDOM1/ruleMonthOrdinal/ruleDOM2/ruleYear: the
// bare-numeral rules that read a day, month or year out of context. The
// lookbehind/lookahead digit-boundary guards (reject "5" inside "15" or
// "3" inside "5.3") are the reason these need regexp2 rather than stdlib regexp.
func registerDOMYear(reg *rule.Registry) {
	dom1 := reg.Regex(`(?<!\d|\.)(?<day>{{day}})\.?(?!\d)`)
	reg.Register("ruleDOM1", rule.Pattern{dom1}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		day, ok := groupInt(asRegex(w[0]), "day")
		if !ok {
			return nil
		}
		return artifact.NewTime().WithDay(day)
	})

	monthOrdinal := reg.Regex(`(?<!\d|\.)(?<month>{{month}})\.?(?!\d)`)
	reg.Register("ruleMonthOrdinal", rule.Pattern{monthOrdinal}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		month, ok := groupInt(asRegex(w[0]), "month")
		if !ok {
			return nil
		}
		return artifact.NewTime().WithMonth(month)
	})

	dom2 := reg.Regex(`(?<!\d|\.)(?<day>{{day}})\s*(?:st|rd|th|ten|ter)`)
	reg.Register("ruleDOM2", rule.Pattern{dom2}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		day, ok := groupInt(asRegex(w[0]), "day")
		if !ok {
			return nil
		}
		return artifact.NewTime().WithDay(day)
	})

	year := reg.Regex(`(?<!\d|\.)(?<year>{{year}})(?!\d)`)
	reg.Register("ruleYear", rule.Pattern{year}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		y, ok := groupInt(asRegex(w[0]), "year")
		if !ok {
			return nil
		}
		return artifact.NewTime().WithYear(windowYear(y))
	})

	ddmm := reg.Regex(`(?<!\d|\.)(?<day>{{day}})[./\-](?<month>{{month}})\.?(?!\d)`)
	reg.Register("ruleDDMM", rule.Pattern{ddmm}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		m := asRegex(w[0])
		day, ok1 := groupInt(m, "day")
		month, ok2 := groupInt(m, "month")
		if !ok1 || !ok2 {
			return nil
		}
		return artifact.NewTime().WithMonth(month).WithDay(day)
	})

	ddmmyyyy := reg.Regex(`(?<!\d|\.)(?<day>{{day}})[-/.](?<month>{{month}})[-/.](?<year>{{year}})(?!\d)`)
	reg.Register("ruleDDMMYYYY", rule.Pattern{ddmmyyyy}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		m := asRegex(w[0])
		day, ok1 := groupInt(m, "day")
		month, ok2 := groupInt(m, "month")
		year, ok3 := groupInt(m, "year")
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		if year < 2000 {
			year += 2000
		}
		return artifact.NewTime().WithYear(year).WithMonth(month).WithDay(day)
	})
}
