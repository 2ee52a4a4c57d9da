package timerules

import (
	"strings"
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerHHMM ports ruleHHMM/ruleHHOClock, the bare-clock-time rules
// ("3pm", "15:30", "3 o'clock"). ruleMinutesBeforeHH/QuarterPastHH/
// HalfPastHH and friends are stubs in the Python source itself (empty
// function bodies, never wired to @rule) -- left unported here too.
func registerHHMM(reg *rule.Registry) {
	hhmm := reg.Regex(`(?<!\d|\.)(?<hour>{{hour}})(?:(?::|uhr|h|\.)?(?<minute>{{minute}})?\s*(?:uhr|h)?)(?<ampm>\s*[ap]\.?m\.?)?(?!\d)`)
	reg.Register("ruleHHMM", rule.Pattern{hhmm}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		m := asRegex(w[0])
		hour, ok := groupInt(m, "hour")
		if !ok {
			return nil
		}
		minute, _ := groupInt(m, "minute")
		ampm, hasAmpm := m.Group("ampm")
		if !hasAmpm {
			return artifact.NewTime().WithHour(hour).WithMinute(minute)
		}
		ampm = strings.TrimSpace(ampm)
		switch {
		case strings.HasPrefix(ampm, "a") && hour <= 12:
			return artifact.NewTime().WithHour(hour).WithMinute(minute)
		case strings.HasPrefix(ampm, "p") && hour <= 12:
			return artifact.NewTime().WithHour(hour + 12).WithMinute(minute)
		default:
			// "13:30am" makes no sense; ignore the am/pm marker.
			return artifact.NewTime().WithHour(hour).WithMinute(minute)
		}
	})

	hhoclock := reg.Regex(`(?<!\d|\.)(?<hour>{{hour}})\s*(?:uhr|h|o'?clock)`)
	reg.Register("ruleHHOClock", rule.Pattern{hhoclock}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		hour, ok := groupInt(asRegex(w[0]), "hour")
		if !ok {
			return nil
		}
		return artifact.NewTime().WithHour(hour)
	})
}
