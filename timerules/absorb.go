package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerAbsorb ports the three "absorb a filler word" rules that let
// a preposition or trailing comma disappear without changing the
// artifact it decorates.
func registerAbsorb(reg *rule.Registry) {
	onTime := reg.Regex(`at|on|am|um|gegen|den|der|the|ca\.?|approx\.?|about|in(?: the)?`)
	reg.Register("ruleAbsorbOnTime", rule.Pattern{onTime, timeDim()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return w[1]
	})

	fromInterval := reg.Regex(`von|vom|from`)
	reg.Register("ruleAbsorbFromInterval", rule.Pattern{fromInterval, intervalDim()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return w[1]
	})

	dowComma := reg.Regex(`,(?: de[nmr])?`)
	reg.Register("ruleAbsorbDOWComma", rule.Pattern{hasDOW(), dowComma}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return w[0]
	})
}
