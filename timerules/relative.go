package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// registerRelative ports the reference-time-relative rules: today, now,
// tomorrow, yesterday, end-of-month, end-of-year. Ported from
// ruleToday/ruleNow/ruleTomorrow/ruleYesterday/ruleEOM/ruleEOY.
func registerRelative(reg *rule.Registry) {
	today := reg.Regex(`heute|(?:um diese zeit|zu dieser zeit|um diesen zeitpunkt|zu diesem zeitpunkt)|todays?|(?:at this time)`)
	reg.Register("ruleToday", rule.Pattern{today}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewTime().WithYear(ts.Year()).WithMonth(int(ts.Month())).WithDay(ts.Day())
	})

	now := reg.Regex(`(?:genau)?\s?jetzt|diesen moment|in diesem moment|gerade eben|(?:(?:just|right)\s*)?now|immediately`)
	reg.Register("ruleNow", rule.Pattern{now}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewTime().
			WithYear(ts.Year()).WithMonth(int(ts.Month())).WithDay(ts.Day()).
			WithHour(ts.Hour()).WithMinute(ts.Minute())
	})

	tomorrow := reg.Regex(`morgen|tmrw?|tomm?or?rows?`)
	reg.Register("ruleTomorrow", rule.Pattern{tomorrow}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dm := ts.AddDate(0, 0, 1)
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})

	yesterday := reg.Regex(`gestern|yesterdays?`)
	reg.Register("ruleYesterday", rule.Pattern{yesterday}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dm := ts.AddDate(0, 0, -1)
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})

	eom := reg.Regex(`(?:das )?ende (?:des|dieses) monats?|(?:the )?(?:EOM|end of (?:the )?month)`)
	reg.Register("ruleEOM", rule.Pattern{eom}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		firstOfNext := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location()).AddDate(0, 1, 0)
		dm := firstOfNext.AddDate(0, 0, -1)
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})

	eoy := reg.Regex(`(?:das )?(?:EOY|jahr(?:es)? ?ende|ende (?:des )?jahr(?:es)?)|(?:the )?(?:EOY|end of (?:the )?year)`)
	reg.Register("ruleEOY", rule.Pattern{eoy}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		dm := time.Date(ts.Year(), time.December, 31, 0, 0, 0, 0, ts.Location())
		return artifact.NewTime().WithYear(dm.Year()).WithMonth(int(dm.Month())).WithDay(dm.Day())
	})
}
