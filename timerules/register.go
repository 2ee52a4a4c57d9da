package timerules

import "github.com/comtravo/ctparse/rule"

// Register populates reg with the full domain rule corpus. Called from
// init() against rule.Global, and directly by tests that want an
// isolated registry.
func Register(reg *rule.Registry) {
	registerAbsorb(reg)
	registerWeekdays(reg)
	registerMonths(reg)
	registerDDMonths(reg)
	registerPOD(reg)
	registerDOMYear(reg)
	registerRelative(reg)
	registerCombinators(reg)
	registerLatent(reg)
	registerHHMM(reg)
	registerIntervals(reg)
}

func init() {
	Register(rule.Global)
}
