package search

import (
	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/timegrinder"
)

// FastPath checks txt against the full timegrinder format catalogue
// (RFC3339, syslog, Apache, DPKG, NGINX, LDAP, Unix epoch, ...) before
// the beam search runs. A hit resolves straight to a fully-specified
// artifact.Time covering the matched span, short-circuiting the rule
// corpus entirely.
//
// This is additive behavior the Python original does not have: it only
// ever fires on fully-specified absolute timestamps, which the rule
// corpus (via ruleDDMMYYYY/ruleHHMM and friends) would also resolve to
// the identical instant, just slower. See DESIGN.md.
func FastPath(tg *timegrinder.TimeGrinder, txt string) (*artifact.Time, bool) {
	b := []byte(txt)
	start, end, ok := tg.Match(b)
	if !ok {
		return nil, false
	}
	t, ok, err := tg.Extract(b[start:end])
	if err != nil || !ok {
		return nil, false
	}

	res := artifact.NewTime().
		WithYear(t.Year()).
		WithMonth(int(t.Month())).
		WithDay(t.Day()).
		WithHour(t.Hour()).
		WithMinute(t.Minute())
	res.SetSpan(start, end)
	return res, true
}

// NewFastPathGrinder builds the default TimeGrinder used by FastPath.
func NewFastPathGrinder() (*timegrinder.TimeGrinder, error) {
	return timegrinder.New(timegrinder.Config{EnableLeftMostSeed: true})
}
