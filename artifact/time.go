package artifact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnderspecified is returned by Time.DT when year/month/day is
// missing. Raised by the caller of DT, never by the engine itself (§7).
var ErrUnderspecified = errors.New("artifact: cannot convert underspecified Time into a concrete instant")

// Time holds each field as a pointer so "unset" and "zero" are distinct,
// mirroring the Optional[int] fields of ctparse/types.py's Time.
type Time struct {
	span
	Year, Month, Day *int
	Hour, Minute     *int
	DOW              *int // 0=Monday .. 6=Sunday
	POD              string
}

func i(v int) *int { return &v }

// NewTime builds a Time; zero value fields are left unset (nil) unless
// explicitly passed via the With* setters below, matching the
// all-optional constructor in the Python source.
func NewTime() *Time { return &Time{} }

func (t *Time) WithYear(v int) *Time   { t.Year = i(v); return t }
func (t *Time) WithMonth(v int) *Time  { t.Month = i(v); return t }
func (t *Time) WithDay(v int) *Time    { t.Day = i(v); return t }
func (t *Time) WithHour(v int) *Time   { t.Hour = i(v); return t }
func (t *Time) WithMinute(v int) *Time { t.Minute = i(v); return t }
func (t *Time) WithDOW(v int) *Time    { t.DOW = i(v); return t }
func (t *Time) WithPOD(v string) *Time { t.POD = v; return t }

func set(p *int) bool { return p != nil }

// hasOnly mirrors Artifact._hasOnly: every named field is set, every
// other declared attribute is unset.
func (t *Time) hasOnly(fields ...string) bool {
	want := map[string]bool{}
	for _, f := range fields {
		want[f] = true
	}
	check := func(name string, isSet bool) bool {
		if want[name] {
			return isSet
		}
		return !isSet
	}
	return check("year", set(t.Year)) &&
		check("month", set(t.Month)) &&
		check("day", set(t.Day)) &&
		check("hour", set(t.Hour)) &&
		check("minute", set(t.Minute)) &&
		check("DOW", t.DOW != nil) &&
		check("POD", t.POD != "")
}

func (t *Time) hasAtLeast(fields ...string) bool {
	for _, f := range fields {
		switch f {
		case "year":
			if !set(t.Year) {
				return false
			}
		case "month":
			if !set(t.Month) {
				return false
			}
		case "day":
			if !set(t.Day) {
				return false
			}
		case "hour":
			if !set(t.Hour) {
				return false
			}
		case "minute":
			if !set(t.Minute) {
				return false
			}
		case "DOW":
			if t.DOW == nil {
				return false
			}
		case "POD":
			if t.POD == "" {
				return false
			}
		}
	}
	return true
}

// IsDOY: has month and day only.
func (t *Time) IsDOY() bool { return t.hasOnly("month", "day") }

// IsDOM: day only.
func (t *Time) IsDOM() bool { return t.hasOnly("day") }

// IsDOW: DOW only.
func (t *Time) IsDOW() bool { return t.hasOnly("DOW") }

// IsMonth: month only.
func (t *Time) IsMonth() bool { return t.hasOnly("month") }

// IsYear: year only.
func (t *Time) IsYear() bool { return t.hasOnly("year") }

// IsPOD: POD only.
func (t *Time) IsPOD() bool { return t.hasOnly("POD") }

// IsHour: hour only.
func (t *Time) IsHour() bool { return t.hasOnly("hour") }

// IsTOD: hour only, or hour+minute only.
func (t *Time) IsTOD() bool { return t.hasOnly("hour") || t.hasOnly("hour", "minute") }

// IsDate: year+month+day only.
func (t *Time) IsDate() bool { return t.hasOnly("year", "month", "day") }

// IsDateTime: year+month+day+hour(+minute) only.
func (t *Time) IsDateTime() bool {
	return t.hasOnly("year", "month", "day", "hour") ||
		t.hasOnly("year", "month", "day", "hour", "minute")
}

func (t *Time) HasDate() bool { return t.hasAtLeast("year", "month", "day") }
func (t *Time) HasDOY() bool  { return t.hasAtLeast("month", "day") }
func (t *Time) HasDOW() bool  { return t.hasAtLeast("DOW") }
func (t *Time) HasTime() bool { return t.hasAtLeast("hour") }
func (t *Time) HasPOD() bool  { return t.hasAtLeast("POD") }

func fmtOpt(p *int, width int) string {
	if p == nil {
		return "X"
	}
	return fmt.Sprintf("%0*d", width, *p)
}

func (t *Time) String() string {
	dow := "X"
	if t.DOW != nil {
		dow = strconv.Itoa(*t.DOW)
	}
	pod := "X"
	if t.POD != "" {
		pod = t.POD
	}
	return fmt.Sprintf("%s-%s-%s %s:%s (%s/%s)",
		fmtOpt(t.Year, 4), fmtOpt(t.Month, 2), fmtOpt(t.Day, 2),
		fmtOpt(t.Hour, 2), fmtOpt(t.Minute, 2), dow, pod)
}

func (t *Time) NBString() string { return NBString(t) }

// TimeFromString parses the canonical "YYYY-MM-DD HH:MM (D/POD)" form
// produced by String, with 'X' standing for any unset slot. It is the
// exact inverse of String and must round-trip.
func TimeFromString(s string) (*Time, error) {
	// "YYYY-MM-DD HH:MM (D/POD)"
	parts := strings.SplitN(s, " ", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("artifact: invalid Time format %q", s)
	}
	dateParts := strings.Split(parts[0], "-")
	timeParts := strings.Split(parts[1], ":")
	rest := strings.TrimSuffix(strings.TrimPrefix(parts[2], "("), ")")
	dowPod := strings.SplitN(rest, "/", 2)
	if len(dateParts) != 3 || len(timeParts) != 2 || len(dowPod) != 2 {
		return nil, fmt.Errorf("artifact: invalid Time format %q", s)
	}
	t := NewTime()
	parseOpt := func(v string) (*int, error) {
		if v == "X" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
	var err error
	if t.Year, err = parseOpt(dateParts[0]); err != nil {
		return nil, err
	}
	if t.Month, err = parseOpt(dateParts[1]); err != nil {
		return nil, err
	}
	if t.Day, err = parseOpt(dateParts[2]); err != nil {
		return nil, err
	}
	if t.Hour, err = parseOpt(timeParts[0]); err != nil {
		return nil, err
	}
	if t.Minute, err = parseOpt(timeParts[1]); err != nil {
		return nil, err
	}
	if t.DOW, err = parseOpt(dowPod[0]); err != nil {
		return nil, err
	}
	if dowPod[1] != "X" {
		t.POD = dowPod[1]
	}
	return t, nil
}

// Start materializes a Time with the earliest minute consistent with a
// POD lookup, or the time's own hour/minute if it has one.
func (t *Time) Start() *Time {
	hour := 0
	if t.Hour != nil {
		hour = *t.Hour
	} else if t.HasPOD() {
		h, _, _ := PODHours(t.POD)
		hour = h
	}
	minute := 0
	if t.Minute != nil {
		minute = *t.Minute
	}
	r := NewTime()
	r.Year, r.Month, r.Day = t.Year, t.Month, t.Day
	r.Hour, r.Minute = i(hour), i(minute)
	return r
}

// End materializes a Time with the latest minute consistent with a POD
// lookup.
func (t *Time) End() *Time {
	hour := 23
	if t.Hour != nil {
		hour = *t.Hour
	} else if t.HasPOD() {
		_, h, _ := PODHours(t.POD)
		hour = h
	}
	minute := 59
	if t.Minute != nil {
		minute = *t.Minute
	}
	r := NewTime()
	r.Year, r.Month, r.Day = t.Year, t.Month, t.Day
	r.Hour, r.Minute = i(hour), i(minute)
	return r
}

// DT converts to a concrete time.Time, using Start() to resolve a POD.
// Returns ErrUnderspecified if year/month/day is missing.
func (t *Time) DT() (time.Time, error) {
	s := t.Start()
	if s.Year == nil || s.Month == nil || s.Day == nil {
		return time.Time{}, ErrUnderspecified
	}
	return time.Date(*s.Year, time.Month(*s.Month), *s.Day, *s.Hour, *s.Minute, 0, 0, time.UTC), nil
}

// Intersect merges the fields of b into a copy of a, except for the
// fields named in exclude, which are left as in a. Used by rules like
// ruleAtDOW/ruleDOWDOM that combine a concrete date with a DOW artifact
// but must not let the DOW field itself leak into the result.
func (a *Time) Intersect(b *Time, exclude ...string) *Time {
	excl := map[string]bool{}
	for _, e := range exclude {
		excl[e] = true
	}
	r := *a
	if !excl["year"] && b.Year != nil {
		r.Year = b.Year
	}
	if !excl["month"] && b.Month != nil {
		r.Month = b.Month
	}
	if !excl["day"] && b.Day != nil {
		r.Day = b.Day
	}
	if !excl["hour"] && b.Hour != nil {
		r.Hour = b.Hour
	}
	if !excl["minute"] && b.Minute != nil {
		r.Minute = b.Minute
	}
	if !excl["DOW"] && b.DOW != nil {
		r.DOW = b.DOW
	}
	if !excl["POD"] && b.POD != "" {
		r.POD = b.POD
	}
	return &r
}

// Equal implements the structural equality used for dedup (nb_str
// equality), comparing declared fields only, ignoring span.
func (t *Time) Equal(o *Time) bool { return t.NBString() == o.NBString() }
