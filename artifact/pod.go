package artifact

import "strings"

// podBase is the fixed table of named part-of-day tags mapping to
// (startHour, endHour), per spec.md §3. "earlymorning" and "lateevening"
// are themselves named tags (not merely "early"+"morning"), matched
// directly before any modifier decomposition is attempted.
var podBase = map[string][2]int{
	"earlymorning": {4, 7},
	"morning":      {6, 9},
	"forenoon":     {9, 12},
	"noon":         {11, 13},
	"afternoon":    {12, 17},
	"evening":      {17, 20},
	"lateevening":  {18, 21},
	"night":        {19, 22},
	"first":        {0, 0},
	"last":         {23, 23},
}

// PODHours looks up (startHour, endHour) for a POD tag. Direct hits in
// the fixed table are returned as-is. Otherwise the tag is decomposed
// into an optional "very" prefix, an "early"/"late" modifier, and a base
// tag, applying a ±1 hour offset for early/late and a further ±1
// (cumulative) for "very", per spec.md's glossary entry for POD.
func PODHours(pod string) (start, end int, ok bool) {
	if r, ok := podBase[pod]; ok {
		return r[0], r[1], true
	}

	rest := pod
	offset := 0
	very := strings.HasPrefix(rest, "very")
	if very {
		rest = strings.TrimPrefix(rest, "very")
	}
	switch {
	case strings.HasPrefix(rest, "early"):
		offset = -1
		rest = strings.TrimPrefix(rest, "early")
	case strings.HasPrefix(rest, "late"):
		offset = 1
		rest = strings.TrimPrefix(rest, "late")
	default:
		return 0, 0, false
	}
	if very {
		offset *= 2
	}
	base, ok := podBase[rest]
	if !ok {
		return 0, 0, false
	}
	return base[0] + offset, base[1] + offset, true
}
