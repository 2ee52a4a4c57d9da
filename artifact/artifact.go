// Package artifact defines the typed values produced while parsing a
// time expression: regex hits, times, intervals and durations. Every
// value carries a span into the original text and a structural equality
// that ignores that span, so that identical resolutions found at
// different offsets collapse to the same production key.
//
// Grounded on ctparse/types.py (original_source).
package artifact

import "fmt"

// Artifact is the common interface implemented by every value the engine
// can produce: RegexMatch, Time, Interval and Duration.
type Artifact interface {
	// Span returns the half-open character range [Start, End) in the
	// source text this artifact covers.
	Span() (start, end int)
	// SetSpan overwrites the covered span; called by rule application
	// once a production's inputs are known.
	SetSpan(start, end int)
	// Len returns End-Start.
	Len() int
	// String renders the artifact body (no span), used for both
	// display and as the key of nb_str.
	String() string
	// NBString is the canonical, span-free string form used as a
	// dedup/production key: "TypeName[]{body}".
	NBString() string
}

// span is embedded by every concrete artifact to provide the Span/SetSpan/Len
// plumbing without repeating it.
type span struct {
	Start int
	End   int
}

func (s *span) Span() (int, int) { return s.Start, s.End }
func (s *span) SetSpan(start, end int) {
	s.Start = start
	s.End = end
}
func (s *span) Len() int { return s.End - s.Start }

// NBString formats any artifact's canonical, span-free representation.
func NBString(a Artifact) string {
	return fmt.Sprintf("%s[]{%s}", TypeName(a), a.String())
}

// TypeName returns the artifact's variant name, used in NBString and in
// dimension() pattern matching.
func TypeName(a Artifact) string {
	switch a.(type) {
	case *RegexMatch:
		return "RegexMatch"
	case *Time:
		return "Time"
	case *Interval:
		return "Interval"
	case *Duration:
		return "Duration"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// UpdateSpan sets a's span to cover all of args, from the start of the
// first to the end of the last. Mirrors Artifact.update_span in
// ctparse/types.py.
func UpdateSpan(a Artifact, args ...Artifact) Artifact {
	if len(args) == 0 {
		return a
	}
	start, _ := args[0].Span()
	_, end := args[len(args)-1].Span()
	a.SetSpan(start, end)
	return a
}
