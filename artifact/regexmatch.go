package artifact

import "fmt"

// RegexMatch is a named regex hit: the id of the regex that matched and
// the span/text it matched. Unique identity is (ID, Start, End). Groups
// holds any named capture sub-matches (e.g. "day", "month") the regex
// defined, so producers can pull fields out of the match the way
// ctparse/rule.py's producers call `m.group('day')`.
type RegexMatch struct {
	span
	ID     int
	Text   string
	Groups map[string]string
}

// NewRegexMatch builds a RegexMatch for regex id at [start, end) in txt.
func NewRegexMatch(id, start, end int, txt string) *RegexMatch {
	return &RegexMatch{span: span{Start: start, End: end}, ID: id, Text: txt}
}

// Group returns a named capture's text, or ("", false) if absent/empty.
func (r *RegexMatch) Group(name string) (string, bool) {
	v, ok := r.Groups[name]
	return v, ok && v != ""
}

func (r *RegexMatch) String() string {
	return fmt.Sprintf("%d:%s", r.ID, r.Text)
}

func (r *RegexMatch) NBString() string { return NBString(r) }

// Key returns the R<id> capture-group name this regex was compiled under.
func (r *RegexMatch) Key() string { return fmt.Sprintf("R%d", r.ID) }

// Equal implements the (id, mstart, mend) identity used for dedup when
// matching the same regex catalogue repeatedly.
func (r *RegexMatch) Equal(o *RegexMatch) bool {
	return r.ID == o.ID && r.Start == o.Start && r.End == o.End
}
