package match

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// AllRegexMatches runs every regex in reg's catalogue over txt and
// returns every (possibly overlapping across different regexes, but
// non-overlapping within one regex) hit as a RegexMatch, sorted by
// (start, end). Mirrors ctparse.py's `_match_regex`.
func AllRegexMatches(reg *rule.Registry, txt string) ([]*artifact.RegexMatch, error) {
	var out []*artifact.RegexMatch

	for _, id := range reg.RegexIDs() {
		re := reg.RegexByID(id)
		m, err := re.FindStringMatch(txt)
		if err != nil {
			return nil, fmt.Errorf("match: regex %d: %w", id, err)
		}
		for m != nil {
			rm := artifact.NewRegexMatch(id, m.Index, m.Index+m.Length, m.String())
			rm.Groups = namedGroups(m, id)
			out = append(out, rm)

			m, err = re.FindNextMatch(m)
			if err != nil {
				return nil, fmt.Errorf("match: regex %d: %w", id, err)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out, nil
}

// wrapperGroupName is the synthetic whole-match named group Regex
// wraps every compiled pattern in (see rule.Registry.Regex).
func wrapperGroupName(id int) string { return fmt.Sprintf("R%d", id) }

// namedGroups extracts every non-empty named capture from m other than
// the numbered groups and the synthetic wrapper group, so a rule's
// producer can pull out e.g. "day"/"month" the way
// ctparse/rule.py's producers call `m.group('day')`.
func namedGroups(m *regexp2.Match, id int) map[string]string {
	wrapper := wrapperGroupName(id)
	groups := map[string]string{}
	for _, g := range m.Groups() {
		if g.Name == "" || g.Name == wrapper {
			continue
		}
		if _, err := strconv.Atoi(g.Name); err == nil {
			continue
		}
		if g.String() == "" {
			continue
		}
		groups[g.Name] = g.String()
	}
	return groups
}
