package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

func TestFromRegexMatchesComputesCoverage(t *testing.T) {
	reg := rule.NewRegistry()
	a := reg.Regex(`mon`)
	reg.Register("ruleMon", rule.Pattern{a}, func(time.Time, []artifact.Artifact) artifact.Artifact { return nil })

	m := artifact.NewRegexMatch(a.RegexID, 2, 5, "mon")
	pp := FromRegexMatches(reg, []*artifact.RegexMatch{m}, 10)
	assert.Equal(t, 3, pp.MaxCoveredChars)
	assert.Contains(t, pp.ApplicableRules, "ruleMon")
}

func TestMatchRuleRequiresContiguity(t *testing.T) {
	reg := rule.NewRegistry()
	a := reg.Regex(`mon`)
	b := reg.Regex(`tue`)
	isWeekday := rule.Predicate("weekday", func(artifact.Artifact) bool { return true })

	seq := []artifact.Artifact{
		artifact.NewRegexMatch(a.RegexID, 0, 3, "mon"),
		artifact.NewRegexMatch(b.RegexID, 10, 13, "tue"),
	}
	// a, isWeekday, b requires something between a and b: no match since
	// nothing occupies that slot contiguously.
	matches := MatchRule(seq, rule.Pattern{a, isWeekday, b})
	assert.Empty(t, matches)

	// a, b directly adjacent in seq does match.
	matches = MatchRule(seq, rule.Pattern{a, b})
	require.Len(t, matches, 1)
	assert.Equal(t, [2]int{0, 2}, matches[0])
}

func TestApplyRejectsOnNilProduction(t *testing.T) {
	reg := rule.NewRegistry()
	a := reg.Regex(`mon`)
	reg.Register("ruleMon", rule.Pattern{a}, func(time.Time, []artifact.Artifact) artifact.Artifact { return nil })

	m := artifact.NewRegexMatch(a.RegexID, 0, 3, "mon")
	pp := FromRegexMatches(reg, []*artifact.RegexMatch{m}, 10)

	_, ok := pp.Apply(time.Now(), "ruleMon", reg.Rules["ruleMon"], [2]int{0, 1})
	assert.False(t, ok)
}

func TestApplyProducesNewPartialParse(t *testing.T) {
	reg := rule.NewRegistry()
	a := reg.Regex(`monday`)
	reg.Register("ruleMonday", rule.Pattern{a}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewTime().WithDOW(0)
	})

	m := artifact.NewRegexMatch(a.RegexID, 0, 6, "monday")
	pp := FromRegexMatches(reg, []*artifact.RegexMatch{m}, 20)

	next, ok := pp.Apply(time.Now(), "ruleMonday", reg.Rules["ruleMonday"], [2]int{0, 1})
	require.True(t, ok)
	require.Len(t, next.Rules, 2)
	assert.Equal(t, "ruleMonday", next.Rules[1])
	require.Len(t, next.Prod, 1)
	tm, ok := next.Prod[0].(*artifact.Time)
	require.True(t, ok)
	assert.Equal(t, 0, *tm.DOW)
}

func TestLessOrdersByCoverageThenScore(t *testing.T) {
	a := &PartialParse{MaxCoveredChars: 3, Score: 10}
	b := &PartialParse{MaxCoveredChars: 5, Score: 1}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := &PartialParse{MaxCoveredChars: 5, Score: 2}
	assert.True(t, b.Less(c))
}
