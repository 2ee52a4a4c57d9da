package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comtravo/ctparse/rule"
)

func TestPreprocessFoldsSeparatorsAndDashes(t *testing.T) {
	assert.Equal(t, "3 - 4 - pm", Preprocess("3,  ;\t— 4 – pm  "))
	assert.Equal(t, "next monday", Preprocess("  next   monday "))
}

func TestAllRegexMatchesSortedAndDeduped(t *testing.T) {
	r := rule.NewRegistry()
	a := r.Regex(`mon(day)?`)
	b := r.Regex(`tue(sday)?`)

	ms, err := AllRegexMatches(r, "mon and tue and mon")
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, a.RegexID, ms[0].ID)
	assert.Equal(t, b.RegexID, ms[1].ID)
	assert.Equal(t, a.RegexID, ms[2].ID)
	assert.True(t, ms[0].Start < ms[1].Start && ms[1].Start < ms[2].Start)
}

func TestAllRegexMatchesCapturesNamedGroups(t *testing.T) {
	r := rule.NewRegistry()
	r.Regex(`(?<day>{{day}})\.(?<month>{{month}})\.`)

	ms, err := AllRegexMatches(r, "on 3.12. we meet")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	day, ok := ms[0].Group("day")
	require.True(t, ok)
	assert.Equal(t, "3", day)
	month, ok := ms[0].Group("month")
	require.True(t, ok)
	assert.Equal(t, "12", month)
}

func TestContiguousSequencesSingleRun(t *testing.T) {
	r := rule.NewRegistry()
	r.Regex(`mon(day)?`)
	r.Regex(`tue(sday)?`)

	txt := "mon tue"
	ms, err := AllRegexMatches(r, txt)
	require.NoError(t, err)
	require.Len(t, ms, 2)

	seqs := ContiguousSequences(txt, ms, func() bool { return false })
	require.Len(t, seqs, 1)
	assert.Len(t, seqs[0], 2)
}

func TestContiguousSequencesGapSplits(t *testing.T) {
	r := rule.NewRegistry()
	r.Regex(`mon(day)?`)
	r.Regex(`tue(sday)?`)

	txt := "mon xxx tue"
	ms, err := AllRegexMatches(r, txt)
	require.NoError(t, err)
	require.Len(t, ms, 2)

	seqs := ContiguousSequences(txt, ms, func() bool { return false })
	require.Len(t, seqs, 2)
	assert.Len(t, seqs[0], 1)
	assert.Len(t, seqs[1], 1)
}
