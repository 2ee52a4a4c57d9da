package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comtravo/ctparse/nb"
)

func TestDummyScorerAlwaysZero(t *testing.T) {
	var s Scorer = Dummy{}
	assert.Equal(t, 0.0, s.Score([]string{"ruleX"}, 3, 10))
	assert.Equal(t, 0.0, s.ScoreFinal([]string{"ruleX"}, 3, 10))
}

func TestModelScoreFinalWeightsCoverageMoreHeavily(t *testing.T) {
	n := nb.NewNB()
	n.Fit([][]string{{"ruleMonday"}, {"ruleYear"}}, []bool{true, false})

	m := NewModel(n)
	partial := m.Score([]string{"ruleMonday"}, 3, 10)
	final := m.ScoreFinal([]string{"ruleMonday"}, 3, 10)

	// both carry the same NB term, but ScoreFinal's coverage term is
	// weighted far more heavily since coveredChars/txtLen < 1 makes the
	// log term negative -- so ScoreFinal should be far below Score here.
	assert.Less(t, final, partial)
}

func TestModelFullCoverageSeparatesFinalScores(t *testing.T) {
	n := nb.NewNB()
	n.Fit([][]string{{"ruleMonday"}, {"ruleYear"}}, []bool{true, false})
	m := NewModel(n)

	partialCoverage := m.ScoreFinal([]string{"ruleMonday"}, 3, 10)
	fullCoverage := m.ScoreFinal([]string{"ruleMonday"}, 10, 10)
	assert.Greater(t, fullCoverage, partialCoverage)
}
