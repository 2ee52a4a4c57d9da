package nb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizerUnigramVocabulary(t *testing.T) {
	v := NewVectorizer(1, 1)
	X := v.FitTransform([][]string{{"a", "b", "a"}, {"b", "c"}})
	require.Len(t, X, 2)
	assert.Len(t, v.Vocabulary, 3)
}

func TestVectorizerNgramsIncludeBigrams(t *testing.T) {
	v := NewVectorizer(1, 2)
	grams := v.ngrams([]string{"a", "b", "c"})
	assert.Contains(t, grams, "a")
	assert.Contains(t, grams, "a b")
	assert.Contains(t, grams, "b c")
	assert.NotContains(t, grams, "a b c")
}

func TestVectorizerTransformDoesNotMutateVocabulary(t *testing.T) {
	v := NewVectorizer(1, 1)
	v.FitTransform([][]string{{"a", "b"}})
	before := len(v.Vocabulary)
	v.Transform([][]string{{"z", "z", "z"}})
	assert.Len(t, v.Vocabulary, before)
}

func TestMultinomialNaiveBayesSeparatesClasses(t *testing.T) {
	v := NewVectorizer(1, 1)
	X := v.FitTransform([][]string{
		{"ruleMonday"},
		{"ruleMonday", "ruleMonday"},
		{"ruleYear"},
		{"ruleYear", "ruleYear"},
	})
	y := []int{1, 1, -1, -1}
	est := NewMultinomialNaiveBayes(1.0).Fit(X, y)

	probe := v.Transform([][]string{{"ruleMonday"}, {"ruleYear"}})
	probs := est.PredictLogProbability(probe)
	require.Len(t, probs, 2)
	assert.Greater(t, probs[0][1], probs[0][0]) // ruleMonday -> positive
	assert.Greater(t, probs[1][0], probs[1][1]) // ruleYear -> negative
}

func TestNBHasModelBeforeAndAfterFit(t *testing.T) {
	n := NewNB()
	assert.False(t, n.HasModel())
	assert.Equal(t, 0.0, n.Apply([]string{"ruleMonday"}))

	n.Fit([][]string{{"ruleMonday"}, {"ruleYear"}}, []bool{true, false})
	assert.True(t, n.HasModel())
}

func TestMapProdPrefixes(t *testing.T) {
	xs, ys := MapProd([]string{"R1", "ruleMonday", "ruleAtDOW"}, true)
	require.Len(t, xs, 2)
	assert.Equal(t, []string{"R1"}, xs[0])
	assert.Equal(t, []string{"R1", "ruleMonday"}, xs[1])
	assert.Equal(t, []bool{true, true}, ys)
}

func TestMapProdSingleElementProd(t *testing.T) {
	xs, ys := MapProd([]string{"R1"}, true)
	assert.Equal(t, [][]string{{}}, xs)
	assert.Equal(t, []bool{false}, ys)
}
