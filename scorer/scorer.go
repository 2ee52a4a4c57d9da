// Package scorer ranks partial and final productions during the beam
// search, per spec.md §4.5: a naive-Bayes log-odds term over the
// sequence of applied rule names, plus a coverage-penalty term
// rewarding productions that explain more of the input text.
//
// Grounded on original_source/ctparse/scorer.py (the ProductionScorer
// interface) and nb_scorer.py (NaiveBayesScorer).
package scorer

import "math"

// Scorer ranks a partial production given the sequence of rule names
// used to reach it and how much of the input text it covers.
type Scorer interface {
	// Score ranks an in-progress (possibly partial) production.
	Score(ruleNames []string, coveredChars, txtLen int) float64
	// ScoreFinal ranks a completed, emitted production. Separate from
	// Score because the final coverage term is calibrated with a much
	// larger weight (see FinalCoveragePenaltyMultiplier) to make fully
	// explained parses dominate partial ones at emission time.
	ScoreFinal(ruleNames []string, coveredChars, txtLen int) float64
}

// Dummy always scores 0.0, used when no trained model is available
// (mirrors scorer.py's DummyScorer) -- every candidate ties, so the
// search degenerates to "first production found" ordering.
type Dummy struct{}

func (Dummy) Score(ruleNames []string, coveredChars, txtLen int) float64      { return 0.0 }
func (Dummy) ScoreFinal(ruleNames []string, coveredChars, txtLen int) float64 { return 0.0 }

// Model is the production naive-Bayes-backed scorer used once a model
// has been trained via package corpus. Mirrors nb_scorer.py's
// NaiveBayesScorer, generalized to also provide the final-production
// score with its own coverage weighting.
type Model struct {
	NB ruleScorer
}

// ruleScorer is satisfied by *nb.NB; kept as a narrow interface here so
// this package does not need to import nb's concrete type for tests
// that stub it out.
type ruleScorer interface {
	Apply(ruleNames []string) float64
}

// FinalCoveragePenaltyMultiplier scales the coverage-length term used
// in ScoreFinal. This value (~1000x the Score-time weight of 1.0) is a
// calibration constant tuned against the training corpus, not part of
// the documented scoring contract -- see DESIGN.md.
const FinalCoveragePenaltyMultiplier = 1000.0

func NewModel(nb ruleScorer) *Model { return &Model{NB: nb} }

func (m *Model) Score(ruleNames []string, coveredChars, txtLen int) float64 {
	lenScore := math.Log(float64(coveredChars) / float64(txtLen))
	return m.NB.Apply(ruleNames) + lenScore
}

func (m *Model) ScoreFinal(ruleNames []string, coveredChars, txtLen int) float64 {
	lenScore := math.Log(float64(coveredChars) / float64(txtLen))
	return m.NB.Apply(ruleNames) + FinalCoveragePenaltyMultiplier*lenScore
}
