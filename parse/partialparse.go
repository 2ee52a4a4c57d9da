// Package parse implements the partial-parse production state the beam
// search in package search operates over: a sequence of artifacts
// ("prod"), the rule names applied to reach it, and the bookkeeping
// (max coverable chars, score) used to order the search.
//
// Grounded on original_source/ctparse/partial_parse.py (the
// PartialParse class) and the StackElement class in
// original_source/ctparse/ctparse.py, which is the same idea inlined
// into the main loop; this port keeps them as one type since Go has no
// use for the split the Python source only keeps for historical
// reasons.
package parse

import (
	"math"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

// PartialParse is one node of the beam search: a production sequence,
// the rules used to build it, and its ranking bookkeeping.
type PartialParse struct {
	Prod            []artifact.Artifact
	Rules           []string
	TxtLen          int
	MaxCoveredChars int
	LenScore        float64
	Score           float64
	ApplicableRules map[string]*rule.Rule
}

// FromRegexMatches seeds a PartialParse from one maximal contiguous
// sequence of regex hits, with every rule whose pattern could
// conceivably align against this sequence pre-filtered in. Mirrors
// StackElement.from_regex_matches.
func FromRegexMatches(reg *rule.Registry, seq []*artifact.RegexMatch, txtLen int) *PartialParse {
	prod := make([]artifact.Artifact, len(seq))
	rules := make([]string, len(seq))
	for i, m := range seq {
		prod[i] = m
		rules[i] = ruleIDName(m.ID)
	}
	pp := &PartialParse{
		Prod:   prod,
		Rules:  rules,
		TxtLen: txtLen,
	}
	pp.recomputeCoverage()
	pp.ApplicableRules = filterRules(reg, pp.Prod)
	return pp
}

// ruleIDName is the regex-id pseudo rule-name recorded in Rules for
// the initial sequence of regex matches, matching the string `R<id>`
// tokens the naive-Bayes scorer trains and scores against (the same
// role `r.id` plays in StackElement.from_regex_matches).
func ruleIDName(id int) string { return rule.GroupName(id) }

func (pp *PartialParse) recomputeCoverage() {
	first := pp.Prod[0]
	last := pp.Prod[len(pp.Prod)-1]
	start, _ := first.Span()
	_, end := last.Span()
	pp.MaxCoveredChars = end - start
	pp.LenScore = math.Log(float64(pp.MaxCoveredChars) / float64(pp.TxtLen))
}

// Less orders PartialParses by (a) the amount of text they can
// (potentially) cover, then (b) score -- mirrors
// StackElement.__lt__, which the beam search's sorted stack relies on.
func (pp *PartialParse) Less(other *PartialParse) bool {
	if pp.MaxCoveredChars != other.MaxCoveredChars {
		return pp.MaxCoveredChars < other.MaxCoveredChars
	}
	return pp.Score < other.Score
}
