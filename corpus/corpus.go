// Package corpus replays a labeled set of (target resolution,
// reference time, surface-form variants) examples through the search
// engine with no trained scorer and no stack-depth limit, both to
// regression-test the rule corpus and to harvest the rule-name-prefix
// training samples the naive-Bayes scorer is fit on.
//
// Grounded on original_source/ctparse/ctparse.py's `run_corpus`.
package corpus

import (
	"fmt"
	"time"

	"github.com/comtravo/ctparse/match"
	"github.com/comtravo/ctparse/nb"
	"github.com/comtravo/ctparse/rule"
	"github.com/comtravo/ctparse/scorer"
	"github.com/comtravo/ctparse/search"
)

// Example is one labeled corpus entry: every string in Tests must, for
// at least one production, resolve to a value whose NBString() equals
// Target when parsed with RefTime as the reference time.
type Example struct {
	Target  string
	RefTime time.Time
	Tests   []string
}

// Stats tallies pass/fail counters across a corpus run, mirroring
// run_corpus's pos_parses/neg_parses/pos_first_parses/pos_best_scored.
type Stats struct {
	TotalTests      int
	PosParses       int
	NegParses       int
	PosFirstParses  int
	PosBestScored   int
	FailedTargets   []string
}

// Result bundles the pass/fail verdict, stats, and training samples
// harvested from a corpus run.
type Result struct {
	Stats    Stats
	AllPass  bool
	Samples  [][]string
	Labels   []bool
}

// Run parses every test string in corpus against reg with a null
// scorer and an unbounded beam (no timeout, no stack-depth cap -- this
// is the whole point: a corpus run is about exhaustive recall, not
// about finding the single best parse fast; RelativeMatchLen is 1.0, so
// only the initial sequences with the best coverage are searched), and
// returns whether every example's target was produced at
// least once, plus per-target/overall stats and training samples for
// the naive-Bayes scorer.
func Run(reg *rule.Registry, corpus []Example) (Result, error) {
	var res Result
	res.AllPass = true
	opts := search.Options{Timeout: 0, RelativeMatchLen: 1.0, MaxStackDepth: 0}

	for _, ex := range corpus {
		allTestsPass := true
		for _, test := range ex.Tests {
			parsed, err := search.Parse(reg, scorer.Dummy{}, match.Preprocess(test), ex.RefTime, opts)
			if err != nil {
				return res, fmt.Errorf("corpus: %q: %w", test, err)
			}

			onePass := false
			first := true
			type scored = struct {
				score float64
				ok    bool
			}
			var byScore []scored
			for _, p := range parsed {
				ok := p.Resolution.NBString() == ex.Target
				xs, ys := nb.MapProd(p.Rules, ok)
				res.Samples = append(res.Samples, xs...)
				res.Labels = append(res.Labels, ys...)

				onePass = onePass || ok
				if ok {
					res.Stats.PosParses++
				} else {
					res.Stats.NegParses++
				}
				if ok && first {
					res.Stats.PosFirstParses++
				}
				first = false
				byScore = append(byScore, scored{p.Score, ok})
			}
			if !onePass {
				allTestsPass = false
			}
			if best := bestScored(byScore); best {
				res.Stats.PosBestScored++
			}
			res.Stats.TotalTests++
		}
		if !allTestsPass {
			res.AllPass = false
			res.Stats.FailedTargets = append(res.Stats.FailedTargets, ex.Target)
		}
	}
	return res, nil
}

func bestScored(xs []struct {
	score float64
	ok    bool
}) bool {
	if len(xs) == 0 {
		return false
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if x.score > best.score {
			best = x
		}
	}
	return best.ok
}
