// Package search runs the best-first beam search over production
// rules that turns a sequence of regex matches into ranked time/date
// resolutions.
//
// Grounded on original_source/ctparse/ctparse.py's `_ctparse` main
// loop (the `StackElement`/beam machinery, here split across
// package parse for the node type and this package for the loop
// itself), plus `ctparse`/`_preprocess_string` for the public entry
// point's defaults.
package search

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/match"
	"github.com/comtravo/ctparse/parse"
	"github.com/comtravo/ctparse/rule"
	"github.com/comtravo/ctparse/scorer"
	"github.com/comtravo/ctparse/timegrinder"
)

// fastPathGrinder is the package-wide TimeGrinder FastPath matches
// against, built lazily on first use since most Parse callers in tests
// never enable it.
var (
	fastPathOnce    sync.Once
	fastPathGrinder *timegrinder.TimeGrinder
)

func getFastPathGrinder() *timegrinder.TimeGrinder {
	fastPathOnce.Do(func() {
		fastPathGrinder, _ = NewFastPathGrinder()
	})
	return fastPathGrinder
}

// tryFastPath reports whether txt, taken as a whole, is already a
// fully-specified absolute timestamp FastPath recognizes. A match that
// only covers part of txt does not count: fast-pathing a substring
// would silently drop whatever text surrounds it, so in that case the
// caller falls through to the full beam search instead.
func tryFastPath(txt string) (Result, bool) {
	tg := getFastPathGrinder()
	if tg == nil {
		return Result{}, false
	}
	t, ok := FastPath(tg, txt)
	if !ok {
		return Result{}, false
	}
	start, end := t.Span()
	if start != 0 || end != len(txt) {
		return Result{}, false
	}
	return Result{Resolution: t, Rules: []string{"fastPath"}, Score: 1.0}, true
}

// ErrTimeout is returned by Parse when Options.Timeout expires before a
// single resolution was produced -- the one failure mode callers need
// to distinguish from "parsed, just found nothing". A timeout that
// happens after at least one resolution was already found is not an
// error: Parse returns what it has, same as the non-debug Python
// generator stopping early.
var ErrTimeout = errors.New("search: timed out before any resolution was found")

// Result is one ranked resolution: the artifact produced, the rule
// names used to build it, and its score. Mirrors ctparse.py's
// `CTParse` class.
type Result struct {
	Resolution artifact.Artifact
	Rules      []string
	Score      float64
}

// Options configures a single Parse call. Zero-value RelativeMatchLen
// and MaxStackDepth mean "no filtering"/"no depth limit", matching
// ctparse()'s own defaults of 1.0 and 10 being supplied by the caller,
// not implied by the zero value -- see DefaultOptions.
type Options struct {
	// Timeout bounds the whole search; zero means no timeout.
	Timeout time.Duration
	// RelativeMatchLen prunes initial regex-match sequences that cover
	// less than this fraction of the best sequence's coverage.
	RelativeMatchLen float64
	// MaxStackDepth caps the beam width; <=0 means unbounded.
	MaxStackDepth int
	// EnableFastPath short-circuits the beam search with FastPath when
	// txt, in full, is already a recognized absolute timestamp.
	EnableFastPath bool
}

// DefaultOptions mirrors the public `ctparse()` entry point's defaults
// in the Python source, plus FastPath enabled.
func DefaultOptions() Options {
	return Options{Timeout: time.Second, RelativeMatchLen: 1.0, MaxStackDepth: 10, EnableFastPath: true}
}

// Parse runs the full search over txt (which must already be
// preprocessed via match.Preprocess) and yields every distinct,
// improving resolution found, in the order discovered. Callers
// wanting the single best resolution should sort by Score and take the
// maximum, mirroring ctparse()'s non-debug return mode.
func Parse(reg *rule.Registry, sc scorer.Scorer, txt string, ts time.Time, opts Options) ([]Result, error) {
	if opts.EnableFastPath {
		if res, ok := tryFastPath(txt); ok {
			return []Result{res}, nil
		}
	}

	deadline := time.Time{}
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	expired := func() bool {
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	matches, err := match.AllRegexMatches(reg, txt)
	if err != nil {
		return nil, err
	}
	seqs := match.ContiguousSequences(txt, matches, expired)
	if expired() {
		return nil, ErrTimeout
	}

	stack := make([]*parse.PartialParse, 0, len(seqs))
	for _, seq := range seqs {
		pp := parse.FromRegexMatches(reg, seq, len(txt))
		pp.Score = sc.Score(pp.Rules, pp.MaxCoveredChars, pp.TxtLen)
		stack = append(stack, pp)
	}
	sortStack(stack)

	if len(stack) > 0 {
		threshold := float64(stack[len(stack)-1].MaxCoveredChars) * opts.RelativeMatchLen
		kept := stack[:0]
		for _, s := range stack {
			if float64(s.MaxCoveredChars) >= threshold {
				kept = append(kept, s)
			}
		}
		stack = kept
	}
	stack = truncate(stack, opts.MaxStackDepth)

	stackProd := map[string]float64{}
	parseProd := map[string]float64{}
	var results []Result

	for len(stack) > 0 {
		if expired() {
			if len(results) == 0 {
				return nil, ErrTimeout
			}
			return results, nil
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var newStack []*parse.PartialParse
		for name, r := range s.ApplicableRules {
			for _, window := range parse.MatchRule(s.Prod, r.Pattern) {
				newS, ok := s.Apply(ts, name, r, window)
				if !ok {
					continue
				}
				newS.Score = sc.Score(newS.Rules, newS.MaxCoveredChars, newS.TxtLen)
				key := prodKey(newS.Prod)
				if prev, seen := stackProd[key]; !seen || prev < newS.Score {
					stackProd[key] = newS.Score
					newStack = append(newStack, newS)
				}
			}
		}

		if len(newStack) == 0 {
			for _, x := range s.Prod {
				if _, isRegex := x.(*artifact.RegexMatch); isRegex {
					continue
				}
				scoreX := sc.ScoreFinal(s.Rules, x.Len(), s.TxtLen)
				key := x.NBString()
				if prev, seen := parseProd[key]; !seen || prev < scoreX {
					parseProd[key] = scoreX
					results = append(results, Result{Resolution: x, Rules: s.Rules, Score: scoreX})
				}
			}
			continue
		}

		stack = append(stack, newStack...)
		sortStack(stack)
		stack = truncate(stack, opts.MaxStackDepth)
	}

	return results, nil
}

// Best returns the highest-scored result, or (Result{}, false) if
// results is empty. Mirrors ctparse()'s non-debug return path.
func Best(results []Result) (Result, bool) {
	if len(results) == 0 {
		return Result{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}

func sortStack(stack []*parse.PartialParse) {
	sort.SliceStable(stack, func(i, j int) bool { return stack[i].Less(stack[j]) })
}

// truncate keeps only the top depth elements of a stack sorted
// ascending (i.e. the tail), matching Python's `stack[-max_stack_depth:]`.
func truncate(stack []*parse.PartialParse, depth int) []*parse.PartialParse {
	if depth <= 0 || len(stack) <= depth {
		return stack
	}
	return stack[len(stack)-depth:]
}

// prodKey canonicalizes a production sequence into a dedup key, the Go
// equivalent of using the tuple of artifacts directly as a dict key in
// Python (relying on each artifact's nb_str-based __hash__/__eq__).
func prodKey(prod []artifact.Artifact) string {
	s := ""
	for _, a := range prod {
		s += a.NBString() + "\x00"
	}
	return s
}
