package match

import (
	"regexp"

	"github.com/comtravo/ctparse/artifact"
)

// separatorOnly is the contiguity gap test: two regex matches are
// "adjacent" (no gap) iff everything between them is whitespace.
// Mirrors ctparse.py's `_separator_regex` (`\s*`, fullmatch). See
// DESIGN.md for why this was kept whitespace-only rather than widened
// to punctuation.
var separatorOnly = regexp.MustCompile(`^\s*$`)

// ContiguousSequences groups a start-sorted slice of RegexMatch hits
// into every maximal contiguous sequence: runs of matches with no
// non-whitespace gap between consecutive elements and no overlap.
// `expired` is polled on each iteration; once it reports true, the
// function returns whatever sequences it has already completed,
// mirroring the original's behavior of abandoning the search entirely
// on a TimeoutError rather than returning a partial sequence.
//
// Ported from ctparse.py's `_regex_stack`: build the upper-triangular
// "no gap between i and j" adjacency matrix, then seed a stack with
// every match that has no predecessor, and DFS-extend each sequence
// for as long as a successor exists; a sequence with no possible
// extension is a result.
func ContiguousSequences(txt string, matches []*artifact.RegexMatch, expired func() bool) [][]*artifact.RegexMatch {
	n := len(matches)
	if n == 0 {
		return nil
	}

	// adjacent[j][i] (i<j) == true iff matches[i] and matches[j] can sit
	// next to each other in one sequence, i.e. no overlap and only
	// whitespace between them.
	adjacent := make([][]bool, n)
	for j := range adjacent {
		adjacent[j] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			adjacent[j][i] = noGap(txt, matches[i], matches[j])
		}
	}

	hasPredecessor := func(i int) bool {
		for k := 0; k < n; k++ {
			if adjacent[i][k] {
				return true
			}
		}
		return false
	}

	var stack [][]int
	for i := n - 1; i >= 0; i-- {
		if !hasPredecessor(i) {
			stack = append(stack, []int{i})
		}
	}

	var results [][]*artifact.RegexMatch
	for len(stack) > 0 {
		if expired() {
			return results
		}
		seq := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		last := seq[len(seq)-1]
		extended := false
		for j := last + 1; j < n; j++ {
			if adjacent[j][last] {
				next := make([]int, len(seq)+1)
				copy(next, seq)
				next[len(seq)] = j
				stack = append(stack, next)
				extended = true
			}
		}
		if !extended {
			prod := make([]*artifact.RegexMatch, len(seq))
			for k, idx := range seq {
				prod[k] = matches[idx]
			}
			results = append(results, prod)
		}
	}
	return results
}

func noGap(txt string, a, b *artifact.RegexMatch) bool {
	if b.Start < a.End {
		return false // overlap
	}
	return separatorOnly.MatchString(txt[a.End:b.Start])
}
