// Package match turns raw input text into the initial sequences of
// RegexMatch artifacts the search over production rules starts from:
// string normalization, running the full regex catalogue over the
// text, and grouping the hits into maximal contiguous sequences.
//
// Grounded on original_source/ctparse/ctparse.py's `_preprocess_string`,
// `_match_regex` and `_regex_stack`.
package match

import (
	"regexp"
	"strings"
)

// commaSemiBracketControl folds runs of commas, semicolons, whitespace,
// invisible control characters and opening/closing brackets to a
// single space. Ported from ctparse.py's `_repl1`
// (`[,;\pZ\pC\p{Ps}\p{Pe}]+`); Go's RE2 has no \pC (control) or
// \p{Ps}/\p{Pe} (open/close punctuation) classes usable the same way
// across all runes, so the character classes are spelled out directly
// for the ASCII/Latin-1 range this parser's rule corpus targets.
var commaSemiBracketControl = regexp.MustCompile(`[,;\s\x00-\x1f\x7f([{<)\]}>]+`)

// dashVariants folds runs of any dash-like rune (hyphen, en/em dash,
// figure dash, horizontal bar, swung dash) to a single "-". Ported from
// ctparse.py's `_repl2` (`(\p{Pd}|[‐-―]|⁃)+`).
var dashVariants = regexp.MustCompile(`[\x2d\x{2010}-\x{2015}\x{2043}]+`)

// Preprocess normalizes txt the way ctparse.py's _preprocess_string
// does, before regex matching: fold separators to single spaces, fold
// dash variants to a plain "-", trim.
func Preprocess(txt string) string {
	s := commaSemiBracketControl.ReplaceAllString(txt, " ")
	s = strings.TrimSpace(s)
	s = dashVariants.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}
