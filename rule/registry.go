// Package rule implements the production-rule registry: a table of
// (pattern, producer) pairs keyed by rule name, plus the catalogue of
// compiled, uniquely-id'ed regexes the patterns reference.
//
// Grounded on ctparse/rule.py (original_source) for the registration
// API, and on gravwell/processors/regexrouter.go for the idiom of a
// compiled-regex-by-id table keyed for fast lookup during matching.
//
// Go's standard `regexp` package (RE2) cannot express the lookaround
// position assertions ctparse's rules rely on, so the regex engine here
// is github.com/dlclark/regexp2, a PCRE/.NET-style backtracking engine.
// regexp2 has no DEFINE-block/subroutine-call feature, so the shared
// sub-patterns (_day, _month, _year, _hour, _minute and the separator
// position assertions) are implemented as a textual template expansion
// at registration time instead (see expandTemplates).
package rule

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/comtravo/ctparse/artifact"
)

// Producer builds a new artifact from a reference time and the window
// of artifacts a rule's pattern matched. A nil return is a soft
// rejection ("this rule does not apply here"), not an error -- mirrors
// ctparse/rule.py's `@rule` decorator, whose wrapped functions return
// None freely.
type Producer func(ts time.Time, window []artifact.Artifact) artifact.Artifact

// AtomKind distinguishes a pattern atom that matches a RegexMatch by
// compiled-regex id from one that tests an arbitrary predicate on
// whatever artifact sits at that position.
type AtomKind int

const (
	AtomRegex AtomKind = iota
	AtomPredicate
)

// Atom is one element of a rule's pattern: either "the artifact here
// must be a RegexMatch produced by regex RegexID" or "the artifact here
// must satisfy Test" (a dimension(...) or predicate(...) check in the
// Python source).
type Atom struct {
	Kind     AtomKind
	RegexID  int
	Name     string // debug label: predicate name or dimension type name
	Test     func(artifact.Artifact) bool
}

// IsRegex reports whether this atom is a regex-match atom, used by
// _seq_match's alignment algorithm to decide how to advance.
func (a Atom) IsRegex() bool { return a.Kind == AtomRegex }

// Pattern is a rule's flat sequence of per-artifact predicates.
type Pattern []Atom

// Rule is a registered production rule.
type Rule struct {
	Name     string
	Pattern  Pattern
	Producer Producer
}

// Registry holds the enumerable rule table and the compiled-regex table
// the patterns reference, per spec.md §4.1.
type Registry struct {
	Rules        map[string]*Rule
	regexByID    map[int]*regexp2.Regexp
	sourceByID   map[int]string
	idBySource   map[string]int
	nextRegexID  int
}

// regexIDBase leaves room below it for the core's own non-rule regex
// ids (none currently used, but mirrors ctparse/rule.py's
// `_regex_cnt = 100`, which reserves ids below 100 for production
// types).
const regexIDBase = 100

// NewRegistry creates an empty registry with its regex id counter
// seeded the way ctparse/rule.py seeds _regex_cnt.
func NewRegistry() *Registry {
	return &Registry{
		Rules:       map[string]*Rule{},
		regexByID:   map[int]*regexp2.Regexp{},
		sourceByID:  map[int]string{},
		idBySource:  map[string]int{},
		nextRegexID: regexIDBase,
	}
}

// Global is the process-wide registry built at module load, mirroring
// the module-level `rules = {}` / `_regex = {}` dicts in
// ctparse/rule.py. timerules registers its rule corpus into this
// registry from its own init().
var Global = NewRegistry()

// templates supplies the shared named sub-patterns ctparse/rule.py
// defines once via a `(?(DEFINE)...)` block and reuses via `(?&name)`
// subroutine calls. regexp2 has no DEFINE-block equivalent, so patterns
// reference these as literal `{{name}}` tokens, expanded textually
// before compilation.
var templates = map[string]string{
	"hour":        `(?:[01]?\d)|(?:2[0-3])`,
	"minute":      `[0-5]\d`,
	"day":         `[012]?[1-9]|10|20|30|31`,
	"month":       `10|11|12|0?[1-9]`,
	"year":        `(?:19\d\d)|(?:20[0-2]\d)|(?:\d\d)`,
	"pos_before":  `(?<=[\s\p{P}]|^)`,
	"pos_behind":  `(?=[\s\p{P}]|$)`,
}

func expandTemplates(p string) string {
	for name, sub := range templates {
		p = strings.ReplaceAll(p, "{{"+name+"}}", "(?:"+sub+")")
	}
	return p
}

// ToJoin is the shared "range join word" sub-pattern reused by several
// range-forming rules ("-", "to", "until", "bis", "und", ...). Ported
// from ctparse/rule.py's module-level `_regex_to_join`.
const ToJoin = `(?:\-|to(?: the)?|(?:un)?til|bis(?: zum)?|zum|auf(?: den)?|und|no later than|sp(?:ä|ae)testens?|at latest(?: at)?)`

// Regex compiles pattern (after template expansion), wraps it in a
// uniquely-id'ed named capture group `R<id>`, registers it in the
// compiled-regex table (memoized by source string, so re-using the same
// literal pattern string across rules shares one id) and returns the
// regex-match atom for it.
//
// Panics (a registration failure, fatal at startup per spec.md §7) if
// the pattern can match the empty string.
func (r *Registry) Regex(pattern string) Atom {
	if id, ok := r.idBySource[pattern]; ok {
		return Atom{Kind: AtomRegex, RegexID: id, Name: fmt.Sprintf("R%d", id)}
	}

	id := r.nextRegexID
	r.nextRegexID++

	expanded := expandTemplates(pattern)
	wrapped := fmt.Sprintf("(?i)(?<R%d>%s)", id, expanded)
	re, err := regexp2.Compile(wrapped, regexp2.None)
	if err != nil {
		panic(fmt.Sprintf("rule: failed to compile regex %q: %v", pattern, err))
	}
	if empty, _ := re.MatchString(""); empty {
		panic(fmt.Sprintf("rule: regex %q matches the empty string", pattern))
	}

	r.regexByID[id] = re
	r.sourceByID[id] = pattern
	r.idBySource[pattern] = id

	return Atom{Kind: AtomRegex, RegexID: id, Name: fmt.Sprintf("R%d", id)}
}

// Predicate builds a pattern atom testing a derived boolean property of
// whatever artifact occupies that slot, e.g. predicate("isDOM").
func Predicate(name string, test func(artifact.Artifact) bool) Atom {
	return Atom{Kind: AtomPredicate, Name: "predicate:" + name, Test: test}
}

// Dimension builds a pattern atom testing variant membership, e.g.
// dimension(Time) in the Python source.
func Dimension(name string, test func(artifact.Artifact) bool) Atom {
	return Atom{Kind: AtomPredicate, Name: "dimension:" + name, Test: test}
}

// Register adds a named production rule to the registry.
//
// Registration invariants (fatal at startup if violated, spec.md §4.1):
// (a) no two consecutive regex atoms in pattern (they must be merged
// upstream into one regex); (b) enforced per-atom already by Regex
// above (no atom matching the empty string).
func (r *Registry) Register(name string, pattern Pattern, producer Producer) {
	for i := 0; i+1 < len(pattern); i++ {
		if pattern[i].IsRegex() && pattern[i+1].IsRegex() {
			panic(fmt.Sprintf("rule: %s has two consecutive regex atoms; merge them upstream", name))
		}
	}
	if _, exists := r.Rules[name]; exists {
		panic(fmt.Sprintf("rule: %s already registered", name))
	}
	r.Rules[name] = &Rule{Name: name, Pattern: pattern, Producer: wrapProducer(producer)}
}

// wrapProducer mirrors the `fwrapper` in ctparse/rule.py: on a
// successful production, expand the result's span to cover all
// consumed inputs.
func wrapProducer(f Producer) Producer {
	return func(ts time.Time, window []artifact.Artifact) artifact.Artifact {
		res := f(ts, window)
		if res == nil {
			return nil
		}
		return artifact.UpdateSpan(res, window...)
	}
}

// GroupName returns the `R<id>` wrapper-group/pseudo-rule-name a regex
// id is recorded under, e.g. in a PartialParse's rule history for its
// seed sequence of regex matches.
func GroupName(id int) string { return fmt.Sprintf("R%d", id) }

// RegexByID exposes the compiled regex for id, used by the matcher.
func (r *Registry) RegexByID(id int) *regexp2.Regexp { return r.regexByID[id] }

// RegexIDs returns every registered regex id, in registration order.
func (r *Registry) RegexIDs() []int {
	ids := make([]int, 0, len(r.regexByID))
	for id := regexIDBase; id < r.nextRegexID; id++ {
		if _, ok := r.regexByID[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
