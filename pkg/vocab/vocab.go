// Package vocab defines the SRL coding scheme vocabulary: the fixed
// ordered list of recognized action codes, the exclusion pattern for
// codes that are dropped before analysis, and code normalization.
package vocab

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultCodes is the canonical ordering of SRL action codes. Output
// tables list codes in this order regardless of the order they appear
// in the data.
var DefaultCodes = []string{
	"F.DP", "F.SG",
	"M.CU(B)", "M.CU(D)",
	"C.SC(B)", "C.SC(D)",
	"C.RH(I)", "C.RH(E)", "C.RH(C)",
	"C.AI", "C.RP", "C.CA",
	"R.SE", "R.SL", "R.PN",
}

// DefaultExcludePattern matches annotation placeholder codes such as
// "R.SL *" or "R.SL x". The bare "R.SL" code is a real vocabulary entry
// and does not match.
const DefaultExcludePattern = "R.SL *"

// Vocabulary is an ordered set of action codes.
type Vocabulary struct {
	codes []string
	index map[string]int
}

// New builds a Vocabulary from an ordered code list.
func New(codes []string) Vocabulary {
	v := Vocabulary{
		codes: make([]string, len(codes)),
		index: make(map[string]int, len(codes)),
	}
	copy(v.codes, codes)
	for i, c := range codes {
		v.index[c] = i
	}
	return v
}

// Default returns the standard SRL vocabulary.
func Default() Vocabulary {
	return New(DefaultCodes)
}

// Codes returns the codes in vocabulary order.
func (v Vocabulary) Codes() []string {
	out := make([]string, len(v.codes))
	copy(out, v.codes)
	return out
}

// Len returns the number of codes.
func (v Vocabulary) Len() int { return len(v.codes) }

// Contains reports whether code is in the vocabulary.
func (v Vocabulary) Contains(code string) bool {
	_, ok := v.Index(code)
	return ok
}

// Index returns the position of code in vocabulary order.
func (v Vocabulary) Index(code string) (int, bool) {
	i, ok := v.index[code]
	return i, ok
}

// Order arranges the given codes in vocabulary order. Codes not in the
// vocabulary are appended after all vocabulary codes, preserving the
// order in which they appear in the input. The second return value
// lists those out-of-vocabulary codes so callers can surface them.
func (v Vocabulary) Order(codes []string) (ordered, unknown []string) {
	present := make(map[string]bool, len(codes))
	for _, c := range codes {
		present[c] = true
	}
	for _, c := range v.codes {
		if present[c] {
			ordered = append(ordered, c)
		}
	}
	seen := make(map[string]bool)
	for _, c := range codes {
		if !v.Contains(c) && !seen[c] {
			seen[c] = true
			unknown = append(unknown, c)
		}
	}
	ordered = append(ordered, unknown...)
	return ordered, unknown
}

// Exclusion drops codes matching a glob pattern before analysis.
type Exclusion struct {
	pattern string
}

// NewExclusion compiles an exclusion glob. An empty pattern matches
// nothing.
func NewExclusion(pattern string) Exclusion {
	return Exclusion{pattern: pattern}
}

// DefaultExclusion excludes "R.SL *"-style placeholder codes.
func DefaultExclusion() Exclusion {
	return NewExclusion(DefaultExcludePattern)
}

// Pattern returns the glob pattern.
func (e Exclusion) Pattern() string { return e.pattern }

// Match reports whether code should be excluded.
func (e Exclusion) Match(code string) bool {
	if e.pattern == "" {
		return false
	}
	ok, err := doublestar.Match(e.pattern, code)
	return err == nil && ok
}

// normalizations fixes spacing variants that appear in hand-coded data.
var normalizations = map[string]string{
	"C.SC (B)": "C.SC(B)",
	"C.SC (D)": "C.SC(D)",
}

// Normalize canonicalizes a raw code value from a spreadsheet cell.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if fixed, ok := normalizations[code]; ok {
		return fixed
	}
	return code
}
