// Package compare runs two-group comparisons of SRL code or phase
// proportions. For each value it computes the per-case percentage of
// events carrying that value in each group, then tests the two ratio
// samples with a two-sided Mann-Whitney U test.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/srlflow/srlflow/internal/model"
	"github.com/srlflow/srlflow/pkg/stats"
	"github.com/srlflow/srlflow/pkg/vocab"
)

// Field selects which event attribute is compared.
type Field int

const (
	// FieldCode compares SRL action code proportions.
	FieldCode Field = iota
	// FieldPhase compares SRL phase proportions.
	FieldPhase
)

// Config controls a comparison run.
type Config struct {
	Field Field

	// Vocabulary orders code-mode results; values outside it are
	// appended sorted. Unused in phase mode, where values sort
	// lexically.
	Vocabulary vocab.Vocabulary

	// Exclusion drops matching codes (code mode only).
	Exclusion vocab.Exclusion

	// GroupNames are the dataset labels sniffed from file names, in
	// preferred order.
	GroupNames [2]string
}

// DefaultGroupNames are the two transcript corpora of the study.
var DefaultGroupNames = [2]string{"stugptviz", "recipe4u"}

// CodesConfig compares SRL code proportions with the standard
// vocabulary and exclusion.
func CodesConfig() Config {
	return Config{
		Field:      FieldCode,
		Vocabulary: vocab.Default(),
		Exclusion:  vocab.DefaultExclusion(),
		GroupNames: DefaultGroupNames,
	}
}

// PhasesConfig compares SRL phase proportions.
func PhasesConfig() Config {
	return Config{
		Field:      FieldPhase,
		GroupNames: DefaultGroupNames,
	}
}

// Row is one comparison result: a value and its test statistics.
type Row struct {
	Value      string
	MeanRatio1 float64
	MeanRatio2 float64
	MeanRank1  float64
	MeanRank2  float64
	Z          float64
	EffectSize float64
	P          float64
}

// Report is the outcome of comparing two datasets.
type Report struct {
	// Label heads the value column: "Code" or "Phase".
	Label string

	// Group1 and Group2 are display labels, e.g. "Stugptviz".
	Group1, Group2 string

	// N1 and N2 count unique cases per group after filtering.
	N1, N2 int

	// Excluded1 and Excluded2 count rows the exclusion pattern dropped.
	Excluded1, Excluded2 int

	// Unknown lists code-mode values outside the vocabulary.
	Unknown []string

	Rows []Row
}

// Run compares the two event sets. Group labels are positional; use
// AssignGroups first to order the input files by sniffed dataset name.
func Run(events1, events2 []model.Event, cfg Config) (*Report, error) {
	g1 := newGroup(events1, cfg)
	g2 := newGroup(events2, cfg)

	label := "Code"
	if cfg.Field == FieldPhase {
		label = "Phase"
	}

	r := &Report{
		Label:     label,
		Group1:    capitalize(cfg.GroupNames[0]),
		Group2:    capitalize(cfg.GroupNames[1]),
		N1:        len(g1.cases),
		N2:        len(g2.cases),
		Excluded1: g1.excluded,
		Excluded2: g2.excluded,
	}

	values, unknown := orderedValues(g1, g2, cfg)
	r.Unknown = unknown

	for _, v := range values {
		ratios1 := g1.ratios(v)
		ratios2 := g2.ratios(v)
		if len(ratios1) == 0 || len(ratios2) == 0 {
			continue
		}

		res, err := stats.MannWhitney(ratios1, ratios2)
		if err != nil {
			return nil, fmt.Errorf("comparing %q: %w", v, err)
		}

		r.Rows = append(r.Rows, Row{
			Value:      v,
			MeanRatio1: mean(ratios1),
			MeanRatio2: mean(ratios2),
			MeanRank1:  res.MeanRank1,
			MeanRank2:  res.MeanRank2,
			Z:          res.Z,
			EffectSize: res.EffectSize,
			P:          res.P,
		})
	}

	return r, nil
}

// group holds one dataset's filtered per-case value sequences.
type group struct {
	cases    []caseValues
	excluded int
	present  map[string]bool
	order    []string // values in first-seen order
}

type caseValues struct {
	id     string
	values []string
}

func newGroup(events []model.Event, cfg Config) *group {
	g := &group{present: make(map[string]bool)}

	kept := make([]model.Event, 0, len(events))
	for _, e := range events {
		v := value(e, cfg.Field)
		if cfg.Field == FieldCode {
			v = vocab.Normalize(v)
			if cfg.Exclusion.Match(v) {
				g.excluded++
				continue
			}
		}
		if v == "" {
			continue // missing value rows are dropped
		}
		if cfg.Field == FieldCode {
			e.Code = v
		} else {
			e.Phase = v
		}
		kept = append(kept, e)
		if !g.present[v] {
			g.present[v] = true
			g.order = append(g.order, v)
		}
	}

	for _, c := range model.GroupByCase(kept) {
		cv := caseValues{id: c.ID, values: make([]string, len(c.Events))}
		for i, e := range c.Events {
			cv.values[i] = value(e, cfg.Field)
		}
		g.cases = append(g.cases, cv)
	}

	return g
}

// ratios returns, per case, the percentage of that case's events
// carrying v.
func (g *group) ratios(v string) []float64 {
	out := make([]float64, 0, len(g.cases))
	for _, c := range g.cases {
		if len(c.values) == 0 {
			continue
		}
		count := 0
		for _, cv := range c.values {
			if cv == v {
				count++
			}
		}
		out = append(out, float64(count)/float64(len(c.values))*100)
	}
	return out
}

func value(e model.Event, f Field) string {
	if f == FieldPhase {
		return e.Phase
	}
	return e.Code
}

// orderedValues arranges the union of both groups' values. Code mode
// follows the vocabulary with unknown codes appended sorted; phase
// mode sorts lexically.
func orderedValues(g1, g2 *group, cfg Config) (values, unknown []string) {
	union := make([]string, 0, len(g1.order)+len(g2.order))
	union = append(union, g1.order...)
	for _, v := range g2.order {
		if !g1.present[v] {
			union = append(union, v)
		}
	}

	if cfg.Field == FieldPhase {
		sort.Strings(union)
		return union, nil
	}

	ordered, unknown := cfg.Vocabulary.Order(union)
	if len(unknown) > 0 {
		// Comparison tables list unknown codes sorted, not first-seen.
		known := ordered[:len(ordered)-len(unknown)]
		sort.Strings(unknown)
		ordered = append(known, unknown...)
	}
	return ordered, unknown
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
