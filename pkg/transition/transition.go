// Package transition builds transition matrices over coded event
// sequences: for every pair of codes (a, b) it counts how often an
// event coded b directly follows an event coded a within the same
// case. Excluded codes are filtered out before adjacency is computed,
// so rows separated only by excluded rows count as consecutive.
package transition

import (
	"math"

	"github.com/srlflow/srlflow/internal/model"
	"github.com/srlflow/srlflow/pkg/vocab"
)

// Config controls how a matrix is built.
type Config struct {
	// Vocabulary fixes the row and column ordering of the output.
	Vocabulary vocab.Vocabulary

	// Exclusion drops matching codes before transitions are counted.
	Exclusion vocab.Exclusion
}

// DefaultConfig uses the standard SRL vocabulary and the "R.SL *"
// exclusion.
func DefaultConfig() Config {
	return Config{
		Vocabulary: vocab.Default(),
		Exclusion:  vocab.DefaultExclusion(),
	}
}

// Matrix is a square table of transition counts between codes,
// immutable once built. Rows are predecessor codes, columns successor
// codes. Ordering is the vocabulary order with any out-of-vocabulary
// codes appended in first-seen order.
type Matrix struct {
	codes  []string
	index  map[string]int
	counts [][]int64
	colN   []int64
	total  int64

	unknown        []string
	filteredEvents int
	excludedEvents int
	caseCount      int
}

// Build counts transitions over events. Events are filtered through
// cfg.Exclusion first, then grouped by case in input order; each
// adjacent pair within a case increments one cell. The input slice is
// not modified.
func Build(events []model.Event, cfg Config) *Matrix {
	filtered := make([]model.Event, 0, len(events))
	excluded := 0
	for _, e := range events {
		if cfg.Exclusion.Match(e.Code) {
			excluded++
			continue
		}
		filtered = append(filtered, e)
	}

	// Full vocabulary first, then unknown codes in first-seen order.
	codes := cfg.Vocabulary.Codes()
	index := make(map[string]int, len(codes))
	for i, c := range codes {
		index[c] = i
	}
	var unknown []string
	for _, e := range filtered {
		if _, ok := index[e.Code]; !ok {
			index[e.Code] = len(codes)
			codes = append(codes, e.Code)
			unknown = append(unknown, e.Code)
		}
	}

	m := &Matrix{
		codes:          codes,
		index:          index,
		counts:         make([][]int64, len(codes)),
		colN:           make([]int64, len(codes)),
		unknown:        unknown,
		filteredEvents: len(filtered),
		excludedEvents: excluded,
	}
	for i := range m.counts {
		m.counts[i] = make([]int64, len(codes))
	}

	for _, c := range model.GroupByCase(filtered) {
		if len(c.Events) == 0 {
			continue
		}
		m.caseCount++
		for i := 0; i+1 < len(c.Events); i++ {
			from := m.index[c.Events[i].Code]
			to := m.index[c.Events[i+1].Code]
			m.counts[from][to]++
		}
	}

	for _, row := range m.counts {
		for j, n := range row {
			m.colN[j] += n
			m.total += n
		}
	}

	return m
}

// Codes returns the row/column ordering of the matrix.
func (m *Matrix) Codes() []string {
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	return out
}

// Unknown returns codes that were present in the data but not in the
// vocabulary, in first-seen order.
func (m *Matrix) Unknown() []string {
	out := make([]string, len(m.unknown))
	copy(out, m.unknown)
	return out
}

// Count returns the number of observed from→to transitions. Unknown
// code pairs return zero.
func (m *Matrix) Count(from, to string) int64 {
	i, ok := m.index[from]
	if !ok {
		return 0
	}
	j, ok := m.index[to]
	if !ok {
		return 0
	}
	return m.counts[i][j]
}

// ColumnN returns the total number of transitions into code, i.e. how
// often code occurred as a successor.
func (m *Matrix) ColumnN(code string) int64 {
	j, ok := m.index[code]
	if !ok {
		return 0
	}
	return m.colN[j]
}

// Total returns the total number of transitions in the matrix. It
// always equals filtered events minus non-empty cases.
func (m *Matrix) Total() int64 { return m.total }

// FilteredEvents returns how many events survived exclusion filtering.
func (m *Matrix) FilteredEvents() int { return m.filteredEvents }

// ExcludedEvents returns how many events the exclusion pattern dropped.
func (m *Matrix) ExcludedEvents() int { return m.excludedEvents }

// Cases returns the number of cases with at least one filtered event.
func (m *Matrix) Cases() int { return m.caseCount }

// DistributionPercent returns code's share of all transitions as a
// successor, in percent. Zero when the matrix holds no transitions.
func (m *Matrix) DistributionPercent(code string) float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.ColumnN(code)) / float64(m.total) * 100
}

// ColumnPercent returns the from→to count as a percentage of all
// transitions into to. Zero when that column has no transitions.
func (m *Matrix) ColumnPercent(from, to string) float64 {
	n := m.ColumnN(to)
	if n == 0 {
		return 0
	}
	return float64(m.Count(from, to)) / float64(n) * 100
}

// round2 rounds to two decimal places for report output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
