package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrEmptySample is returned when either sample has no observations.
var ErrEmptySample = errors.New("stats: empty sample")

// MannWhitneyResult holds the outcome of a two-sided Mann-Whitney U
// test between two independent samples.
type MannWhitneyResult struct {
	// U is the U statistic of the first sample.
	U float64

	// Z is the plain normal approximation (U - n1*n2/2) / sqrt(n1*n2*(n+1)/12),
	// without tie or continuity correction. This is the value reported
	// in the comparison tables.
	Z float64

	// P is the two-sided p value from a tie-corrected, continuity-
	// corrected normal approximation.
	P float64

	// MeanRank1 and MeanRank2 are the mean pooled midranks per sample.
	MeanRank1 float64
	MeanRank2 float64

	// EffectSize is r = |Z| / sqrt(n1 + n2).
	EffectSize float64
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// MannWhitney runs a two-sided Mann-Whitney U test on x and y.
func MannWhitney(x, y []float64) (*MannWhitneyResult, error) {
	n1 := len(x)
	n2 := len(y)
	if n1 == 0 || n2 == 0 {
		return nil, ErrEmptySample
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks := Ranks(pooled)

	var r1, r2 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	for i := n1; i < n1+n2; i++ {
		r2 += ranks[i]
	}

	fn1 := float64(n1)
	fn2 := float64(n2)
	n := fn1 + fn2

	u1 := r1 - fn1*(fn1+1)/2
	mu := fn1 * fn2 / 2

	res := &MannWhitneyResult{
		U:         u1,
		MeanRank1: r1 / fn1,
		MeanRank2: r2 / fn2,
	}

	sigma := math.Sqrt(fn1 * fn2 * (n + 1) / 12)
	if sigma > 0 {
		res.Z = (u1 - mu) / sigma
	}
	res.EffectSize = math.Abs(res.Z) / math.Sqrt(n)

	// Tie-corrected variance for the p value.
	ties := tieCorrection(pooled)
	sigmaTie := math.Sqrt(fn1 * fn2 / 12 * ((n + 1) - ties/(n*(n-1))))
	if sigmaTie == 0 {
		// All observations identical: no evidence either way.
		res.P = 1
		return res, nil
	}

	bigU := math.Max(u1, fn1*fn2-u1)
	z := (bigU - mu - 0.5) / sigmaTie
	p := 2 * stdNormal.Survival(z)
	if p > 1 {
		p = 1
	}
	res.P = p

	return res, nil
}
