package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRanks(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"ordered", []float64{1, 2, 3}, []float64{1, 2, 3}},
		{"unordered", []float64{3, 1, 2}, []float64{3, 1, 2}},
		{"ties_get_midranks", []float64{1, 2, 2, 3}, []float64{1, 2.5, 2.5, 4}},
		{"all_tied", []float64{7, 7, 7}, []float64{2, 2, 2}},
		{"single", []float64{42}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ranks(tt.values)
			if len(got) != len(tt.expected) {
				t.Fatalf("Ranks(%v) length = %d, want %d", tt.values, len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Ranks(%v)[%d] = %v, want %v", tt.values, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMannWhitney_Separated(t *testing.T) {
	res, err := MannWhitney([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}

	if res.U != 0 {
		t.Errorf("U = %v, want 0", res.U)
	}
	if !almostEqual(res.Z, -1.9640, 1e-4) {
		t.Errorf("Z = %v, want -1.9640", res.Z)
	}
	if !almostEqual(res.P, 0.0809, 1e-4) {
		t.Errorf("P = %v, want 0.0809", res.P)
	}
	if res.MeanRank1 != 2 || res.MeanRank2 != 5 {
		t.Errorf("mean ranks = %v, %v, want 2, 5", res.MeanRank1, res.MeanRank2)
	}
	if !almostEqual(res.EffectSize, 0.8018, 1e-4) {
		t.Errorf("effect size = %v, want 0.8018", res.EffectSize)
	}
}

func TestMannWhitney_WithTies(t *testing.T) {
	res, err := MannWhitney(
		[]float64{10, 20, 20, 30, 40},
		[]float64{15, 20, 35, 50},
	)
	if err != nil {
		t.Fatal(err)
	}

	if res.U != 8 {
		t.Errorf("U = %v, want 8", res.U)
	}
	if !almostEqual(res.Z, -0.4899, 1e-4) {
		t.Errorf("Z = %v, want -0.4899", res.Z)
	}
	if !almostEqual(res.P, 0.7086, 1e-4) {
		t.Errorf("P = %v, want 0.7086", res.P)
	}
	if !almostEqual(res.MeanRank1, 4.6, 1e-9) || !almostEqual(res.MeanRank2, 5.5, 1e-9) {
		t.Errorf("mean ranks = %v, %v, want 4.6, 5.5", res.MeanRank1, res.MeanRank2)
	}
}

func TestMannWhitney_AllIdentical(t *testing.T) {
	res, err := MannWhitney([]float64{5, 5, 5}, []float64{5, 5})
	if err != nil {
		t.Fatal(err)
	}
	if res.P != 1 {
		t.Errorf("P = %v, want 1 for identical samples", res.P)
	}
	if res.Z != 0 {
		t.Errorf("Z = %v, want 0 for identical samples", res.Z)
	}
}

func TestMannWhitney_UComplement(t *testing.T) {
	// U + U' must equal n1*n2 regardless of the data.
	x := []float64{12.5, 0, 33.3}
	y := []float64{25, 50, 0, 10}

	res, err := MannWhitney(x, y)
	if err != nil {
		t.Fatal(err)
	}
	flipped, err := MannWhitney(y, x)
	if err != nil {
		t.Fatal(err)
	}

	if got := res.U + flipped.U; got != float64(len(x)*len(y)) {
		t.Errorf("U + U' = %v, want %d", got, len(x)*len(y))
	}
}

func TestMannWhitney_EmptySample(t *testing.T) {
	if _, err := MannWhitney(nil, []float64{1}); err != ErrEmptySample {
		t.Errorf("expected ErrEmptySample, got %v", err)
	}
	if _, err := MannWhitney([]float64{1}, nil); err != ErrEmptySample {
		t.Errorf("expected ErrEmptySample, got %v", err)
	}
}
