// Package stats implements the rank statistics behind the group
// comparison reports: midrank assignment and the Mann-Whitney U test
// with a normal approximation for the two-sided p value.
package stats

import "sort"

// Ranks assigns 1-based ranks to values, giving tied values the mean
// of the ranks they span (midranks). The input is not modified.
func Ranks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// positions i..j share the same value; midrank of 1-based ranks
		mid := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = mid
		}
		i = j + 1
	}
	return ranks
}

// tieCorrection returns sum(t^3 - t) over all tie groups of the sorted
// pooled sample, used in the variance correction of the normal
// approximation.
func tieCorrection(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[i] {
			j++
		}
		t := float64(j - i + 1)
		sum += t*t*t - t
		i = j + 1
	}
	return sum
}
