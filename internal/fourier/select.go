package fourier

import (
	"cmp"
	"slices"
)

// Rank returns the non-DC bin indices of spec ordered by magnitude, largest
// first. Equal magnitudes keep ascending index order.
func Rank(spec Spectrum) []int {
	n := spec.Len()
	if n < 2 {
		return nil
	}
	mags := make([]float64, n)
	idx := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		mags[i] = spec.Magnitude(i)
		idx = append(idx, i)
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(mags[b], mags[a])
	})
	return idx
}

// Select returns the k strongest non-DC bins of spec. k is clamped to the
// number of non-DC bins; k <= 0 selects nothing.
func Select(spec Spectrum, k int) []int {
	return NewSelector(spec).Top(k)
}

// Selector ranks a spectrum once so the per-tick selection is a slice.
type Selector struct {
	ranked []int
}

func NewSelector(spec Spectrum) *Selector {
	return &Selector{ranked: Rank(spec)}
}

// Top returns the k strongest bins. The result shares storage with the
// selector and must not be modified.
func (s *Selector) Top(k int) []int {
	if s == nil {
		return nil
	}
	k = min(max(k, 0), len(s.ranked))
	return s.ranked[:k:k]
}

// Len is the number of selectable bins.
func (s *Selector) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ranked)
}
