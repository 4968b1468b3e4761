package loo

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// gpdDraws samples a generalized Pareto by inverse CDF, sorted ascending.
func gpdDraws(k, sigma float64, n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, 1))
	xs := make([]float64, n)
	g := gpdFit{k: k, sigma: sigma}
	for i := range xs {
		xs[i] = g.quantile(rng.Float64())
	}
	slices.Sort(xs)

	return xs
}

func TestFitGPDRecoversShape(t *testing.T) {
	tests := []struct {
		name  string
		k     float64
		sigma float64
	}{
		{"HeavyTail", 0.5, 1.0},
		{"ModerateTail", 0.2, 2.0},
		{"BoundedTail", -0.2, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := gpdDraws(tt.k, tt.sigma, 1000, 42)
			got := fitGPD(xs)
			require.InDelta(t, tt.k, got.k, 0.15)
			require.InDelta(t, tt.sigma, got.sigma, 0.3*tt.sigma+0.05)
		})
	}
}

func TestFitGPDDegenerateTails(t *testing.T) {
	t.Run("AllTied", func(t *testing.T) {
		got := fitGPD(make([]float64, 10))
		require.True(t, math.IsInf(got.k, 1))
	})

	t.Run("TiedQuartile", func(t *testing.T) {
		// Duplicate draws tie the lower quartile to the cutoff.
		xs := []float64{0, 0, 0, 0, 0, 0.5, 1, 1.5, 2, 3}
		got := fitGPD(xs)
		require.False(t, math.IsNaN(got.k))
		require.False(t, math.IsInf(got.k, 0))
	})
}

func TestGPDQuantile(t *testing.T) {
	require.InDelta(t, 4.0, gpdFit{k: 0.5, sigma: 2}.quantile(0.75), 1e-12)
	require.InDelta(t, 1.0, gpdFit{k: 0, sigma: 1}.quantile(1-math.Exp(-1)), 1e-12)
	require.InDelta(t, 1.5, gpdFit{k: -1, sigma: 3}.quantile(0.5), 1e-12)
	require.InDelta(t, 0.0, gpdFit{k: 0.3, sigma: 1}.quantile(0), 1e-12)
}

func TestTailLength(t *testing.T) {
	tests := []struct {
		draws int
		want  int
	}{
		{4000, 190}, // 3*sqrt(4000) limits
		{100, 20},   // 0.2*draws limits
		{25, 5},
		{10, 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tailLength(tt.draws), "draws=%d", tt.draws)
	}
}
