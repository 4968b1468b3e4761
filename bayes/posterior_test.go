package bayes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPosterior(family Family) *posterior {
	return &posterior{
		family:  family,
		priors:  VaguePriors(),
		fixedNu: DefaultFixedNu,
		xs:      []float64{-1, 0, 1, 2},
		ys:      []float64{-0.9, 0.1, 1.2, 1.9},
	}
}

func TestPointLogLikGaussian(t *testing.T) {
	// Closed form of the normal log density.
	mu := 0.3 + 0.9*1.5
	sigma := 0.7
	y := 2.0
	want := -0.5*math.Log(2*math.Pi*sigma*sigma) - (y-mu)*(y-mu)/(2*sigma*sigma)

	got := pointLogLik(Gaussian, 0.3, 0.9, sigma, 0, 1.5, y)
	require.InDelta(t, want, got, 1e-12)
}

func TestPointLogLikStudentTLimit(t *testing.T) {
	// For huge nu the Student's t density converges to the normal one.
	gauss := pointLogLik(Gaussian, 0.1, 1.1, 0.8, 0, 0.5, 1.7)
	studentT := pointLogLik(StudentT, 0.1, 1.1, 0.8, 1e6, 0.5, 1.7)
	require.InDelta(t, gauss, studentT, 1e-3)

	// For small nu the tails are heavier: an extreme point is far more
	// plausible under the t likelihood.
	farGauss := pointLogLik(Gaussian, 0, 1, 0.5, 0, 0, 20)
	farT := pointLogLik(StudentTFixed, 0, 1, 0.5, 4, 0, 20)
	require.Greater(t, farT, farGauss+100)
}

func TestPosteriorLogProb(t *testing.T) {
	t.Run("FiniteAtReasonablePoints", func(t *testing.T) {
		for _, family := range []Family{Gaussian, StudentT, StudentTFixed} {
			p := testPosterior(family)
			theta := make([]float64, family.NumParams())
			theta[0], theta[1], theta[2] = 0.1, 1.0, math.Log(0.5)
			if family == StudentT {
				theta[3] = math.Log(3)
			}
			lp := p.LogProb(theta)
			require.False(t, math.IsNaN(lp), "family %s", family)
			require.False(t, math.IsInf(lp, 0), "family %s", family)
		}
	})

	t.Run("PeaksNearGoodFit", func(t *testing.T) {
		p := testPosterior(Gaussian)
		good := p.LogProb([]float64{0.05, 1.0, math.Log(0.2)})
		badSlope := p.LogProb([]float64{0.05, -2.0, math.Log(0.2)})
		badSigma := p.LogProb([]float64{0.05, 1.0, math.Log(50.0)})
		require.Greater(t, good, badSlope)
		require.Greater(t, good, badSigma)
	})

	t.Run("TightPriorDominates", func(t *testing.T) {
		p := testPosterior(Gaussian)
		p.priors.Intercept = NormalPrior{Mu: 3, Sigma: 1e-4}

		atPrior := p.LogProb([]float64{3, 1.0, math.Log(0.5)})
		offPrior := p.LogProb([]float64{2.9, 1.0, math.Log(0.5)})
		require.Greater(t, atPrior, offPrior)
	})

	t.Run("NuChangesStudentTDensity", func(t *testing.T) {
		p := testPosterior(StudentT)
		theta := []float64{0.1, 1.0, math.Log(0.5), math.Log(1)}
		heavier := p.LogProb(theta)
		theta[3] = math.Log(100)
		lighter := p.LogProb(theta)
		require.NotEqual(t, heavier, lighter)
	})
}
