package bayes

import (
	"math"

	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// posterior is the unnormalized log posterior over the sampling
// parameterization. It implements distmv.LogProber for the sampler.
//
// The random walk runs on unconstrained coordinates
// (intercept, slope, log sigma) plus log(nu-1) when nu is estimated.
// Priors are stated on the natural parameters, so the log Jacobian of each
// exp transform is added to keep the density consistent.
type posterior struct {
	family  Family
	priors  Priors
	fixedNu float64
	xs, ys  []float64
}

var _ distmv.LogProber = (*posterior)(nil)

func (p *posterior) LogProb(theta []float64) float64 {
	intercept := theta[0]
	slope := theta[1]
	logSigma := theta[2]
	sigma := math.Exp(logSigma)

	// Jacobian of sigma = exp(logSigma).
	lp := logSigma

	nu := p.fixedNu
	if p.family == StudentT {
		logNuShift := theta[3]
		nu = 1 + math.Exp(logNuShift)
		// Jacobian of nu = 1 + exp(logNuShift).
		lp += logNuShift
		lp += distuv.Gamma{Alpha: p.priors.Nu.Shape, Beta: p.priors.Nu.Rate}.LogProb(nu - 1)
	}

	lp += distuv.Normal{Mu: p.priors.Intercept.Mu, Sigma: p.priors.Intercept.Sigma}.LogProb(intercept)
	lp += distuv.Normal{Mu: p.priors.Slope.Mu, Sigma: p.priors.Slope.Sigma}.LogProb(slope)
	// A half distribution doubles the symmetric density on the positive axis.
	lp += math.Ln2 + distuv.StudentsT{Mu: 0, Sigma: p.priors.Sigma.Scale, Nu: p.priors.Sigma.Nu}.LogProb(sigma)

	for i := range p.xs {
		lp += pointLogLik(p.family, intercept, slope, sigma, nu, p.xs[i], p.ys[i])
	}

	return lp
}

// pointLogLik evaluates the log likelihood of a single observation under
// natural-space parameters. Shared between the sampling target and the
// pointwise log-likelihood matrix kept for cross-validation.
func pointLogLik(family Family, intercept, slope, sigma, nu, x, y float64) float64 {
	mu := intercept + slope*x
	if family == Gaussian {
		return distuv.Normal{Mu: mu, Sigma: sigma}.LogProb(y)
	}

	return distuv.StudentsT{Mu: mu, Sigma: sigma, Nu: nu}.LogProb(y)
}
