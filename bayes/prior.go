package bayes

import (
	"fmt"

	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
)

// NormalPrior is a normal prior with mean Mu and standard deviation Sigma.
type NormalPrior struct {
	Mu    float64
	Sigma float64
}

// HalfStudentTPrior is a half-Student-t prior on a positive scale
// parameter, with Nu degrees of freedom and scale Scale.
type HalfStudentTPrior struct {
	Nu    float64
	Scale float64
}

// GammaPrior is a gamma prior with shape Shape and rate Rate.
type GammaPrior struct {
	Shape float64
	Rate  float64
}

// Priors bundles the prior choices for one regression fit. The Nu prior
// applies to nu-1 and is consulted only by the StudentT family.
type Priors struct {
	Intercept NormalPrior
	Slope     NormalPrior
	Sigma     HalfStudentTPrior
	Nu        GammaPrior
}

// DefaultPriors returns weakly informative priors scaled to the data, in
// the style regression packages such as brms use: coefficient priors wide
// relative to the response spread, a half-Student-t prior on sigma, and a
// Gamma(2, 0.1) prior on nu-1.
func DefaultPriors(ds *dataset.Dataset) Priors {
	meanY, sdY := ds.YStats()
	_, sdX := ds.XStats()
	if sdY == 0 {
		sdY = 1
	}
	if sdX == 0 {
		sdX = 1
	}

	return Priors{
		Intercept: NormalPrior{Mu: meanY, Sigma: 10 * sdY},
		Slope:     NormalPrior{Mu: 0, Sigma: 10 * sdY / sdX},
		Sigma:     HalfStudentTPrior{Nu: 3, Scale: 2.5 * sdY},
		Nu:        GammaPrior{Shape: 2, Rate: 0.1},
	}
}

// VaguePriors returns fixed wide priors that ignore the data. Useful when
// several datasets must be fitted under identical priors.
func VaguePriors() Priors {
	return Priors{
		Intercept: NormalPrior{Mu: 0, Sigma: 100},
		Slope:     NormalPrior{Mu: 0, Sigma: 100},
		Sigma:     HalfStudentTPrior{Nu: 3, Scale: 10},
		Nu:        GammaPrior{Shape: 2, Rate: 0.1},
	}
}

func (p Priors) validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"intercept prior sigma", p.Intercept.Sigma > 0},
		{"slope prior sigma", p.Slope.Sigma > 0},
		{"sigma prior nu", p.Sigma.Nu > 0},
		{"sigma prior scale", p.Sigma.Scale > 0},
		{"nu prior shape", p.Nu.Shape > 0},
		{"nu prior rate", p.Nu.Rate > 0},
	}

	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s must be positive: %w", c.name, errs.ErrInvalidPrior)
		}
	}

	return nil
}
