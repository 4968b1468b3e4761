package bayes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arloliu/tailfit/errs"
)

// Family selects the likelihood distribution of the regression errors.
type Family int

const (
	// Gaussian models errors as normal. Outliers pull the fit.
	Gaussian Family = iota
	// StudentT models errors as Student's t with estimated degrees of
	// freedom, shrinking the influence of extreme observations.
	StudentT
	// StudentTFixed models errors as Student's t with the degrees of
	// freedom held at a constant instead of estimated.
	StudentTFixed
)

var familyNames = map[Family]string{
	Gaussian:      "gaussian",
	StudentT:      "student_t",
	StudentTFixed: "student_t_fixed",
}

// String returns the canonical name of the family.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("family(%d)", int(f))
}

// FamilyFromString parses a family name as produced by String.
//
// Returns errs.ErrUnknownFamily when the name matches no family.
func FamilyFromString(name string) (Family, error) {
	for family, n := range familyNames {
		if n == name {
			return family, nil
		}
	}

	supported := make([]string, 0, len(familyNames))
	for _, n := range familyNames {
		supported = append(supported, n)
	}
	sort.Strings(supported)

	return Family(-1), fmt.Errorf("%q (supported: %s): %w", name, strings.Join(supported, ", "), errs.ErrUnknownFamily)
}

// NumParams returns the number of sampled parameters for the family:
// intercept, slope and sigma, plus nu when it is estimated.
func (f Family) NumParams() int {
	if f == StudentT {
		return 4
	}

	return 3
}

// ParamNames returns the parameter names in draw-column order.
func (f Family) ParamNames() []string {
	names := []string{"intercept", "slope", "sigma"}
	if f == StudentT {
		names = append(names, "nu")
	}

	return names
}

func (f Family) valid() bool {
	_, ok := familyNames[f]

	return ok
}
