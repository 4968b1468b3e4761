package bayes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tailfit/errs"
)

func TestFamilyString(t *testing.T) {
	require.Equal(t, "gaussian", Gaussian.String())
	require.Equal(t, "student_t", StudentT.String())
	require.Equal(t, "student_t_fixed", StudentTFixed.String())
	require.Equal(t, "family(42)", Family(42).String())
}

func TestFamilyFromString(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, family := range []Family{Gaussian, StudentT, StudentTFixed} {
			parsed, err := FamilyFromString(family.String())
			require.NoError(t, err)
			require.Equal(t, family, parsed)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := FamilyFromString("cauchy")
		require.ErrorIs(t, err, errs.ErrUnknownFamily)
		require.Contains(t, err.Error(), "supported: gaussian, student_t, student_t_fixed")
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := FamilyFromString("")
		require.ErrorIs(t, err, errs.ErrUnknownFamily)
	})
}

func TestFamilyParams(t *testing.T) {
	require.Equal(t, 3, Gaussian.NumParams())
	require.Equal(t, 4, StudentT.NumParams())
	require.Equal(t, 3, StudentTFixed.NumParams())

	require.Equal(t, []string{"intercept", "slope", "sigma"}, Gaussian.ParamNames())
	require.Equal(t, []string{"intercept", "slope", "sigma", "nu"}, StudentT.ParamNames())
	require.Equal(t, []string{"intercept", "slope", "sigma"}, StudentTFixed.ParamNames())
}
