package tailfit_test

import (
	"fmt"

	"github.com/arloliu/tailfit"
	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/dataset"
)

func ExampleSimulatePair() {
	clean, outlier, err := tailfit.SimulatePair(dataset.WithSeed(42))
	if err != nil {
		panic(err)
	}

	fmt.Println(clean.Variant(), clean.Len())
	fmt.Println(outlier.Variant(), outlier.Len())
	fmt.Println("shared x column:", clean.At(0).X == outlier.At(0).X)
	// Output:
	// clean 100
	// outlier 100
	// shared x column: true
}

func ExampleDefaultFamilies() {
	for _, family := range tailfit.DefaultFamilies() {
		fmt.Println(family)
	}
	// Output:
	// gaussian
	// student_t
	// student_t_fixed
}

func ExampleRunComparison() {
	res, err := tailfit.RunComparison(
		tailfit.WithFamilies(bayes.Gaussian, bayes.StudentTFixed),
		tailfit.WithDatasetOptions(dataset.WithSampleSize(40)),
		tailfit.WithFitOptions(
			bayes.WithChains(2),
			bayes.WithBurnIn(200),
			bayes.WithDraws(200),
			bayes.WithThin(2),
		),
	)
	if err != nil {
		panic(err)
	}

	for _, label := range res.Comparison.Labels() {
		fmt.Println(label)
	}
	// Output:
	// ols-clean
	// gaussian-clean
	// student_t_fixed-clean
	// ols-outlier
	// gaussian-outlier
	// student_t_fixed-outlier
}
