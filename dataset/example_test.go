package dataset_test

import (
	"fmt"
	"log"

	"github.com/arloliu/tailfit/dataset"
)

func ExampleSimulate() {
	ds, err := dataset.Simulate(
		dataset.WithSampleSize(10),
		dataset.WithSeed(7),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ds.Len(), ds.Variant(), ds.IsSortedByX())
	// Output: 10 clean true
}

func ExampleDataset_WithOutliers() {
	clean, err := dataset.Simulate(dataset.WithSampleSize(10))
	if err != nil {
		log.Fatal(err)
	}

	outlier, err := clean.WithOutliers(dataset.DefaultOutlierYs...)
	if err != nil {
		log.Fatal(err)
	}

	// The two smallest-x rows carry the injected values.
	fmt.Println(outlier.Variant(), outlier.At(0).Y, outlier.At(1).Y)
	// Output: outlier 15 12
}

func ExampleDataset_Drop() {
	clean, err := dataset.Simulate(dataset.WithSampleSize(10))
	if err != nil {
		log.Fatal(err)
	}
	outlier, err := clean.WithOutliers(dataset.DefaultOutlierYs...)
	if err != nil {
		log.Fatal(err)
	}

	trimmed, err := outlier.Drop(0, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(trimmed.Len(), trimmed.Variant())
	// Output: 8 derived
}
