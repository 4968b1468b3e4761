// Package errs defines the sentinel errors shared across tailfit packages.
//
// Callers should match them with errors.Is; most call sites wrap them with
// fmt.Errorf("...: %w", err) to add context.
package errs

import "errors"

// Dataset construction and validation errors.
var (
	// ErrLengthMismatch indicates the x and y columns have different lengths.
	ErrLengthMismatch = errors.New("x and y columns have different lengths")

	// ErrTooFewObservations indicates a dataset is too small for the requested operation.
	ErrTooFewObservations = errors.New("too few observations")

	// ErrInvalidSampleSize indicates a simulation sample size below the minimum of 3.
	ErrInvalidSampleSize = errors.New("sample size must be at least 3")

	// ErrInvalidCorrelation indicates a correlation outside the open interval (-1, 1).
	ErrInvalidCorrelation = errors.New("correlation must lie in (-1, 1)")

	// ErrNotPositiveDefinite indicates a covariance matrix that is not positive definite.
	ErrNotPositiveDefinite = errors.New("covariance matrix is not positive definite")

	// ErrInvalidOutlierCount indicates an outlier injection count outside [1, n-1].
	ErrInvalidOutlierCount = errors.New("outlier count must be between 1 and n-1")

	// ErrIndexOutOfRange indicates an observation index outside the dataset bounds.
	ErrIndexOutOfRange = errors.New("observation index out of range")
)

// Fitting errors.
var (
	// ErrDegenerateDesign indicates a design with fewer than 2 distinct x values,
	// for which a regression line is not identifiable.
	ErrDegenerateDesign = errors.New("degenerate design: fewer than 2 distinct x values")

	// ErrUnknownFamily indicates an unrecognized likelihood family.
	ErrUnknownFamily = errors.New("unknown likelihood family")

	// ErrInvalidPrior indicates prior hyperparameters outside their valid range.
	ErrInvalidPrior = errors.New("invalid prior hyperparameters")

	// ErrInvalidSamplerConfig indicates sampler settings outside their valid range.
	ErrInvalidSamplerConfig = errors.New("invalid sampler configuration")
)

// Diagnostics and reporting errors.
var (
	// ErrNoFits indicates an operation that requires at least one fit received none.
	ErrNoFits = errors.New("no fits provided")

	// ErrMismatchedFits indicates fits that do not share the same source dataset
	// or observation count and therefore cannot be joined or compared.
	ErrMismatchedFits = errors.New("fits do not share the same source dataset")

	// ErrDuplicateLabel indicates a model label that was already registered.
	ErrDuplicateLabel = errors.New("duplicate model label")

	// ErrUnknownLabel indicates a model label with no registered fit.
	ErrUnknownLabel = errors.New("unknown model label")
)

// Artifact export errors.
var (
	// ErrUnsupportedCompression indicates an unrecognized compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
