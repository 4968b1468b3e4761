// Package report joins regression fits and their diagnostics into a
// comparison keyed by model label, and renders it as aligned text tables.
//
// A label names one model of one dataset, for example "gaussian-clean" or
// "student_t-outlier". Each label can carry a least-squares fit, a
// Bayesian fit and a cross-validation result; everything attached to the
// same label must describe the same dataset, which is enforced through the
// dataset fingerprints the fits carry.
package report

import (
	"fmt"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/loo"
	"github.com/arloliu/tailfit/ols"
)

// Entry bundles everything attached to one model label. Any part may be
// nil; parts that are present agree on the underlying dataset.
type Entry struct {
	Label string
	OLS   *ols.Result
	Bayes *bayes.Fit
	LOO   *loo.Result
}

// Fingerprint returns the dataset fingerprint shared by the entry's parts,
// or zero when the entry is empty.
func (e *Entry) Fingerprint() uint64 {
	switch {
	case e.OLS != nil:
		return e.OLS.Fingerprint
	case e.Bayes != nil:
		return e.Bayes.Fingerprint
	case e.LOO != nil:
		return e.LOO.Fingerprint
	default:
		return 0
	}
}

// N returns the observation count shared by the entry's parts.
func (e *Entry) N() int {
	switch {
	case e.OLS != nil:
		return e.OLS.N
	case e.Bayes != nil:
		return e.Bayes.N
	case e.LOO != nil:
		return e.LOO.N
	default:
		return 0
	}
}

// Comparison collects labeled fits for joint reporting. The zero value is
// not usable; create one with NewComparison.
type Comparison struct {
	labels  []string
	entries map[string]*Entry
}

// NewComparison returns an empty comparison.
func NewComparison() *Comparison {
	return &Comparison{entries: make(map[string]*Entry)}
}

// Len returns the number of labeled entries.
func (c *Comparison) Len() int { return len(c.labels) }

// Labels returns the labels in insertion order.
func (c *Comparison) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)

	return out
}

// Entry returns the entry for label.
func (c *Comparison) Entry(label string) (*Entry, bool) {
	e, ok := c.entries[label]

	return e, ok
}

// AddOLS attaches a least-squares fit to label, creating the entry if
// needed.
//
// Returns errs.ErrDuplicateLabel when the label already has one, and
// errs.ErrMismatchedFits when the fit describes a different dataset than
// the label's other parts.
func (c *Comparison) AddOLS(label string, fit *ols.Result) error {
	if fit == nil {
		return fmt.Errorf("label %q: nil fit: %w", label, errs.ErrNoFits)
	}
	entry, err := c.entryFor(label)
	if err != nil {
		return err
	}
	if entry.OLS != nil {
		return fmt.Errorf("label %q already has a least-squares fit: %w", label, errs.ErrDuplicateLabel)
	}
	if err := c.checkDataset(entry, fit.Fingerprint, fit.N); err != nil {
		return err
	}
	entry.OLS = fit

	return nil
}

// AddBayes attaches a Bayesian fit to label, creating the entry if needed.
//
// Returns errs.ErrDuplicateLabel when the label already has one, and
// errs.ErrMismatchedFits when the fit describes a different dataset than
// the label's other parts.
func (c *Comparison) AddBayes(label string, fit *bayes.Fit) error {
	if fit == nil {
		return fmt.Errorf("label %q: nil fit: %w", label, errs.ErrNoFits)
	}
	entry, err := c.entryFor(label)
	if err != nil {
		return err
	}
	if entry.Bayes != nil {
		return fmt.Errorf("label %q already has a Bayesian fit: %w", label, errs.ErrDuplicateLabel)
	}
	if err := c.checkDataset(entry, fit.Fingerprint, fit.N); err != nil {
		return err
	}
	entry.Bayes = fit

	return nil
}

// AddLOO attaches a cross-validation result to an existing label holding
// the Bayesian fit it was computed from.
//
// Returns errs.ErrUnknownLabel when the label does not exist or has no
// Bayesian fit, errs.ErrDuplicateLabel when it already has a result, and
// errs.ErrMismatchedFits when the result does not match the fit.
func (c *Comparison) AddLOO(label string, res *loo.Result) error {
	if res == nil {
		return fmt.Errorf("label %q: nil result: %w", label, errs.ErrNoFits)
	}
	entry, ok := c.entries[label]
	if !ok {
		return fmt.Errorf("label %q: %w", label, errs.ErrUnknownLabel)
	}
	if entry.Bayes == nil {
		return fmt.Errorf("label %q has no Bayesian fit to validate against: %w", label, errs.ErrUnknownLabel)
	}
	if entry.LOO != nil {
		return fmt.Errorf("label %q already has a cross-validation result: %w", label, errs.ErrDuplicateLabel)
	}
	if res.Family != entry.Bayes.Family {
		return fmt.Errorf("label %q: result family %s does not match fit family %s: %w",
			label, res.Family, entry.Bayes.Family, errs.ErrMismatchedFits)
	}
	if err := c.checkDataset(entry, res.Fingerprint, res.N); err != nil {
		return err
	}
	entry.LOO = res

	return nil
}

func (c *Comparison) entryFor(label string) (*Entry, error) {
	if label == "" {
		return nil, fmt.Errorf("empty label: %w", errs.ErrUnknownLabel)
	}
	if entry, ok := c.entries[label]; ok {
		return entry, nil
	}
	entry := &Entry{Label: label}
	c.entries[label] = entry
	c.labels = append(c.labels, label)

	return entry, nil
}

func (c *Comparison) checkDataset(entry *Entry, fingerprint uint64, n int) error {
	if entry.OLS == nil && entry.Bayes == nil && entry.LOO == nil {
		return nil
	}
	if entry.Fingerprint() != fingerprint || entry.N() != n {
		return fmt.Errorf("label %q: dataset %016x/%d does not match %016x/%d: %w",
			entry.Label, fingerprint, n, entry.Fingerprint(), entry.N(), errs.ErrMismatchedFits)
	}

	return nil
}
