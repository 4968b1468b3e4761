package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arloliu/tailfit/loo"
)

// influenceFlagLimit marks observations worth listing individually, shared
// with the khat ok band upper bound.
const influenceFlagLimit = 0.7

// String renders the full comparison report.
func (c *Comparison) String() string {
	var b strings.Builder
	// The only write error a Builder can produce is none.
	_, _ = c.WriteTo(&b)

	return b.String()
}

// WriteTo renders the comparison to w: coefficient estimates, influence
// diagnostics, per-dataset model rankings, and sampler warnings when any
// fit reported them. It implements io.WriterTo.
func (c *Comparison) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	if len(c.labels) == 0 {
		b.WriteString("comparison: no models\n")

		return copyOut(w, &b)
	}

	c.writeCoefficients(&b)
	c.writeInfluence(&b)
	c.writeRankings(&b)
	c.writeWarnings(&b)

	return copyOut(w, &b)
}

func copyOut(w io.Writer, b *strings.Builder) (int64, error) {
	n, err := io.WriteString(w, b.String())

	return int64(n), err
}

func (c *Comparison) writeCoefficients(b *strings.Builder) {
	rows := c.CoefficientRows()
	if len(rows) == 0 {
		return
	}

	b.WriteString("Coefficient estimates\n")
	fmt.Fprintf(b, "  %-20s %-16s %-10s %10s %22s\n", "label", "method", "param", "estimate", "95% interval")
	for _, r := range rows {
		fmt.Fprintf(b, "  %-20s %-16s %-10s %10.4f   [%8.4f, %8.4f]\n",
			r.Label, r.Method, r.Param, r.Estimate, r.Lower, r.Upper)
	}
	b.WriteByte('\n')
}

func (c *Comparison) writeInfluence(b *strings.Builder) {
	wrote := false
	for _, label := range c.labels {
		entry := c.entries[label]
		if entry.OLS == nil && entry.LOO == nil {
			continue
		}
		if !wrote {
			b.WriteString("Influence diagnostics\n")
			wrote = true
		}

		fmt.Fprintf(b, "  %s:", label)
		if entry.OLS != nil {
			idx, d := entry.OLS.MaxCook()
			fmt.Fprintf(b, " max cooks_d %.3f at obs %d;", d, idx)
		}
		if entry.LOO != nil {
			counts := entry.LOO.Counts()
			fmt.Fprintf(b, " khat bands good/ok/bad/verybad %d/%d/%d/%d;",
				counts[loo.Good], counts[loo.Ok], counts[loo.Bad], counts[loo.VeryBad])
		}
		b.WriteByte('\n')

		for _, row := range flaggedRows(entry) {
			b.WriteString(row)
		}
	}
	if wrote {
		b.WriteByte('\n')
	}
}

// flaggedRows lists the observations whose influence exceeds the flag
// limit under either diagnostic.
func flaggedRows(entry *Entry) []string {
	n := entry.N()
	var rows []string
	for i := range n {
		var cook, k float64
		line := fmt.Sprintf("    obs %3d:", i)
		if entry.OLS != nil {
			cook = entry.OLS.CooksD[i]
			line += fmt.Sprintf(" cooks_d %8.3f", cook)
		}
		if entry.LOO != nil {
			p := entry.LOO.Points[i]
			k = p.K
			line += fmt.Sprintf(" khat %6.3f (%s)", p.K, p.Band)
		}
		if cook > influenceFlagLimit || k > influenceFlagLimit {
			rows = append(rows, line+"\n")
		}
	}

	return rows
}

func (c *Comparison) writeRankings(b *strings.Builder) {
	type pair struct {
		label string
		res   *loo.Result
	}

	groups := make(map[uint64][]pair)
	var fingerprints []uint64
	for _, label := range c.labels {
		entry := c.entries[label]
		if entry.LOO == nil {
			continue
		}
		fp := entry.LOO.Fingerprint
		if _, seen := groups[fp]; !seen {
			fingerprints = append(fingerprints, fp)
		}
		groups[fp] = append(groups[fp], pair{label: label, res: entry.LOO})
	}

	for _, fp := range fingerprints {
		pairs := groups[fp]
		results := make([]*loo.Result, len(pairs))
		for i, p := range pairs {
			results[i] = p.res
		}
		ranking, err := loo.Compare(results...)
		if err != nil {
			continue
		}
		// Stable-sorting the pairs with the ranking's own ordering rule
		// lines labels up with entries.
		sort.SliceStable(pairs, func(a, b int) bool {
			return pairs[a].res.ELPD > pairs[b].res.ELPD
		})

		fmt.Fprintf(b, "Model ranking (dataset %016x, n=%d)\n", ranking.Fingerprint, ranking.N)
		fmt.Fprintf(b, "  %-20s %-16s %10s %8s %10s %8s %7s %7s\n",
			"label", "model", "elpd", "se", "d_elpd", "d_se", "p_loo", "max_k")
		for i, e := range ranking.Entries {
			fmt.Fprintf(b, "  %-20s %-16s %10.2f %8.2f %10.2f %8.2f %7.2f %7.2f\n",
				pairs[i].label, e.Family, e.ELPD, e.SE, e.DeltaELPD, e.DeltaSE, e.PLoo, e.MaxK)
		}
		b.WriteByte('\n')
	}
}

func (c *Comparison) writeWarnings(b *strings.Builder) {
	wrote := false
	for _, label := range c.labels {
		entry := c.entries[label]
		if entry.Bayes == nil || len(entry.Bayes.Warnings) == 0 {
			continue
		}
		if !wrote {
			b.WriteString("Sampler warnings\n")
			wrote = true
		}
		for _, warning := range entry.Bayes.Warnings {
			fmt.Fprintf(b, "  %s: %s\n", label, warning)
		}
	}
	if wrote {
		b.WriteByte('\n')
	}
}
