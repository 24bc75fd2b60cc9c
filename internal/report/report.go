// Package report renders descriptive statistics over an engineered
// survey table as a compact markdown document. Chart rendering is left
// to downstream notebook tooling; this reporter covers the numbers a
// plot would be drawn from.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/botsift/botsift-cli/internal/stats"
	"github.com/botsift/botsift-cli/internal/table"
)

// Options selects what the report contains.
type Options struct {
	// Columns are the numeric columns to describe. Empty means every
	// column with at least one numeric cell.
	Columns []string
	// GroupBy splits per-column means by the values of this column
	// (typically bot_like). Empty disables grouping.
	GroupBy string
	// Correlations adds a Pearson correlation section over the
	// described columns.
	Correlations bool
}

// Report is a markdown-friendly summary of an engineered table.
type Report struct {
	Source string
	RunID  string
	Rows   int
	Cols   []ColumnStats
	Groups []GroupSummary
	Corr   []PairCorr
}

// ColumnStats pairs a column name with its describe-style summary.
type ColumnStats struct {
	Name string
	stats.Summary
	Missing int
}

// GroupSummary aggregates per-column means within one group value.
type GroupSummary struct {
	Key   string
	Size  int
	Means map[string]float64
}

// PairCorr is one correlation pair, strongest first in Report.Corr.
type PairCorr struct {
	A, B string
	R    float64
}

// Build computes a Report over t.
func Build(t *table.Table, source, runID string, opt Options) *Report {
	cols := opt.Columns
	if len(cols) == 0 {
		for _, c := range t.Columns() {
			if len(columnValues(t, c)) > 0 {
				cols = append(cols, c)
			}
		}
	}
	rep := &Report{Source: source, RunID: runID, Rows: t.Len()}

	for _, c := range cols {
		vals := columnValues(t, c)
		rep.Cols = append(rep.Cols, ColumnStats{
			Name:    c,
			Summary: stats.Describe(vals),
			Missing: t.Len() - len(vals),
		})
	}

	if opt.GroupBy != "" && t.HasColumn(opt.GroupBy) {
		rep.Groups = buildGroups(t, opt.GroupBy, cols)
	}
	if opt.Correlations {
		rep.Corr = buildCorr(t, cols)
	}
	return rep
}

func columnValues(t *table.Table, col string) []float64 {
	var out []float64
	for i := 0; i < t.Len(); i++ {
		if v, ok := t.Float(i, col); ok {
			out = append(out, v)
		}
	}
	return out
}

func buildGroups(t *table.Table, groupBy string, cols []string) []GroupSummary {
	type acc struct {
		size int
		sum  map[string]float64
		cnt  map[string]int
	}
	groups := map[string]*acc{}
	for i := 0; i < t.Len(); i++ {
		key, ok := t.StringAt(i, groupBy)
		if !ok {
			continue
		}
		ga := groups[key]
		if ga == nil {
			ga = &acc{sum: map[string]float64{}, cnt: map[string]int{}}
			groups[key] = ga
		}
		ga.size++
		for _, c := range cols {
			if c == groupBy {
				continue
			}
			if v, ok := t.Float(i, c); ok {
				ga.sum[c] += v
				ga.cnt[c]++
			}
		}
	}
	out := make([]GroupSummary, 0, len(groups))
	for k, ga := range groups {
		g := GroupSummary{Key: k, Size: ga.size, Means: map[string]float64{}}
		for c, s := range ga.sum {
			if ga.cnt[c] > 0 {
				g.Means[c] = s / float64(ga.cnt[c])
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func buildCorr(t *table.Table, cols []string) []PairCorr {
	// column vectors with aligned presence masks
	vecs := make(map[string][]float64, len(cols))
	masks := make(map[string][]bool, len(cols))
	for _, c := range cols {
		v := make([]float64, t.Len())
		m := make([]bool, t.Len())
		for i := 0; i < t.Len(); i++ {
			if x, ok := t.Float(i, c); ok {
				v[i] = x
				m[i] = true
			}
		}
		vecs[c] = v
		masks[c] = m
	}
	var pairs []PairCorr
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			a, b := cols[i], cols[j]
			present := make([]bool, t.Len())
			for k := range present {
				present[k] = masks[a][k] && masks[b][k]
			}
			if r, ok := stats.Pearson(vecs[a], vecs[b], present); ok {
				pairs = append(pairs, PairCorr{A: a, B: b, R: r})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if len(pairs) > 10 {
		pairs = pairs[:10]
	}
	return pairs
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[ENGINEERED DATASET]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns described: %d\n", len(r.Cols)))

	if len(r.Cols) > 0 {
		b.WriteString("\n[DESCRIPTIVE STATS]\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				c.Name, c.Count,
				num3(c.Mean), num3(c.Std), num3(c.Min),
				num3(c.Q25), num3(c.Q50), num3(c.Q75), num3(c.Max)))
		}
	}

	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- group=%s (n=%d)\n", g.Key, g.Size))
			keys := make([]string, 0, len(g.Means))
			for k := range g.Means {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteString(fmt.Sprintf("  • %s: mean %s\n", k, num3(g.Means[k])))
			}
		}
	}

	if len(r.Corr) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Corr {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	return b.String()
}

func num3(x float64) string {
	return fmt.Sprintf("%.3f", stats.Round3(x))
}
