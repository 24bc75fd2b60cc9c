package table

import (
	"fmt"
	"sort"
)

// Dummies one-hot encodes the named categorical columns into 0/1 integer
// columns named <col>_<value>, dropping the first category per column to
// avoid collinearity in downstream regressions. Categories are ordered
// lexicographically so the encoding is deterministic. The source columns
// are removed; all other columns are carried over unchanged. Missing
// cells encode as all-zero across the column's dummies.
func Dummies(t *Table, columns []string) (*Table, error) {
	todo := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("dummies: unknown column %q", c)
		}
		todo[c] = true
	}

	var outCols []string
	// per encoded column, the retained category list (first one dropped)
	kept := make(map[string][]string, len(todo))
	for _, c := range t.cols {
		if !todo[c] {
			outCols = append(outCols, c)
			continue
		}
		seen := map[string]bool{}
		var cats []string
		for i := 0; i < t.Len(); i++ {
			if s, ok := t.StringAt(i, c); ok && !seen[s] {
				seen[s] = true
				cats = append(cats, s)
			}
		}
		sort.Strings(cats)
		if len(cats) > 0 {
			cats = cats[1:]
		}
		kept[c] = cats
		for _, cat := range cats {
			outCols = append(outCols, c+"_"+cat)
		}
	}

	out, err := New(outCols)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]Cell, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := make([]Cell, 0, len(outCols))
		for _, c := range t.cols {
			if !todo[c] {
				row = append(row, t.Cell(i, c))
				continue
			}
			s, ok := t.StringAt(i, c)
			for _, cat := range kept[c] {
				if ok && s == cat {
					row = append(row, Num(1))
				} else {
					row = append(row, Num(0))
				}
			}
		}
		out.rows[i] = row
	}
	return out, nil
}
