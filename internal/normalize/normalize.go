// Package normalize standardizes a raw survey table before feature
// engineering: snake_case column names, canonical genre spellings, and
// explicit sentinels for missing categorical answers.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/botsift/botsift-cli/internal/table"
)

const genreColumn = "fav_music_genre"

// genreMerge collapses known synonyms and typos into canonical genres.
// Values outside the map pass through title-cased; that is deliberate,
// the survey's free-text field keeps growing new spellings.
var genreMerge = map[string]string{
	"Classical & Melody, Dance": "Classical",
	"Old Songs":                 "Pop",
	"Trending Songs Random":     "Pop",
	"Kpop":                      "Pop",
	"All":                       "Melody",
}

// podcastColumns get an "Unknown" sentinel when the respondent skipped
// the podcast section.
var podcastColumns = []string{
	"fav_pod_genre",
	"preffered_pod_format",
	"pod_host_preference",
	"preffered_pod_duration",
}

const premiumColumn = "preffered_premium_plan"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var titleCaser = cases.Title(language.English)

// ColumnName canonicalizes one header: lower-case, trimmed, with runs of
// non-alphanumeric characters collapsed to single underscores.
func ColumnName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = nonAlnum.ReplaceAllString(n, "_")
	return strings.Trim(n, "_")
}

// Genre canonicalizes one genre value: trim, title-case, then remap
// through the merge table.
func Genre(raw string) string {
	g := titleCaser.String(strings.TrimSpace(raw))
	if canon, ok := genreMerge[g]; ok {
		return canon
	}
	return g
}

// Clean returns a normalized copy of the raw table. The input is never
// mutated. Columns a later stage requires are not manufactured here; the
// feature engine fails on them explicitly.
func Clean(t *table.Table) (*table.Table, error) {
	out := t.Clone()
	if err := out.RenameColumns(ColumnName); err != nil {
		return nil, err
	}

	if out.HasColumn(genreColumn) {
		for i := 0; i < out.Len(); i++ {
			raw, ok := out.StringAt(i, genreColumn)
			if !ok {
				continue
			}
			if err := out.SetCell(i, genreColumn, table.Str(Genre(raw))); err != nil {
				return nil, err
			}
		}
	}

	for _, col := range podcastColumns {
		if err := fillMissing(out, col, "Unknown"); err != nil {
			return nil, err
		}
	}
	if err := fillMissing(out, premiumColumn, "None"); err != nil {
		return nil, err
	}
	return out, nil
}

func fillMissing(t *table.Table, col, sentinel string) error {
	if !t.HasColumn(col) {
		return nil
	}
	for i := 0; i < t.Len(); i++ {
		if t.Cell(i, col).Kind == table.Missing {
			if err := t.SetCell(i, col, table.Str(sentinel)); err != nil {
				return err
			}
		}
	}
	return nil
}
