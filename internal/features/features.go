// Package features derives the continuous behavioral proxies and the
// bot_like label from a normalized survey table. The derivation is
// deterministic for a fixed input table and seed: all randomness comes
// from one seeded generator consumed in two batch-ordered phases
// (listening-time noise for every record, then streams noise for every
// record). Reordering or interleaving the draws breaks reproducibility.
package features

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/botsift/botsift-cli/internal/lexicon"
	"github.com/botsift/botsift-cli/internal/stats"
	"github.com/botsift/botsift-cli/internal/table"
)

// DefaultSeed is the noise seed used by the analysis runs.
const DefaultSeed = 42

// ErrEmptyBatch is returned when the table has no records. The label
// depends on batch quantiles, so there is nothing meaningful to compute.
var ErrEmptyBatch = errors.New("empty batch")

// Source columns the engine requires after normalization.
const (
	colAge         = "age"
	colContexts    = "music_lis_frequency"
	colTimeSlot    = "music_time_slot"
	colRating      = "music_recc_rating"
	colUsagePeriod = "spotify_usage_period"
	colPodFreq     = "pod_lis_frequency"
)

// Derived column names, in derivation order.
const (
	ColAgeNumeric     = "age_numeric"
	ColContexts       = "n_listening_contexts"
	ColListeningTime  = "listening_time"
	ColSkipRate       = "skip_rate"
	ColDiversityScore = "diversity_score"
	ColUsageMonths    = "usage_months"
	ColPodFrequency   = "pod_frequency"
	ColStreams        = "streams"
	ColBotLike        = "bot_like"
)

// Derived lists the engineered columns in output order.
var Derived = []string{
	ColAgeNumeric, ColContexts, ColListeningTime, ColSkipRate,
	ColDiversityScore, ColUsageMonths, ColPodFrequency, ColStreams,
	ColBotLike,
}

// noise standard deviations and floors.
const (
	listeningNoiseStd = 10.0
	listeningFloor    = 10.0
	streamsNoiseStd   = 150.0
	streamsFloor      = 50.0
)

// Engineer returns a copy of src extended with the nine derived columns.
// src is never mutated. A categorical value outside its lexicon yields a
// missing proxy for that record, which propagates through dependent
// formulas; a missing required column or an empty batch aborts the run.
func Engineer(src *table.Table, seed int64) (*table.Table, error) {
	for _, c := range []string{colAge, colContexts, colTimeSlot, colRating, colUsagePeriod, colPodFreq} {
		if !src.HasColumn(c) {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}
	n := src.Len()
	if n == 0 {
		return nil, ErrEmptyBatch
	}

	out := src.Clone()
	rng := rand.New(rand.NewSource(seed))

	// 1. age_numeric
	ageNum := lookupColumn(out, colAge, lexicon.AgeMidpoint)

	// 2. n_listening_contexts
	contexts := make([]int, n)
	for i := 0; i < n; i++ {
		s, _ := out.StringAt(i, colContexts)
		contexts[i] = countContexts(s)
	}

	// Phase 1 noise: one draw per record, in record order, whether or
	// not the record's time slot resolved. Skipping draws for missing
	// cells would shift the sequence for every later record.
	noise1 := make([]float64, n)
	for i := range noise1 {
		noise1[i] = rng.NormFloat64() * listeningNoiseStd
	}

	// 3. listening_time
	listening := make([]table.Cell, n)
	for i := 0; i < n; i++ {
		slot, _ := out.StringAt(i, colTimeSlot)
		hours, ok := lexicon.TimeSlotHours(slot)
		if !ok {
			continue // stays missing
		}
		v := baseListeningMinutes(hours, contexts[i]) + noise1[i]
		if v < listeningFloor {
			v = listeningFloor
		}
		listening[i] = table.Num(stats.Round1(v))
	}

	// 4. skip_rate
	skip := make([]table.Cell, n)
	for i := 0; i < n; i++ {
		if r, ok := out.Float(i, colRating); ok {
			skip[i] = table.Num((6 - r) / 5)
		}
	}

	// 5. diversity_score — batch-relative; context counts are always
	// at least 1, so the denominator cannot be zero for a non-empty
	// batch.
	maxContexts := 0
	for _, c := range contexts {
		if c > maxContexts {
			maxContexts = c
		}
	}
	diversity := make([]table.Cell, n)
	for i := 0; i < n; i++ {
		diversity[i] = table.Num(stats.Round3(float64(contexts[i]) / float64(maxContexts)))
	}

	// 6. usage_months, 7. pod_frequency
	months := lookupColumn(out, colUsagePeriod, lexicon.UsageMonths)
	podFreq := lookupColumn(out, colPodFreq, lexicon.PodFrequency)

	// Phase 2 noise, again one draw per record in record order.
	noise2 := make([]float64, n)
	for i := range noise2 {
		noise2[i] = rng.NormFloat64() * streamsNoiseStd
	}

	// 8. streams — uses the post-floor, post-round listening_time.
	streams := make([]table.Cell, n)
	for i := 0; i < n; i++ {
		m, okM := cellFloat(months[i])
		lt, okL := cellFloat(listening[i])
		p, okP := cellFloat(podFreq[i])
		if !okM || !okL || !okP {
			continue
		}
		v := math.Round(baseStreams(m, contexts[i], lt, p)) + math.Round(noise2[i])
		if v < streamsFloor {
			v = streamsFloor
		}
		streams[i] = table.Num(float64(int(v)))
	}

	// 9. bot_like — population-level thresholds over the full batch.
	botLike := labelBotLike(out, streams, diversity)

	ctxCells := make([]table.Cell, n)
	for i, c := range contexts {
		ctxCells[i] = table.Num(float64(c))
	}
	add := []struct {
		name  string
		cells []table.Cell
	}{
		{ColAgeNumeric, ageNum},
		{ColContexts, ctxCells},
		{ColListeningTime, listening},
		{ColSkipRate, skip},
		{ColDiversityScore, diversity},
		{ColUsageMonths, months},
		{ColPodFrequency, podFreq},
		{ColStreams, streams},
		{ColBotLike, botLike},
	}
	for _, a := range add {
		if err := out.AddColumn(a.name, a.cells); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// countContexts counts comma-separated listening contexts. An empty
// answer is still one token, so the count is never below 1.
func countContexts(s string) int {
	return len(strings.Split(s, ","))
}

func baseListeningMinutes(hours float64, contexts int) float64 {
	return hours * 60 * (1 + 0.15*float64(contexts-1))
}

func baseStreams(months float64, contexts int, listening, podFreq float64) float64 {
	return months*50 + float64(contexts)*200 + listening*2 + podFreq*100
}

// labelBotLike flags records combining at least two of: streams above the
// batch 75th percentile, diversity at or below the 25th percentile, and a
// recommendation rating of 2 or less. Missing operands make a condition
// false; the label itself is always 0 or 1.
func labelBotLike(t *table.Table, streams, diversity []table.Cell) []table.Cell {
	q75, okS := stats.Quantile(presentValues(streams), 0.75)
	q25, okD := stats.Quantile(presentValues(diversity), 0.25)

	n := len(streams)
	out := make([]table.Cell, n)
	for i := 0; i < n; i++ {
		highStreams := false
		if s, ok := cellFloat(streams[i]); ok && okS {
			highStreams = s > q75
		}
		lowDiversity := false
		if d, ok := cellFloat(diversity[i]); ok && okD {
			lowDiversity = d <= q25
		}
		lowRecc := false
		if r, ok := t.Float(i, colRating); ok {
			lowRecc = r <= 2
		}
		if (highStreams && lowDiversity) || (highStreams && lowRecc) || (lowDiversity && lowRecc) {
			out[i] = table.Num(1)
		} else {
			out[i] = table.Num(0)
		}
	}
	return out
}

func lookupColumn(t *table.Table, col string, fn func(string) (float64, bool)) []table.Cell {
	out := make([]table.Cell, t.Len())
	for i := 0; i < t.Len(); i++ {
		s, ok := t.StringAt(i, col)
		if !ok {
			continue
		}
		if v, ok := fn(s); ok {
			out[i] = table.Num(v)
		}
	}
	return out
}

func cellFloat(c table.Cell) (float64, bool) {
	if c.Kind != table.Number {
		return 0, false
	}
	return c.Num, true
}

func presentValues(cells []table.Cell) []float64 {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.Kind == table.Number {
			out = append(out, c.Num)
		}
	}
	return out
}
