// Package lexicon holds the fixed phrase→number mappings used to turn
// categorical survey answers into numeric proxies. Each lexicon is a
// closed set: a lookup outside it reports ok=false so the caller can
// propagate a missing value instead of inventing one.
package lexicon

import "sort"

// Age bracket midpoints. The open-ended top bracket assumes an upper
// bound of 80, so "60+" covers [61, 80].
var ageMidpoints = map[string]float64{
	"6-12":  9,  // [6, 12]
	"12-20": 16, // [13, 20]
	"20-35": 28, // [21, 35]
	"35-60": 48, // [36, 60]
	"60+":   70, // [61, 80]
}

// Subscription length phrases to an estimated tenure in months.
var usagePeriodMonths = map[string]float64{
	"Less than 6 months": 3,
	"6 months to 1 year": 9,
	"1 year to 2 years":  18,
	"More than 2 years":  30,
}

// Podcast listening frequency as an ordinal score, increasing with
// frequency.
var podFrequencyScore = map[string]float64{
	"Never":                0,
	"Rarely":               1,
	"Once a week":          2,
	"Several times a week": 3,
	"Daily":                4,
}

// Preferred time slot as estimated listening hours per day.
var timeSlotHours = map[string]float64{
	"Morning":   2.0,
	"Afternoon": 1.5,
	"Night":     2.5,
}

// AgeMidpoint maps an age bracket to its numeric midpoint.
func AgeMidpoint(bracket string) (float64, bool) {
	v, ok := ageMidpoints[bracket]
	return v, ok
}

// UsageMonths maps a usage-duration phrase to months on the platform.
func UsageMonths(phrase string) (float64, bool) {
	v, ok := usagePeriodMonths[phrase]
	return v, ok
}

// PodFrequency maps a podcast-frequency phrase to its ordinal score.
func PodFrequency(phrase string) (float64, bool) {
	v, ok := podFrequencyScore[phrase]
	return v, ok
}

// TimeSlotHours maps a time-of-day phrase to an hour weight.
func TimeSlotHours(slot string) (float64, bool) {
	v, ok := timeSlotHours[slot]
	return v, ok
}

// Entry is a lexicon row, used when printing the tables.
type Entry struct {
	Phrase string
	Value  float64
}

// Entries returns a lexicon's rows in ascending value order.
func Entries(m map[string]float64) []Entry {
	out := make([]Entry, 0, len(m))
	for k, v := range m {
		out = append(out, Entry{Phrase: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return out[i].Phrase < out[j].Phrase
	})
	return out
}

// Tables exposes the four lexicons by display name, for the CLI.
func Tables() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"age_midpoints":       ageMidpoints,
		"usage_period_months": usagePeriodMonths,
		"pod_frequency_score": podFrequencyScore,
		"time_slot_hours":     timeSlotHours,
	}
}
