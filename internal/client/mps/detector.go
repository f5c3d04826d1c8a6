// Package mps finds muscle-protein-synthesis "hits": meals with enough
// protein, spaced far enough apart to count as separate stimuli.
package mps

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

const (
	// DefaultThresholdGrams is the minimum protein of a qualifying entry.
	DefaultThresholdGrams = 25.0
	// DefaultMinGap separates two accepted hits.
	DefaultMinGap = 3 * time.Hour
)

// Params tunes detection.
type Params struct {
	ThresholdGrams float64
	MinGap         time.Duration
}

// DefaultParams returns the standard 25 g / 3 h rule.
func DefaultParams() Params {
	return Params{ThresholdGrams: DefaultThresholdGrams, MinGap: DefaultMinGap}
}

// Detect applies DefaultParams.
func Detect(entries []*models.FoodEntry) []*models.FoodEntry {
	return DetectWith(entries, DefaultParams())
}

// DetectWith returns the qualifying entries in effective-time order. An
// entry qualifies when it carries at least ThresholdGrams of protein and
// starts at least MinGap after the previously accepted hit. Entries that
// fall inside the gap are skipped and never restart it. Tombstones are
// ignored.
func DetectWith(entries []*models.FoodEntry, p Params) []*models.FoodEntry {
	candidates := make([]*models.FoodEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.IsDeleted() || e.ProteinGrams < p.ThresholdGrams {
			continue
		}
		candidates = append(candidates, e)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EffectiveTime().Before(candidates[j].EffectiveTime())
	})

	var (
		hits []*models.FoodEntry
		last time.Time
	)
	for _, e := range candidates {
		at := e.EffectiveTime()
		if len(hits) > 0 && at.Sub(last) < p.MinGap {
			continue
		}
		hits = append(hits, e)
		last = at
	}
	return hits
}

// DailySummary describes one day's hits.
type DailySummary struct {
	Date       string
	Hits       []*models.FoodEntry
	NextWindow time.Time
}

// Summarize runs detection over the entries of one date and reports when
// the next hit window opens.
func Summarize(date string, entries []*models.FoodEntry, p Params) DailySummary {
	day := make([]*models.FoodEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil && e.Date == date {
			day = append(day, e)
		}
	}
	s := DailySummary{Date: date, Hits: DetectWith(day, p)}
	if n := len(s.Hits); n > 0 {
		s.NextWindow = s.Hits[n-1].EffectiveTime().Add(p.MinGap)
	}
	return s
}
