// Package report builds date-bucketed sum reports over a trailing window.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kopilka/internal/core"
)

// Window is the trailing report period, measured back from the moment of
// the call rather than aligned to calendar days.
const Window = 7 * 24 * time.Hour

// EntrySource supplies the entries a report is built from.
type EntrySource interface {
	QueryEntries(ctx context.Context, userID int64, from, to time.Time, tags []string) ([]core.Entry, error)
}

type Aggregator struct {
	source EntrySource
	now    func() time.Time
}

func NewAggregator(source EntrySource) *Aggregator {
	return &Aggregator{source: source, now: time.Now}
}

// NewAggregatorAt is NewAggregator with an injected clock, for tests.
func NewAggregatorAt(source EntrySource, now func() time.Time) *Aggregator {
	return &Aggregator{source: source, now: now}
}

// BuildReport sums the user's entries over the last week, grouped by UTC
// calendar date and sorted ascending. A non-empty tag filter keeps only
// entries carrying every filter tag. No matching entries yields an empty
// slice.
func (a *Aggregator) BuildReport(ctx context.Context, userID int64, tags []string) ([]core.DayTotal, error) {
	to := a.now()
	from := to.Add(-Window)

	entries, err := a.source.QueryEntries(ctx, userID, from, to, tags)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}

	sums := make(map[time.Time]float64)
	for _, entry := range entries {
		sums[core.Day(entry.CreatedAt)] += entry.Value
	}

	totals := make([]core.DayTotal, 0, len(sums))
	for date, sum := range sums {
		totals = append(totals, core.DayTotal{Date: date, Sum: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})

	return totals, nil
}
