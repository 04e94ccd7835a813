// Package timeseries merges snapshot logs from multiple items into a unified,
// date-sorted series with carry-forward semantics for charting.
package timeseries

import (
	"sort"
	"time"

	"assetsnapshot/internal/currency"
)

// Window selects how far back the series reaches.
type Window string

// Supported time windows.
const (
	Window1M  Window = "1m"
	WindowYTD Window = "ytd"
	Window1Y  Window = "1y"
	WindowAll Window = "all"
)

// ParseWindow maps a query-string value to a Window, defaulting to all.
func ParseWindow(s string) Window {
	switch Window(s) {
	case Window1M, WindowYTD, Window1Y:
		return Window(s)
	default:
		return WindowAll
	}
}

// start returns the inclusive window start for the given reference time.
// The zero time means unbounded.
func (w Window) start(now time.Time) time.Time {
	switch w {
	case Window1M:
		return now.AddDate(0, -1, 0)
	case WindowYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case Window1Y:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Snapshot is one dated value for an item. Item identifies the chart series
// (a bank or asset name); Sub distinguishes independent streams within the
// item (a bank's sub-accounts) that are forward-filled separately and summed.
type Snapshot struct {
	Item     string
	Sub      string
	Date     time.Time
	Amount   float64
	Currency string
}

// Point is one date on the chart: every item's carried-forward total in the
// display currency, plus the grand total.
type Point struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
	Sum    float64            `json:"sum"`
}

type streamKey struct {
	item string
	sub  string
}

type streamValue struct {
	amount   float64
	currency string
}

// Build merges the given snapshots into an ascending date-sorted series with
// forward-fill semantics: an item's contribution does not change between its
// own snapshots, so sparse manual logging never dips to zero. Points before
// the window start are dropped; when truncation discards data, a synthetic
// boundary point carries the last known values as of the window start. A final
// point dated now is always appended so the chart extends to the present.
func Build(snapshots []Snapshot, window Window, display string, rates *currency.Table, now time.Time) []Point {
	if len(snapshots) == 0 {
		return []Point{}
	}

	byDate := make(map[time.Time][]Snapshot)
	dates := make([]time.Time, 0)
	for _, s := range snapshots {
		day := truncateToDay(s.Date)
		if _, seen := byDate[day]; !seen {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], s)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	last := make(map[streamKey]streamValue)
	points := make([]Point, 0, len(dates)+2)
	for _, day := range dates {
		// Later snapshots on the same day win; input order is insertion order.
		for _, s := range byDate[day] {
			last[streamKey{s.Item, s.Sub}] = streamValue{s.Amount, s.Currency}
		}
		points = append(points, makePoint(day, last, display, rates))
	}

	points = applyWindow(points, window.start(now))

	today := truncateToDay(now)
	if len(points) == 0 || !points[len(points)-1].Date.Equal(today) {
		points = append(points, makePoint(today, last, display, rates))
	}

	return points
}

// applyWindow drops points before start, synthesizing a boundary point that
// carries the last pre-window values so the chart stays anchored to the
// selected range.
func applyWindow(points []Point, start time.Time) []Point {
	if start.IsZero() {
		return points
	}
	start = truncateToDay(start)

	cut := 0
	for cut < len(points) && points[cut].Date.Before(start) {
		cut++
	}
	if cut == 0 {
		return points
	}

	boundary := points[cut-1]
	boundary.Date = start
	kept := points[cut:]
	if len(kept) > 0 && kept[0].Date.Equal(start) {
		return kept
	}
	return append([]Point{boundary}, kept...)
}

func makePoint(day time.Time, last map[streamKey]streamValue, display string, rates *currency.Table) Point {
	values := make(map[string]float64)
	sum := 0.0
	for key, v := range last {
		converted := rates.Convert(v.amount, v.currency, display)
		values[key.item] += converted
		sum += converted
	}
	return Point{Date: day, Values: values, Sum: sum}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
