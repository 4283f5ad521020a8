package activity

import (
	"fmt"
	"time"
)

// DayCount is one gap-filled bucket of an activity series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Window is a span of N civil days ending at End (inclusive), with the
// absolute instant bounds needed to query completion events.
type Window struct {
	Start Date
	End   Date
	Days  int
	From  time.Time // midnight of Start
	To    time.Time // midnight of the day after End (exclusive)
}

// LastNDays returns the window covering [today-n+1, today].
func (c Calendar) LastNDays(today Date, n int) (Window, error) {
	if n <= 0 {
		return Window{}, fmt.Errorf("window must cover at least one day, got %d", n)
	}
	return c.window(today.AddDays(1-n), today)
}

// HeatmapWindow returns the year-long window used for the weekly heatmap:
// it starts at the most recent Monday at or before today minus lookbackDays,
// so the first weekly bucket always begins on a Monday.
func (c Calendar) HeatmapWindow(today Date, lookbackDays int) (Window, error) {
	start := today.AddDays(-lookbackDays)
	for start.Weekday() != time.Monday {
		start = start.AddDays(-1)
	}
	return c.window(start, today)
}

func (c Calendar) window(start, end Date) (Window, error) {
	from, err := c.Midnight(start)
	if err != nil {
		return Window{}, err
	}
	to, err := c.Midnight(end.AddDays(1))
	if err != nil {
		return Window{}, err
	}
	days := int(to.Sub(from) / (24 * time.Hour))
	return Window{Start: start, End: end, Days: days, From: from, To: to}, nil
}

// Fill buckets completion instants by civil date and gap-fills the window:
// the result always has exactly w.Days entries in ascending date order, one
// per civil day, count zero where nothing happened. Instants outside the
// window are ignored.
func (c Calendar) Fill(w Window, instants []time.Time) ([]DayCount, error) {
	counts := make(map[Date]int, len(instants))
	for _, instant := range instants {
		d, err := c.DateOf(instant)
		if err != nil {
			return nil, err
		}
		if d.Before(w.Start) || w.End.Before(d) {
			continue
		}
		counts[d]++
	}

	series := make([]DayCount, 0, w.Days)
	for d := w.Start; !w.End.Before(d); d = d.AddDays(1) {
		series = append(series, DayCount{Date: d.String(), Count: counts[d]})
	}
	return series, nil
}

// Weeks partitions a filled daily series into chunks of 7, oldest first.
// The final chunk is shorter when the window does not end on a Sunday.
func Weeks(daily []DayCount) [][]DayCount {
	weeks := make([][]DayCount, 0, (len(daily)+6)/7)
	for start := 0; start < len(daily); start += 7 {
		end := start + 7
		if end > len(daily) {
			end = len(daily)
		}
		weeks = append(weeks, daily[start:end])
	}
	return weeks
}
