package analytics

import "github.com/Gajendran57/GoalGrid/internal/model"

// Band classifies a day's completion rate for chart coloring.
type Band string

const (
	BandGood     Band = "good"     // rate >= 80
	BandWarning  Band = "warning"  // rate >= 60
	BandCritical Band = "critical" // below 60
)

const (
	maxBars    = 7
	minHeight  = 5.0
	heightSpan = 95.0
	goodCutoff = 80.0
	warnCutoff = 60.0
)

// Bar is one rendered chart bar. Height is normalized into [5,100] so
// even the lowest day stays visible.
type Bar struct {
	Date   string
	Rate   float64
	Height float64
	Band   Band
}

// Chart is the bounded chart representation. Empty is set instead of
// rendering zero bars when there is no data at all.
type Chart struct {
	Bars  []Bar
	Empty bool
}

// Normalize is a pure transform of a completion-rate series into the last
// seven days of color-banded bars. Same input, same output; a flat series
// renders equal minimum-height bars rather than dividing by zero.
func Normalize(points []model.ChartPoint) Chart {
	if len(points) == 0 {
		return Chart{Empty: true}
	}

	window := points
	if len(window) > maxBars {
		window = window[len(window)-maxBars:]
	}

	min, max := window[0].CompletionRate, window[0].CompletionRate
	for _, p := range window[1:] {
		if p.CompletionRate < min {
			min = p.CompletionRate
		}
		if p.CompletionRate > max {
			max = p.CompletionRate
		}
	}

	span := max - min
	bars := make([]Bar, 0, len(window))
	for _, p := range window {
		height := minHeight
		if span > 0 {
			height = minHeight + (p.CompletionRate-min)/span*heightSpan
		}
		if height > 100 {
			height = 100
		}
		bars = append(bars, Bar{
			Date:   p.Date,
			Rate:   p.CompletionRate,
			Height: height,
			Band:   bandFor(p.CompletionRate),
		})
	}

	return Chart{Bars: bars}
}

func bandFor(rate float64) Band {
	switch {
	case rate >= goodCutoff:
		return BandGood
	case rate >= warnCutoff:
		return BandWarning
	default:
		return BandCritical
	}
}
