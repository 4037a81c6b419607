package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// TrendBucket is one calendar day in the 7-day prescription trend.
type TrendBucket struct {
	Label      string    `json:"label"`
	Date       time.Time `json:"date"`
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
}

const trendDays = 7

// PrescriptionTrend buckets prescriptions into the last 7 calendar days
// ending on today, oldest first. The output always has exactly 7
// entries; days with no prescriptions carry count 0. Percentage is
// relative to the busiest bucket, with an empty week scaling against 1
// so no bucket ever divides by zero.
func PrescriptionTrend(prescriptions []model.Prescription, today time.Time) []TrendBucket {
	counts := make(map[string]int)
	for _, p := range prescriptions {
		if p.IssuedAt == nil {
			continue
		}
		counts[dayKey(*p.IssuedAt)]++
	}

	buckets := make([]TrendBucket, 0, trendDays)
	maxCount := 0
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := counts[dayKey(day)]
		if count > maxCount {
			maxCount = count
		}
		buckets = append(buckets, TrendBucket{
			Label: day.Format("Mon"),
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
			Count: count,
		})
	}

	scale := maxCount
	if scale < 1 {
		scale = 1
	}
	for i := range buckets {
		buckets[i].Percentage = float64(buckets[i].Count) / float64(scale) * 100
	}
	return buckets
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Fixed logical canvas for the trend chart. The SVG viewBox is 0..100;
// points sit between y=25 (busiest day) and y=85 (empty day), and the
// closed area is pinned to the y=90 baseline.
const (
	trendPadding  = 5.0
	trendTopY     = 85.0
	trendYScale   = 60.0
	trendBaseline = 90.0
)

// TrendPoint is one plotted bucket on the logical canvas.
type TrendPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Value int     `json:"value"`
}

// TrendGeometry is the chart-ready form of the 7-day trend: per-point
// coordinates, the polyline attribute string and the closed-area
// attribute string.
type TrendGeometry struct {
	Points   []TrendPoint `json:"points"`
	Polyline string       `json:"polyline"`
	Area     string       `json:"area"`
}

// ComputeTrendGeometry maps trend buckets onto the logical canvas. The
// transform is deterministic: equal bucket values always yield the same
// coordinates.
func ComputeTrendGeometry(buckets []TrendBucket) TrendGeometry {
	if len(buckets) == 0 {
		return TrendGeometry{Points: []TrendPoint{}}
	}

	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	width := 100 - trendPadding*2
	xStep := 0.0
	if len(buckets) > 1 {
		xStep = width / float64(len(buckets)-1)
	}

	points := make([]TrendPoint, len(buckets))
	for i, b := range buckets {
		ratio := 0.0
		if maxCount > 0 {
			ratio = float64(b.Count) / float64(maxCount)
		}
		points[i] = TrendPoint{
			X:     trendPadding + xStep*float64(i),
			Y:     trendTopY - ratio*trendYScale,
			Label: b.Label,
			Value: b.Count,
		}
	}

	pairs := make([]string, len(points))
	for i, p := range points {
		pairs[i] = formatCoord(p.X) + "," + formatCoord(p.Y)
	}
	polyline := strings.Join(pairs, " ")

	first := points[0]
	last := points[len(points)-1]
	area := formatCoord(first.X) + "," + formatCoord(trendBaseline) + " " +
		polyline + " " +
		formatCoord(last.X) + "," + formatCoord(trendBaseline)

	return TrendGeometry{
		Points:   points,
		Polyline: polyline,
		Area:     area,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
