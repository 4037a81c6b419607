package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

var trendToday = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func TestPrescriptionTrendAlwaysSevenBuckets(t *testing.T) {
	cases := map[string][]model.Prescription{
		"empty":  {},
		"single": {{IssuedAt: ts(trendToday)}},
	}

	many := make([]model.Prescription, 0, 1000)
	for i := 0; i < 1000; i++ {
		many = append(many, model.Prescription{
			IssuedAt: ts(trendToday.AddDate(0, 0, -(i % 30))),
		})
	}
	cases["many"] = many

	for name, input := range cases {
		buckets := PrescriptionTrend(input, trendToday)
		assert.Len(t, buckets, 7, name)
	}
}

func TestPrescriptionTrendOrderedOldestToNewest(t *testing.T) {
	buckets := PrescriptionTrend(nil, trendToday)

	require.Len(t, buckets, 7)
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i].Date.After(buckets[i-1].Date))
	}
	last := buckets[6].Date
	assert.Equal(t, trendToday.Year(), last.Year())
	assert.Equal(t, trendToday.Month(), last.Month())
	assert.Equal(t, trendToday.Day(), last.Day())
}

func TestPrescriptionTrendCountsAndPercentages(t *testing.T) {
	prescriptions := []model.Prescription{
		{IssuedAt: ts(trendToday)},
		{IssuedAt: ts(trendToday)},
		{IssuedAt: ts(trendToday.AddDate(0, 0, -2))},
		{IssuedAt: ts(trendToday.AddDate(0, 0, -30))}, // outside the window
		{IssuedAt: nil},
	}

	buckets := PrescriptionTrend(prescriptions, trendToday)
	require.Len(t, buckets, 7)

	assert.Equal(t, 2, buckets[6].Count)
	assert.InDelta(t, 100, buckets[6].Percentage, 0.01)
	assert.Equal(t, 1, buckets[4].Count)
	assert.InDelta(t, 50, buckets[4].Percentage, 0.01)
	assert.Equal(t, 0, buckets[5].Count)
	assert.InDelta(t, 0, buckets[5].Percentage, 0.01)
}

func TestPrescriptionTrendEmptyWeekHasNoDivideByZero(t *testing.T) {
	buckets := PrescriptionTrend(nil, trendToday)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
		assert.Equal(t, 0.0, b.Percentage)
	}
}

func TestComputeTrendGeometryDeterministic(t *testing.T) {
	prescriptions := []model.Prescription{
		{IssuedAt: ts(trendToday)},
		{IssuedAt: ts(trendToday.AddDate(0, 0, -1))},
		{IssuedAt: ts(trendToday.AddDate(0, 0, -1))},
	}

	buckets := PrescriptionTrend(prescriptions, trendToday)
	first := ComputeTrendGeometry(buckets)
	second := ComputeTrendGeometry(buckets)

	assert.Equal(t, first, second)
}

func TestComputeTrendGeometryCanvas(t *testing.T) {
	prescriptions := []model.Prescription{
		{IssuedAt: ts(trendToday)},
		{IssuedAt: ts(trendToday)},
	}

	buckets := PrescriptionTrend(prescriptions, trendToday)
	geo := ComputeTrendGeometry(buckets)

	require.Len(t, geo.Points, 7)
	assert.InDelta(t, 5, geo.Points[0].X, 0.0001)
	assert.InDelta(t, 95, geo.Points[6].X, 0.0001)

	// Busiest day sits at the top of the plot band, empty days at the
	// bottom.
	assert.InDelta(t, 25, geo.Points[6].Y, 0.0001)
	assert.InDelta(t, 85, geo.Points[0].Y, 0.0001)
}

func TestComputeTrendGeometryAreaPinnedToBaseline(t *testing.T) {
	buckets := PrescriptionTrend([]model.Prescription{{IssuedAt: ts(trendToday)}}, trendToday)
	geo := ComputeTrendGeometry(buckets)

	assert.True(t, len(geo.Area) > len(geo.Polyline))
	assert.Contains(t, geo.Area, geo.Polyline)
	assert.Equal(t, "5,90", geo.Area[:4])
	assert.Equal(t, "95,90", geo.Area[len(geo.Area)-5:])
}

func TestComputeTrendGeometryEmptyInput(t *testing.T) {
	geo := ComputeTrendGeometry(nil)
	assert.Empty(t, geo.Points)
	assert.Equal(t, "", geo.Polyline)
	assert.Equal(t, "", geo.Area)
}
