package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rangeOfDays(days int) DateRange {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days-1),
	}
}

func TestResolveGroupingBoundaries(t *testing.T) {
	tests := []struct {
		days     int
		expected Grouping
	}{
		{1, GroupingDay},
		{31, GroupingDay},
		{32, GroupingWeek},
		{90, GroupingWeek},
		{91, GroupingTwoWeeks},
		{180, GroupingTwoWeeks},
		{181, GroupingMonth},
		{365, GroupingMonth},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.expected, ResolveGrouping(rangeOfDays(tt.days)),
			"intervalo de %d dias", tt.days)
	}
}

func TestDateRangeDaysIsInclusive(t *testing.T) {
	day := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DateRange{StartDate: day, EndDate: day}.Days())
	assert.Equal(t, 7, DateRange{StartDate: day, EndDate: day.AddDate(0, 0, 6)}.Days())
}

func TestDeriveRatiosFromSummedBases(t *testing.T) {
	totals := MetricTotals{
		Clicks:      200,
		Impressions: 10000,
		Cost:        50,
		Purchases7d: 10,
		Sales7d:     250,
		// Valores promediados pelo banco são descartados e recalculados
		CostPerClick:     9.99,
		AcosClicks7d:     9.99,
		RoasClicks7d:     9.99,
		ClickThroughRate: 9.99,
		ConversionRate7d: 9.99,
	}

	totals.DeriveRatios()

	assert.Equal(t, 0.25, totals.CostPerClick)
	assert.Equal(t, 20.0, totals.AcosClicks7d)
	assert.Equal(t, 5.0, totals.RoasClicks7d)
	assert.Equal(t, 2.0, totals.ClickThroughRate)
	assert.Equal(t, 5.0, totals.ConversionRate7d)
}

func TestDeriveRatiosGuardsZeroDivisors(t *testing.T) {
	totals := MetricTotals{
		CostPerClick:     9.99,
		AcosClicks7d:     9.99,
		RoasClicks7d:     9.99,
		ClickThroughRate: 9.99,
		ConversionRate7d: 9.99,
	}

	totals.DeriveRatios()

	assert.Zero(t, totals.CostPerClick)
	assert.Zero(t, totals.AcosClicks7d)
	assert.Zero(t, totals.RoasClicks7d)
	assert.Zero(t, totals.ClickThroughRate)
	assert.Zero(t, totals.ConversionRate7d)
}

func TestEmptyInsights(t *testing.T) {
	insights := EmptyInsights(rangeOfDays(60))

	assert.NotNil(t, insights.TimeSeries)
	assert.Empty(t, insights.TimeSeries)
	assert.Equal(t, MetricTotals{}, insights.Totals)
	assert.Equal(t, GroupingWeek, insights.Grouping)
}

func TestAggregationFor(t *testing.T) {
	assert.Equal(t, AggregationSum, AggregationFor("clicks"))
	assert.Equal(t, AggregationAvg, AggregationFor("costPerClick"))
	assert.Equal(t, AggregationSum, AggregationFor("unknownMetric"))
}
