package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1234.50 USD", NumericValue(ValueTypeCurrency, 1234.499, "USD").Format())
	assert.Equal(t, "0.00 BRL", NumericValue(ValueTypeCurrency, 0, "BRL").Format())
}

func TestFormatCurrencyWithoutCode(t *testing.T) {
	assert.Equal(t, "99.90", NumericValue(ValueTypeCurrency, 99.9, "").Format())
}

func TestFormatPercentageMultipliesFraction(t *testing.T) {
	// Percentuais são armazenados como fração e exibidos multiplicados por 100
	assert.Equal(t, "12.50%", NumericValue(ValueTypePercentage, 0.125, "").Format())
	assert.Equal(t, "0.00%", NumericValue(ValueTypePercentage, 0, "").Format())
	assert.Equal(t, "100.00%", NumericValue(ValueTypePercentage, 1, "").Format())
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "3.42x", NumericValue(ValueTypeRatio, 3.418, "").Format())
}

func TestFormatIntegerGroupsThousands(t *testing.T) {
	assert.Equal(t, "0", NumericValue(ValueTypeInteger, 0, "").Format())
	assert.Equal(t, "999", NumericValue(ValueTypeInteger, 999, "").Format())
	assert.Equal(t, "1,000", NumericValue(ValueTypeInteger, 1000, "").Format())
	assert.Equal(t, "1,234,567", NumericValue(ValueTypeInteger, 1234567, "").Format())
	assert.Equal(t, "-12,345", NumericValue(ValueTypeInteger, -12345, "").Format())
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, "exact", TextValue("exact").Format())
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", DateValue(day).Format())
	assert.Equal(t, "", MetricValue{Type: ValueTypeDate}.Format())
}

func TestFormatUnknownTypeFallsBack(t *testing.T) {
	assert.Equal(t, "0.1235", MetricValue{Type: "custom", Numeric: 0.12349}.Format())
}
