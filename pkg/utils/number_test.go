package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 1.23, RoundWithTwoDecimalPlace(1.2349))
	assert.Equal(t, 1.24, RoundWithTwoDecimalPlace(1.235))
	assert.Equal(t, -2.5, RoundWithTwoDecimalPlace(-2.499))
}

func TestCleanNumeric(t *testing.T) {
	assert.Equal(t, "1234.56", CleanNumeric(" $1,234.56 "))
	assert.Equal(t, "12.5", CleanNumeric("12.5%"))
	assert.Equal(t, "42", CleanNumeric("42"))
}

func TestParseNumeric(t *testing.T) {
	v, err := ParseNumeric("$1,234.56")
	require.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	_, err = ParseNumeric("n/a")
	assert.Error(t, err)
}

func TestParsePercentageReturnsFraction(t *testing.T) {
	v, err := ParsePercentage("12.5%")
	require.NoError(t, err)
	assert.Equal(t, 0.125, v)

	v, err = ParsePercentage("0%")
	require.NoError(t, err)
	assert.Zero(t, v)
}
