package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateToPeriodUs(t *testing.T) {
	assert.Equal(t, uint64(100), PER_SECOND.RateToPeriodUs(10000))
	assert.Equal(t, uint64(100_000), PER_SECOND.RateToPeriodUs(10))
	assert.Equal(t, uint64(1_000_000), PER_MINUTE.RateToPeriodUs(60))
	// rounded, not truncated
	assert.Equal(t, uint64(333_333), PER_SECOND.RateToPeriodUs(3))
}

func TestInterEventDelayConstantRate(t *testing.T) {
	delays, err := SQUARE.InterEventDelayUsArr(10000, 10000, PER_SECOND, 1)
	require.NoError(t, err)
	require.Len(t, delays, 1)
	assert.Equal(t, 100.0, delays[0])

	// each of n generators runs n times slower
	delays, err = SINE.InterEventDelayUsArr(10000, 10000, PER_SECOND, 4)
	require.NoError(t, err)
	require.Len(t, delays, 1)
	assert.Equal(t, 400.0, delays[0])
}

func TestInterEventDelaySquare(t *testing.T) {
	delays, err := SQUARE.InterEventDelayUsArr(1000, 200, PER_SECOND, 1)
	require.NoError(t, err)
	require.Len(t, delays, 2)
	assert.Equal(t, 1000.0, delays[0])
	assert.Equal(t, 5000.0, delays[1])
}

func TestInterEventDelaySine(t *testing.T) {
	delays, err := SINE.InterEventDelayUsArr(1000, 200, PER_SECOND, 1)
	require.NoError(t, err)
	require.Len(t, delays, int(NUM_STEPS))
	// starts at the first rate's period and peaks near the second's
	assert.Equal(t, 1000.0, delays[0])
	for _, d := range delays {
		assert.GreaterOrEqual(t, d, 1000.0)
		assert.LessOrEqual(t, d, 5000.0)
	}
}

func TestInterEventDelayUnknownShape(t *testing.T) {
	_, err := RateShape(9).InterEventDelayUsArr(1000, 200, PER_SECOND, 1)
	assert.Error(t, err)
}

func TestStepLengthSec(t *testing.T) {
	assert.Equal(t, uint32(300), SQUARE.StepLengthSec(600))
	assert.Equal(t, uint32(60), SINE.StepLengthSec(600))
	// rounds up so the whole period is covered
	assert.Equal(t, uint32(4), SQUARE.StepLengthSec(7))
	assert.Equal(t, uint32(1), SINE.StepLengthSec(7))
}
