package utils

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
	"golang.org/x/xerrors"
)

/// Number of us per unit
type RateUnit uint32

const (
	PER_SECOND RateUnit = 1_000_000
	PER_MINUTE RateUnit = 60_000_000
)

/// Number of us between events at given rate
func (ru RateUnit) RateToPeriodUs(rate uint64) uint64 {
	return (uint64(ru) + rate/2) / rate
}

type RateShape uint8

const (
	SQUARE    RateShape = 0
	SINE      RateShape = 1
	NUM_STEPS uint32    = 10
)

/// Return inter-event delay, in us, for each generator to follow in order
/// to achieve `rate` at `unit` using `numGenerators`.
func (rs RateShape) InterEventDelayUs(rate uint64, unit RateUnit, numGenerators uint32) uint64 {
	return unit.RateToPeriodUs(rate) * uint64(numGenerators)
}

/// Return array of successive inter-event delays, in us, for each generator to follow in
/// order to achieve this shape with `firstRate/nextRate` at `unit` using `numGenerators`.
func (rs RateShape) InterEventDelayUsArr(firstRate uint64, nextRate uint64, unit RateUnit, numGenerators uint32) ([]float64, error) {
	if firstRate == nextRate {
		return []float64{float64(unit.RateToPeriodUs(firstRate) * uint64(numGenerators))}, nil
	}

	switch rs {
	case SQUARE:
		return []float64{
			float64(unit.RateToPeriodUs(firstRate) * uint64(numGenerators)),
			float64(unit.RateToPeriodUs(nextRate) * uint64(numGenerators)),
		}, nil
	case SINE:
		mid := float64(firstRate+nextRate) / 2.0
		amp := float64(firstRate) - mid
		ret := make([]float64, NUM_STEPS)
		for i := uint32(0); i < NUM_STEPS; i++ {
			r := (2.0 * math.Pi * float64(i)) / float64(NUM_STEPS)
			rate := mid + amp*math.Cos(r)
			ret[i] = float64(unit.RateToPeriodUs(uint64(math.Round(rate))) * uint64(numGenerators))
		}
		return ret, nil
	default:
		return nil, xerrors.Errorf("unknown rate shape %v", rs)
	}
}

func (rs RateShape) StepLengthSec(ratePeriodSec uint32) uint32 {
	n := uint32(0)
	switch rs {
	case SQUARE:
		n = 2
	case SINE:
		n = NUM_STEPS
	default:
		log.Fatal().Uint32("RateShape", uint32(rs)).Msg("Unknown rate shape")
	}
	return (ratePeriodSec + n - 1) / n
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
