package generator

import (
	"math"
)

// NextPrice draws a price in cents, log-uniform over [100, 10^8].
func NextPrice(seed uint64, tag FieldId) uint64 {
	return uint64(math.Round(math.Pow(10.0, NextFloat64(seed, tag)*6.0) * 100.0))
}
