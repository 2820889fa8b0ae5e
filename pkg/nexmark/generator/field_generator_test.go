package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUint64Stateless(t *testing.T) {
	// Same (seed, tag) always yields the same value, in any call order.
	a := FieldUint64(42, BID_PRICE)
	_ = FieldUint64(7, PERSON_CITY)
	_ = FieldUint64(42, BID_EXTRA)
	b := FieldUint64(42, BID_PRICE)
	assert.Equal(t, a, b)
}

func TestFieldTagsUncorrelated(t *testing.T) {
	// Distinct tags on the same seed must not collide systematically.
	collisions := 0
	for seed := uint64(0); seed < 1000; seed++ {
		if FieldUint64(seed, PERSON_FIRST_NAME) == FieldUint64(seed, PERSON_LAST_NAME) {
			collisions++
		}
	}
	assert.LessOrEqual(t, collisions, 1)
}

func TestNextUint64Bounded(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		assert.Less(t, NextUint64(seed, AUCTION_CATEGORY, 5), uint64(5))
	}
}

func TestNextFloat64Range(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		f := NextFloat64(seed, BID_PRICE)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestNextExactString(t *testing.T) {
	s := NextExactString(99, AUCTION_ITEM_NAME, 20)
	assert.Len(t, s, 20)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(letterBytes, c))
	}
	assert.Equal(t, s, NextExactString(99, AUCTION_ITEM_NAME, 20))
	assert.NotEqual(t, s, NextExactString(100, AUCTION_ITEM_NAME, 20))
}

func TestNextStringLength(t *testing.T) {
	for seed := uint64(0); seed < 500; seed++ {
		s := NextString(seed, AUCTION_DESCRIPTION, 100)
		assert.GreaterOrEqual(t, len(s), int(MIN_STRING_LENGTH))
		assert.Less(t, len(s), 100)
	}
}

func TestNextExtraPadsToAverage(t *testing.T) {
	// current 50, average 200: padding lands the total within +-20%
	// of the remaining 150 bytes.
	for seed := uint64(0); seed < 500; seed++ {
		extra := NextExtra(seed, PERSON_EXTRA, 50, 200)
		assert.GreaterOrEqual(t, len(extra), 120)
		assert.Less(t, len(extra), 180)
	}
	// already over the average: no padding at all
	assert.Empty(t, NextExtra(1, PERSON_EXTRA, 300, 200))
}

func TestNextPriceRange(t *testing.T) {
	seen := map[uint64]bool{}
	for seed := uint64(0); seed < 1000; seed++ {
		p := NextPrice(seed, BID_PRICE)
		// 10^(f*6) cents with f in [0,1)
		require.GreaterOrEqual(t, p, uint64(100))
		require.LessOrEqual(t, p, uint64(100_000_000))
		seen[p] = true
	}
	assert.Greater(t, len(seen), 900, "prices should rarely collide")
}

func TestChannelUrlDeterministic(t *testing.T) {
	c1, u1 := nextChannelUrl(12345)
	c2, u2 := nextChannelUrl(12345)
	assert.Equal(t, c1, c2)
	assert.Equal(t, u1, u2)
	assert.True(t, strings.HasPrefix(u1, "https://www.nexmark.com/"))
}
