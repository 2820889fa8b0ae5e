package reorder

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopReadyReleasesInOrder(t *testing.T) {
	b := NewBuffer[int]()
	timestamps := []int64{50, 10, 30, 20, 40}
	for i, ts := range timestamps {
		b.Push(ts, i)
	}
	require.Equal(t, 5, b.Len())

	out := b.PopReady(30)
	// values pushed at ts 10, 20, 30
	assert.Equal(t, []int{1, 3, 2}, out)
	assert.Equal(t, 2, b.Len())

	assert.Empty(t, b.PopReady(30))

	out = b.Drain()
	assert.Equal(t, []int{4, 0}, out)
	assert.Equal(t, 0, b.Len())
}

func TestEqualTimestampsKeepArrivalOrder(t *testing.T) {
	b := NewBuffer[string]()
	b.Push(5, "first")
	b.Push(5, "second")
	b.Push(5, "third")
	assert.Equal(t, []string{"first", "second", "third"}, b.Drain())
}

func TestShuffledStreamRestored(t *testing.T) {
	// Shuffle timestamps in bounded windows the way an out-of-order event
	// stream arrives, then check the buffer hands them back sorted.
	r := rand.New(rand.NewSource(1))
	const groups = 20
	const groupSize = 10

	b := NewBuffer[int64]()
	var released []int64
	for g := 0; g < groups; g++ {
		watermark := int64(g * groupSize)
		released = append(released, b.PopReady(watermark-1)...)
		perm := r.Perm(groupSize)
		for _, off := range perm {
			ts := watermark + int64(off)
			b.Push(ts, ts)
		}
	}
	released = append(released, b.Drain()...)

	require.Len(t, released, groups*groupSize)
	assert.True(t, sort.SliceIsSorted(released, func(i, j int) bool {
		return released[i] < released[j]
	}))
}
