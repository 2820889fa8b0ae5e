package generator

import (
	"context"
	"sync"
	"testing"

	"nexmark-bench/pkg/nexmark"
	"nexmark-bench/pkg/nexmark/ntypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseTime uint64 = 1_436_918_400_000

func testGeneratorConfig(t *testing.T, mutate func(*nexmark.NexMarkConfig)) *GeneratorConfig {
	t.Helper()
	cfg := nexmark.NewNexMarkConfig()
	if mutate != nil {
		mutate(cfg)
	}
	gc, err := NewGeneratorConfig(cfg, testBaseTime, 0, 0, 0)
	require.NoError(t, err)
	return gc
}

func TestEventKindCycle(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	// Within every run of TotalProportion consecutive ids the first
	// PersonProportion are people, the next AuctionProportion auctions,
	// the rest bids.
	for i := uint64(0); i <= 50; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		rem := i % 50
		switch {
		case rem < 1:
			assert.Equal(t, ntypes.PERSON, ev.Event.Etype, "index %d", i)
		case rem < 4:
			assert.Equal(t, ntypes.AUCTION, ev.Event.Etype, "index %d", i)
		default:
			assert.Equal(t, ntypes.BID, ev.Event.Etype, "index %d", i)
		}
	}
}

func TestEntityIdsPerCycle(t *testing.T) {
	gc := testGeneratorConfig(t, nil)

	personIds := []uint64{}
	auctionIds := []uint64{}
	for i := uint64(0); i <= 53; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		switch ev.Event.Etype {
		case ntypes.PERSON:
			personIds = append(personIds, ev.Event.NewPerson.ID)
		case ntypes.AUCTION:
			auctionIds = append(auctionIds, ev.Event.NewAuction.ID)
		}
	}
	// One person per cycle, ids dense from FIRST_PERSON_ID.
	assert.Equal(t, []uint64{FIRST_PERSON_ID, FIRST_PERSON_ID + 1}, personIds)
	// Three auctions per cycle, ids dense from FIRST_AUCTION_ID.
	assert.Equal(t, []uint64{
		FIRST_AUCTION_ID, FIRST_AUCTION_ID + 1, FIRST_AUCTION_ID + 2,
		FIRST_AUCTION_ID + 3, FIRST_AUCTION_ID + 4, FIRST_AUCTION_ID + 5,
	}, auctionIds)
}

func TestKindProportionsExact(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	gen := NewSimpleNexmarkGenerator(gc)
	ctx := context.Background()

	const cycles = 20
	persons, auctions, bids := 0, 0, 0
	for i := 0; i < cycles*50; i++ {
		ev, err := gen.NextEvent(ctx)
		require.NoError(t, err)
		switch ev.Event.Etype {
		case ntypes.PERSON:
			persons++
		case ntypes.AUCTION:
			auctions++
		case ntypes.BID:
			bids++
		}
	}
	assert.Equal(t, cycles*1, persons)
	assert.Equal(t, cycles*3, auctions)
	assert.Equal(t, cycles*46, bids)
}

func TestReferentialValidity(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	for i := uint64(0); i < 5000; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		numPeople := LastBase0PersonId(gc, i) + 1
		numAuctions := LastBase0AuctionId(gc, i) + 1
		switch ev.Event.Etype {
		case ntypes.AUCTION:
			seller0 := ev.Event.NewAuction.Seller - FIRST_PERSON_ID
			assert.Less(t, seller0, numPeople, "seller of auction at %d not yet generated", i)
		case ntypes.BID:
			auction0 := ev.Event.Bid.Auction - FIRST_AUCTION_ID
			bidder0 := ev.Event.Bid.Bidder - FIRST_PERSON_ID
			assert.Less(t, auction0, numAuctions, "auction of bid at %d not yet generated", i)
			assert.Less(t, bidder0, numPeople, "bidder of bid at %d not yet generated", i)
		}
	}
}

func TestEntityIdsMonotone(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	gen := NewSimpleNexmarkGenerator(gc)
	ctx := context.Background()

	lastPerson := uint64(0)
	lastAuction := uint64(0)
	for i := 0; i < 10_000; i++ {
		ev, err := gen.NextEvent(ctx)
		require.NoError(t, err)
		switch ev.Event.Etype {
		case ntypes.PERSON:
			require.Greater(t, ev.Event.NewPerson.ID, lastPerson)
			lastPerson = ev.Event.NewPerson.ID
		case ntypes.AUCTION:
			require.Greater(t, ev.Event.NewAuction.ID, lastAuction)
			lastAuction = ev.Event.NewAuction.ID
		}
	}
}

func TestEventAtDeterministic(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	const n = 500
	baseline := make([]*NextEvent, n)
	for i := uint64(0); i < n; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		baseline[i] = ev
	}

	var wg sync.WaitGroup
	results := make([][]*NextEvent, 4)
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]*NextEvent, n)
			// walk backwards so no goroutine follows stream order
			for i := int64(n - 1); i >= 0; i-- {
				ev, err := EventAt(gc, uint64(i))
				if err != nil {
					return
				}
				out[i] = ev
			}
			results[w] = out
		}()
	}
	wg.Wait()
	for w := 0; w < 4; w++ {
		require.NotNil(t, results[w])
		assert.Equal(t, baseline, results[w], "worker %d diverged", w)
	}
}

func TestDriverMatchesEventAt(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	gen := NewNexmarkGenerator(gc, 0, int64(gc.BaseTime))
	ctx := context.Background()
	for i := uint64(0); i < 200; i++ {
		direct, err := EventAt(gc, i)
		require.NoError(t, err)
		streamed, err := gen.NextEvent(ctx)
		require.NoError(t, err)
		assert.Equal(t, direct, streamed, "index %d", i)
	}
}

func TestHotAuctionSkewConvergence(t *testing.T) {
	gc := testGeneratorConfig(t, func(c *nexmark.NexMarkConfig) {
		c.HotAuctionRatio = 4
	})
	hot, total := 0, 0
	for i := uint64(0); i < 100_000; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		if ev.Event.Etype != ntypes.BID {
			continue
		}
		numAuctions := LastBase0AuctionId(gc, i) + 1
		inFlight := numAuctions
		if m := uint64(gc.Configuration.NumInFlightAuctions); inFlight > m {
			inFlight = m
		}
		windowStart := numAuctions - inFlight
		hotSize := inFlight
		if hotSize > HOT_SUBSET_SIZE {
			hotSize = HOT_SUBSET_SIZE
		}
		auction0 := ev.Event.Bid.Auction - FIRST_AUCTION_ID
		if auction0 >= windowStart && auction0 < windowStart+hotSize {
			hot++
		}
		total++
	}
	require.NotZero(t, total)
	frac := float64(hot) / float64(total)
	assert.InDelta(t, 0.25, frac, 0.02, "hot-auction fraction over %d bids", total)
}

func TestHotSellerSkewConvergence(t *testing.T) {
	gc := testGeneratorConfig(t, func(c *nexmark.NexMarkConfig) {
		c.HotSellersRatio = 4
	})
	hot, auctions := 0, 0
	for i := uint64(0); auctions < 4000; i++ {
		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		if ev.Event.Etype != ntypes.AUCTION {
			continue
		}
		auctions++
		numPeople := LastBase0PersonId(gc, i) + 1
		active := numPeople
		if m := uint64(gc.Configuration.NumActivePeople); active > m {
			active = m
		}
		windowStart := numPeople - active
		hotSize := active
		if hotSize > HOT_SUBSET_SIZE {
			hotSize = HOT_SUBSET_SIZE
		}
		seller0 := ev.Event.NewAuction.Seller - FIRST_PERSON_ID
		if seller0 >= windowStart && seller0 < windowStart+hotSize {
			hot++
		}
	}
	// 1 in 4 of 4000 auctions, binomial noise well inside +-100.
	assert.InDelta(t, 1000, hot, 100)
}

func TestTakeBounded(t *testing.T) {
	cfg := nexmark.NewNexMarkConfig()
	gc, err := NewGeneratorConfig(cfg, testBaseTime, 0, 10, 0)
	require.NoError(t, err)
	ctx := context.Background()

	gen := NewSimpleNexmarkGenerator(gc)
	events, err := gen.Take(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, events, 5)

	events, err = gen.Take(ctx, 20)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, events, 5)
	assert.False(t, gen.HasNext())

	_, err = gen.NextEvent(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextEventCancelled(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	gen := NewSimpleNexmarkGenerator(gc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.NextEvent(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), gen.EventsCountSoFar)
}

func TestPacedTimeline(t *testing.T) {
	gc := testGeneratorConfig(t, func(c *nexmark.NexMarkConfig) {
		c.FirstEventRate = 10
		c.NextEventRate = 10
	})
	// 10 events/sec means 100ms between events on the simulated timeline.
	assert.Equal(t, uint64(900), gc.TimestampForEvent(9)-gc.TimestampForEvent(0))

	const wallclockBase = int64(5_000_000)
	gen := NewNexmarkGenerator(gc, 0, wallclockBase)
	ctx := context.Background()
	for i := int64(0); i < 10; i++ {
		ev, err := gen.NextEvent(ctx)
		require.NoError(t, err)
		assert.Equal(t, wallclockBase+i*100, ev.WallclockTimestamp)
		assert.Equal(t, int64(testBaseTime)+i*100, ev.EventTimestamp)
	}
}

func TestGenerateSplitCoversRange(t *testing.T) {
	cfg := nexmark.NewNexMarkConfig()
	gc, err := NewGeneratorConfig(cfg, testBaseTime, 0, 200, 0)
	require.NoError(t, err)

	var mu sync.Mutex
	persons, auctions, bids := 0, 0, 0
	err = GenerateSplit(context.Background(), gc, 4, func(ev *NextEvent) error {
		mu.Lock()
		defer mu.Unlock()
		switch ev.Event.Etype {
		case ntypes.PERSON:
			persons++
		case ntypes.AUCTION:
			auctions++
		case ntypes.BID:
			bids++
		}
		return nil
	})
	require.NoError(t, err)
	// The splits partition event ids 0..199, so the kind counts are those
	// of four whole cycles.
	assert.Equal(t, 4, persons)
	assert.Equal(t, 12, auctions)
	assert.Equal(t, 184, bids)
}

func TestSplitPartitionsMaxEvents(t *testing.T) {
	cfg := nexmark.NewNexMarkConfig()
	gc, err := NewGeneratorConfig(cfg, testBaseTime, 0, 103, 0)
	require.NoError(t, err)
	subs := gc.Split(4)
	require.Len(t, subs, 4)
	total := uint64(0)
	nextFirst := gc.FirstEventId
	for _, sub := range subs {
		assert.Equal(t, nextFirst, sub.FirstEventId)
		total += sub.MaxEvents
		nextFirst += sub.MaxEvents
	}
	assert.Equal(t, uint64(103), total)
}

func TestGenerationErrorBeyondSafeLimit(t *testing.T) {
	gc := testGeneratorConfig(t, nil)
	near := gc.SafeEventIdLimit()
	_, err := EventAt(gc, near)
	require.Error(t, err)
	var genErr *nexmark.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestOutOfOrderGroups(t *testing.T) {
	gc := testGeneratorConfig(t, func(c *nexmark.NexMarkConfig) {
		c.FirstEventRate = 10
		c.NextEventRate = 10
		c.OutOfOrderGroupSize = 10
	})

	seenIds := map[uint64]bool{}
	monotone := true
	lastTs := int64(-1)
	for i := uint64(0); i < 100; i++ {
		adj := gc.NextAdjustedEventNumber(i)
		// shuffle stays within the group
		assert.Equal(t, i/10, adj/10)
		assert.False(t, seenIds[adj], "adjusted number %d reused", adj)
		seenIds[adj] = true

		ev, err := EventAt(gc, i)
		require.NoError(t, err)
		if ev.EventTimestamp < lastTs {
			monotone = false
		}
		lastTs = ev.EventTimestamp
		// watermark is the group floor, never ahead of any group member
		assert.Equal(t, int64(gc.TimestampForEvent((i/10)*10)), ev.Watermark)
		assert.LessOrEqual(t, ev.Watermark, ev.EventTimestamp)
	}
	assert.Len(t, seenIds, 100)
	assert.False(t, monotone, "group size 10 should emit out of timestamp order")
}
