package generator

import (
	"context"
	"errors"
	"time"

	"nexmark-bench/pkg/nexmark"
	"nexmark-bench/pkg/nexmark/ntypes"

	"golang.org/x/sync/errgroup"
)

// ErrExhausted reports that a generator has produced its configured number
// of events. It is a normal terminal condition, not a failure.
var ErrExhausted = errors.New("event generator exhausted")

// NexmarkGenerator walks the event-number space one step at a time. Its only
// mutable state is the cursor; everything an event contains is a pure
// function of (event id, config), so a crashed run resumes by constructing a
// new generator with the old cursor value.
type NexmarkGenerator struct {
	Config            *GeneratorConfig
	EventsCountSoFar  uint64
	WallclockBaseTime int64
}

type NextEvent struct {
	WallclockTimestamp int64
	EventTimestamp     int64
	Event              *ntypes.Event
	EventNumber        uint64
	Watermark          int64
}

func NewNexmarkGenerator(config *GeneratorConfig, eventsCountSoFar uint64, wallclockBaseTime int64) *NexmarkGenerator {
	return &NexmarkGenerator{
		Config:            config,
		EventsCountSoFar:  eventsCountSoFar,
		WallclockBaseTime: wallclockBaseTime,
	}
}

func NewSimpleNexmarkGenerator(config *GeneratorConfig) *NexmarkGenerator {
	return NewNexmarkGenerator(config, 0, -1)
}

func (ng *NexmarkGenerator) GetNextEventId() uint64 {
	return ng.Config.FirstEventId + ng.Config.NextAdjustedEventNumber(ng.EventsCountSoFar)
}

func (ng *NexmarkGenerator) HasNext() bool {
	return ng.EventsCountSoFar < ng.Config.MaxEvents
}

// NextEvent advances the cursor by one. It returns ErrExhausted once the
// configured bound is reached and the context error if cancelled; either way
// no partially built event is ever handed out.
func (ng *NexmarkGenerator) NextEvent(ctx context.Context) (*NextEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ng.HasNext() {
		return nil, ErrExhausted
	}
	if ng.WallclockBaseTime < 0 {
		ng.WallclockBaseTime = time.Now().UnixMilli()
	}
	nextEvent, err := generateEvent(ng.Config, ng.EventsCountSoFar, ng.WallclockBaseTime)
	if err != nil {
		return nil, err
	}
	ng.EventsCountSoFar += 1
	return nextEvent, nil
}

// NextEventPaced is NextEvent followed by a wait until the event's wallclock
// due time, so cumulative wallclock time tracks the simulated timeline.
// Waiting respects ctx; pacing never changes event content.
func (ng *NexmarkGenerator) NextEventPaced(ctx context.Context) (*NextEvent, error) {
	nextEvent, err := ng.NextEvent(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	if nextEvent.WallclockTimestamp > now {
		timer := time.NewTimer(time.Duration(nextEvent.WallclockTimestamp-now) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nextEvent, nil
}

// Take produces exactly n events, or fewer followed by ErrExhausted when the
// configured bound cuts the stream short.
func (ng *NexmarkGenerator) Take(ctx context.Context, n uint64) ([]*NextEvent, error) {
	events := make([]*NextEvent, 0, n)
	for uint64(len(events)) < n {
		nextEvent, err := ng.NextEvent(ctx)
		if err != nil {
			return events, err
		}
		events = append(events, nextEvent)
	}
	return events, nil
}

// EventAt is a direct, driver-independent lookup of the event at an event
// number. Calling it twice, on any goroutines, yields identical events.
func EventAt(config *GeneratorConfig, eventsCountSoFar uint64) (*NextEvent, error) {
	return generateEvent(config, eventsCountSoFar, int64(config.BaseTime))
}

func generateEvent(config *GeneratorConfig, eventsCountSoFar uint64, wallclockBaseTime int64) (*NextEvent, error) {
	eventTimestamp := config.TimestampForEvent(config.NextEventNumber(eventsCountSoFar))
	adjustedEventNumber := config.NextAdjustedEventNumber(eventsCountSoFar)
	adjustedEventTimestamp := config.TimestampForEvent(adjustedEventNumber)
	watermark := config.TimestampForEvent(config.NextEventNumberForWatermark(eventsCountSoFar))
	wallclockTimestamp := wallclockBaseTime + (int64(eventTimestamp) - int64(config.BaseTime))

	newEventId := config.FirstEventId + adjustedEventNumber
	if newEventId >= config.SafeEventIdLimit() {
		return nil, &nexmark.GenerationError{
			EventNumber: adjustedEventNumber,
			Reason:      "event id beyond safe arithmetic limit",
		}
	}

	rem := newEventId % uint64(config.TotalProportion)
	var event *ntypes.Event
	if rem < uint64(config.PersonProportion) {
		event = ntypes.NewPersonEvent(NextPerson(newEventId, adjustedEventTimestamp, config))
	} else if rem < uint64(config.PersonProportion)+uint64(config.AuctionProportion) {
		event = ntypes.NewAuctionEvent(NextAuction(eventsCountSoFar, newEventId, adjustedEventTimestamp, config))
	} else {
		event = ntypes.NewBidEvent(NextBid(newEventId, adjustedEventTimestamp, config))
	}
	return &NextEvent{
		WallclockTimestamp: wallclockTimestamp,
		EventTimestamp:     int64(adjustedEventTimestamp),
		Event:              event,
		EventNumber:        config.NextEventNumber(eventsCountSoFar),
		Watermark:          int64(watermark),
	}, nil
}

// GenerateSplit fans the configured event range out over n generators, each
// driving a disjoint sub-range, and feeds every event to fn. fn is called
// concurrently and must be safe for that.
func GenerateSplit(ctx context.Context, config *GeneratorConfig, n uint32, fn func(*NextEvent) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sub := range config.Split(n) {
		sub := sub
		g.Go(func() error {
			gen := NewSimpleNexmarkGenerator(sub)
			for gen.HasNext() {
				nextEvent, err := gen.NextEvent(ctx)
				if err != nil {
					if errors.Is(err, ErrExhausted) {
						return nil
					}
					return err
				}
				if err := fn(nextEvent); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
