package generator

import (
	"math"

	"nexmark-bench/pkg/nexmark"
	"nexmark-bench/pkg/nexmark/utils"
)

const (
	FIRST_AUCTION_ID  uint64 = 1000
	FIRST_PERSON_ID   uint64 = 1000
	FIRST_CATEGORY_ID uint64 = 10

	// Size of the hot subset of an active window: its oldest ids, the
	// long-lived power sellers / popular auctions / frequent bidders.
	HOT_SUBSET_SIZE uint64 = 4
)

type GeneratorConfig struct {
	PersonProportion  uint32
	AuctionProportion uint32
	BidProportion     uint32
	TotalProportion   uint32
	Configuration     *nexmark.NexMarkConfig
	InterEventDelayUs []float64
	StepLengthSec     uint64
	BaseTime          uint64
	FirstEventId      uint64
	MaxEvents         uint64
	FirstEventNumber  uint64
	EpochPeriodMs     float64
	EventPerEpoch     uint64
}

func NewGeneratorConfig(configuration *nexmark.NexMarkConfig, baseTime uint64, /* millisecond */
	firstEventId uint64, maxEventsOrZero uint64, firstEventNumber uint64) (*GeneratorConfig, error) {
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	g := new(GeneratorConfig)
	g.AuctionProportion = configuration.AuctionProportion
	g.PersonProportion = configuration.PersonProportion
	g.BidProportion = configuration.BidProportion
	g.TotalProportion = configuration.AuctionProportion + configuration.PersonProportion + configuration.BidProportion
	g.Configuration = configuration
	delays, err := configuration.RateShape.InterEventDelayUsArr(configuration.FirstEventRate,
		configuration.NextEventRate, configuration.RateUnit, configuration.NumEventGenerators)
	if err != nil {
		return nil, err
	}
	g.InterEventDelayUs = delays
	g.StepLengthSec = uint64(configuration.RateShape.StepLengthSec(configuration.RatePeriodSec))
	g.BaseTime = baseTime
	g.FirstEventId = firstEventId
	if maxEventsOrZero == 0 {
		g.MaxEvents = math.MaxUint64 / (uint64(g.TotalProportion) * uint64(utils.Max(
			utils.Max(configuration.AvgPersonByteSize, configuration.AvgAuctionByteSize),
			configuration.AvgBidByteSize)))
	} else {
		g.MaxEvents = maxEventsOrZero
	}
	g.FirstEventNumber = firstEventNumber

	g.EventPerEpoch = 0
	g.EpochPeriodMs = 0
	if len(delays) > 1 {
		for _, d := range delays {
			n := uint64(float64(g.StepLengthSec) * 1_000_000.0 / d)
			g.EventPerEpoch += n
			g.EpochPeriodMs += float64(n) * d / 1000.0
		}
	}
	return g, nil
}

// Split partitions the event-id space into n disjoint sub-configs for
// parallel generation; each worker drives its own range independently.
func (gc *GeneratorConfig) Split(n uint32) []*GeneratorConfig {
	var results []*GeneratorConfig
	if n == 1 {
		results = append(results, gc)
	} else {
		subMaxEvents := gc.MaxEvents / uint64(n)
		subFirstEventId := gc.FirstEventId
		for i := uint32(0); i < n; i++ {
			if i == n-1 {
				subMaxEvents = gc.MaxEvents - subMaxEvents*uint64(n-1)
			}
			results = append(results, gc.CopyWith(subFirstEventId, subMaxEvents, gc.FirstEventNumber))
			subFirstEventId += subMaxEvents
		}
	}
	return results
}

func (gc *GeneratorConfig) CopyWith(firstEventId, maxEvents, firstEventNumber uint64) *GeneratorConfig {
	cp := *gc
	cp.FirstEventId = firstEventId
	cp.MaxEvents = maxEvents
	cp.FirstEventNumber = firstEventNumber
	return &cp
}

func (gc *GeneratorConfig) EstimateBytesForEvents(numEvents uint64) uint64 {
	numPersons := (numEvents * uint64(gc.PersonProportion)) / uint64(gc.TotalProportion)
	numAuctions := (numEvents * uint64(gc.AuctionProportion)) / uint64(gc.TotalProportion)
	numBids := (numEvents * uint64(gc.BidProportion)) / uint64(gc.TotalProportion)
	return numPersons*uint64(gc.Configuration.AvgPersonByteSize) +
		numAuctions*uint64(gc.Configuration.AvgAuctionByteSize) +
		numBids*uint64(gc.Configuration.AvgBidByteSize)
}

func (gc *GeneratorConfig) GetEstimatedSizeBytes() uint64 {
	return gc.EstimateBytesForEvents(gc.MaxEvents)
}

func (gc *GeneratorConfig) GetStartEventId() uint64 {
	return gc.FirstEventId + gc.FirstEventNumber
}

func (gc *GeneratorConfig) GetStopEventId() uint64 {
	return gc.FirstEventId + gc.FirstEventNumber + gc.MaxEvents
}

func (gc *GeneratorConfig) NextEventNumber(numEvents uint64) uint64 {
	return gc.FirstEventNumber + numEvents
}

// NextAdjustedEventNumber shuffles event numbers within out-of-order groups
// of size n; n == 1 leaves the sequence untouched.
func (gc *GeneratorConfig) NextAdjustedEventNumber(numEvents uint64) uint64 {
	n := gc.Configuration.OutOfOrderGroupSize
	eventNumber := gc.NextEventNumber(numEvents)
	base := (eventNumber / n) * n
	offset := (eventNumber * 953) % n
	return base + offset
}

// NextEventNumberForWatermark is the smallest event number of the current
// out-of-order group; its timestamp bounds how out of order the group can be.
func (gc *GeneratorConfig) NextEventNumberForWatermark(numEvents uint64) uint64 {
	n := gc.Configuration.OutOfOrderGroupSize
	eventNumber := gc.NextEventNumber(numEvents)
	return (eventNumber / n) * n
}

// SafeEventIdLimit bounds event ids so the epoch/proportion arithmetic in the
// id formulas cannot overflow.
func (gc *GeneratorConfig) SafeEventIdLimit() uint64 {
	return math.MaxUint64 / uint64(gc.TotalProportion)
}

// TimestampForEvent places an event number on the simulated timeline. With a
// single inter-event delay the timeline is linear; otherwise it walks the
// rate steps of the current epoch.
func (gc *GeneratorConfig) TimestampForEvent(eventNumber uint64) uint64 {
	if len(gc.InterEventDelayUs) == 1 {
		return gc.BaseTime + uint64(float64(eventNumber)*gc.InterEventDelayUs[0]/1000.0)
	}
	epoch := eventNumber / gc.EventPerEpoch
	n := eventNumber % gc.EventPerEpoch
	epochStartMs := float64(epoch) * gc.EpochPeriodMs
	offsetMs := 0.0
	for _, d := range gc.InterEventDelayUs {
		numForStep := uint64(float64(gc.StepLengthSec) * 1_000_000.0 / d)
		if n < numForStep {
			return gc.BaseTime + uint64(epochStartMs+offsetMs+float64(n)*d/1000.0)
		}
		n -= numForStep
		offsetMs += float64(numForStep) * d / 1000.0
	}
	return gc.BaseTime + uint64(epochStartMs+gc.EpochPeriodMs)
}
