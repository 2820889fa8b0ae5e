package nexmark

import (
	"nexmark-bench/pkg/nexmark/utils"
)

type NexMarkConfig struct {
	/// Number of events to generate. If zero, generate as many as possible without overflowing
	/// internal counters etc.
	NumEvents uint64 `json:"numEvents"`

	/// Number of event generators to use. Each generates events in its own timeline.
	NumEventGenerators uint32 `json:"numEventGenerators"`

	/// Shape of event rate curve.
	RateShape utils.RateShape `json:"rateShape"`

	/// Initial overall event rate in `RateUnit`.
	FirstEventRate uint64 `json:"firstEventRate"`

	/// Next overall event rate in `RateUnit`. Equal to `FirstEventRate` for a
	/// constant rate.
	NextEventRate uint64 `json:"nextEventRate"`

	/// Unit for rates
	RateUnit utils.RateUnit `json:"rateUnit"`

	/// Overall period of rate shape, in seconds.
	RatePeriodSec uint32 `json:"ratePeriodSec"`

	/// If true, and in streaming mode, generate events only when they are due according to their
	/// timestamp.
	IsRateLimited bool `json:"isRateLimited"`

	/// If true, use wallclock time as event time. Otherwise, use a deterministic time in the past so
	/// that multiple runs will see exactly the same event streams and should thus have exactly the
	/// same results.
	UseWallclockEventTime bool `json:"useWallclockEventTime"`

	/// Person Proportion.
	PersonProportion uint32 `json:"personProportion"`

	/// Auction Proportion.
	AuctionProportion uint32 `json:"auctionProportion"`

	/// Bid Proportion
	BidProportion uint32 `json:"bidProportion"`

	/// Average idealized size of a 'new person' event, in bytes.
	AvgPersonByteSize uint32 `json:"avgPersonByteSize"`

	/// Average idealized size of a 'new auction' event, in bytes.
	AvgAuctionByteSize uint32 `json:"avgAuctionByteSize"`

	/// Average idealized size of a 'bid' event, in bytes.
	AvgBidByteSize uint32 `json:"avgBidByteSize"`

	/// 1 in HotAuctionRatio bids target one of the hot auctions.
	HotAuctionRatio uint32 `json:"hotAuctionRatio"`

	/// 1 in HotSellersRatio auctions are for one of the hot sellers.
	HotSellersRatio uint32 `json:"hotSellersRatio"`

	/// 1 in HotBiddersRatio bids are placed by one of the hot bidders.
	HotBiddersRatio uint32 `json:"hotBiddersRatio"`

	/// Average number of auctions which should be in flight at any time, per generator.
	NumInFlightAuctions uint32 `json:"numInFlightAuctions"`

	/// Maximum number of people to consider as active for placing auctions or bids.
	NumActivePeople uint32 `json:"numActivePeople"`

	/// Number of events in out-of-order groups. 1 implies no out-of-order events. 1000 implies every
	/// 1000 events per generator are emitted in pseudo-random order.
	OutOfOrderGroupSize uint64 `json:"outOfOrderGroupSize"`
}

func NewNexMarkConfig() *NexMarkConfig {
	return &NexMarkConfig{
		NumEvents:             0,
		NumEventGenerators:    1,
		RateShape:             utils.SQUARE,
		FirstEventRate:        10000,
		NextEventRate:         10000,
		RateUnit:              utils.PER_SECOND,
		RatePeriodSec:         600,
		IsRateLimited:         false,
		UseWallclockEventTime: false,
		PersonProportion:      1,
		AuctionProportion:     3,
		BidProportion:         46,
		AvgPersonByteSize:     200,
		AvgAuctionByteSize:    500,
		AvgBidByteSize:        100,
		HotAuctionRatio:       2,
		HotSellersRatio:       4,
		HotBiddersRatio:       4,
		NumInFlightAuctions:   100,
		NumActivePeople:       1000,
		OutOfOrderGroupSize:   1,
	}
}

// Validate checks the whole parameter combination eagerly so that a config
// that passes can never produce a malformed event mid-stream.
func (c *NexMarkConfig) Validate() error {
	if c.PersonProportion < 1 {
		return &ConfigError{Param: "personProportion", Reason: "must be a positive integer"}
	}
	if c.AuctionProportion < 1 {
		return &ConfigError{Param: "auctionProportion", Reason: "must be a positive integer"}
	}
	if c.BidProportion < 1 {
		return &ConfigError{Param: "bidProportion", Reason: "must be a positive integer"}
	}
	if c.HotSellersRatio < 1 {
		return &ConfigError{Param: "hotSellersRatio", Reason: "must be >= 1"}
	}
	if c.HotAuctionRatio < 1 {
		return &ConfigError{Param: "hotAuctionRatio", Reason: "must be >= 1"}
	}
	if c.HotBiddersRatio < 1 {
		return &ConfigError{Param: "hotBiddersRatio", Reason: "must be >= 1"}
	}
	if c.NumActivePeople < 1 {
		return &ConfigError{Param: "numActivePeople", Reason: "window must be non-zero"}
	}
	if c.NumInFlightAuctions < 1 {
		return &ConfigError{Param: "numInFlightAuctions", Reason: "window must be non-zero"}
	}
	if c.FirstEventRate < 1 || c.NextEventRate < 1 {
		return &ConfigError{Param: "firstEventRate/nextEventRate", Reason: "rate must be positive"}
	}
	if c.RatePeriodSec < 1 {
		return &ConfigError{Param: "ratePeriodSec", Reason: "period must be positive"}
	}
	if c.RateShape != utils.SQUARE && c.RateShape != utils.SINE {
		return &ConfigError{Param: "rateShape", Reason: "unknown shape"}
	}
	if c.RateUnit != utils.PER_SECOND && c.RateUnit != utils.PER_MINUTE {
		return &ConfigError{Param: "rateUnit", Reason: "unknown unit"}
	}
	if c.NumEventGenerators < 1 {
		return &ConfigError{Param: "numEventGenerators", Reason: "must be >= 1"}
	}
	if c.AvgPersonByteSize < 1 || c.AvgAuctionByteSize < 1 || c.AvgBidByteSize < 1 {
		return &ConfigError{Param: "avgByteSize", Reason: "average event size must be positive"}
	}
	if c.OutOfOrderGroupSize < 1 {
		return &ConfigError{Param: "outOfOrderGroupSize", Reason: "must be >= 1"}
	}
	return nil
}
