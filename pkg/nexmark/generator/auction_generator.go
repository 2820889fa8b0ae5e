package generator

import (
	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/nexmark/utils"
)

const (
	NUM_CATEGORIES uint64 = 5
)

func NextAuction(eventsCountSoFar uint64, eventId uint64, timestamp uint64,
	config *GeneratorConfig) *ntypes.Auction {
	id := LastBase0AuctionId(config, eventId) + FIRST_AUCTION_ID
	var seller uint64
	// 1 in HotSellersRatio auctions are for a hot seller.
	if NextUint64(eventId, AUCTION_SELLER_FLAG, uint64(config.Configuration.HotSellersRatio)) == 0 {
		seller = HotBase0PersonId(eventId, AUCTION_SELLER_PICK, config)
	} else {
		seller = NextBase0PersonId(eventId, AUCTION_SELLER_PICK, config)
	}
	seller += FIRST_PERSON_ID
	category := FIRST_CATEGORY_ID + NextUint64(eventId, AUCTION_CATEGORY, NUM_CATEGORIES)
	initialBid := NextPrice(eventId, AUCTION_INITIAL_BID)
	expires := int64(timestamp) + nextAuctionLengthMs(eventsCountSoFar, eventId, timestamp, config)
	name := NextString(eventId, AUCTION_ITEM_NAME, 20)
	desc := NextString(eventId, AUCTION_DESCRIPTION, 100)
	reserve := initialBid + NextPrice(eventId, AUCTION_RESERVE)
	currentSize := 8 + len(name) + len(desc) + 8 + 8 + 8 + 8 + 8
	extra := NextExtra(eventId, AUCTION_EXTRA, uint32(currentSize), config.Configuration.AvgAuctionByteSize)
	return &ntypes.Auction{
		ID:          id,
		ItemName:    name,
		Description: desc,
		InitialBid:  initialBid,
		Reserve:     reserve,
		DateTime:    int64(timestamp),
		Expires:     expires,
		Seller:      seller,
		Category:    category,
		Extra:       extra,
	}
}

// LastBase0AuctionId returns the last valid auction id (ignoring
// FIRST_AUCTION_ID) allocated at or before eventId.
func LastBase0AuctionId(config *GeneratorConfig, eventId uint64) uint64 {
	epoch := eventId / uint64(config.TotalProportion)
	offset := eventId % uint64(config.TotalProportion)
	if offset < uint64(config.PersonProportion) {
		epoch -= 1
		offset = uint64(config.AuctionProportion - 1)
	} else if offset >= uint64(config.PersonProportion+config.AuctionProportion) {
		offset = uint64(config.AuctionProportion) - 1
	} else {
		offset -= uint64(config.PersonProportion)
	}
	return epoch*uint64(config.AuctionProportion) + offset
}

// NextBase0AuctionId picks a cold auction reference from the in-flight
// window, skipping its hot subset.
func NextBase0AuctionId(eventId uint64, pickTag FieldId, config *GeneratorConfig) uint64 {
	numAuctions := LastBase0AuctionId(config, eventId) + 1
	inFlight := utils.Min(numAuctions, uint64(config.Configuration.NumInFlightAuctions))
	windowStart := numAuctions - inFlight
	hot := utils.Min(inFlight, HOT_SUBSET_SIZE)
	if inFlight == hot {
		return windowStart + NextUint64(eventId, pickTag, inFlight)
	}
	return windowStart + hot + NextUint64(eventId, pickTag, inFlight-hot)
}

// HotBase0AuctionId picks among the oldest in-flight auctions.
func HotBase0AuctionId(eventId uint64, pickTag FieldId, config *GeneratorConfig) uint64 {
	numAuctions := LastBase0AuctionId(config, eventId) + 1
	inFlight := utils.Min(numAuctions, uint64(config.Configuration.NumInFlightAuctions))
	windowStart := numAuctions - inFlight
	return windowStart + NextUint64(eventId, pickTag, utils.Min(inFlight, HOT_SUBSET_SIZE))
}

// Return a random time delay, in milliseconds, for length of auctions.
func nextAuctionLengthMs(eventsCountSoFar uint64, eventId uint64, timestamp uint64,
	config *GeneratorConfig) int64 {
	// What's our current event number?
	currentEventNumber := config.NextAdjustedEventNumber(eventsCountSoFar)
	// How many events till we've generated numInFlightAuctions?
	numEventsForAuctions := uint64(config.Configuration.NumInFlightAuctions) * uint64(config.TotalProportion) / uint64(config.AuctionProportion)
	// When will the auction numInFlightAuctions beyond now be generated?
	futureAuction := config.TimestampForEvent(currentEventNumber + numEventsForAuctions)
	// Choose a length with average horizonMs.
	horizonMs := int64(futureAuction) - int64(timestamp)
	return 1 + NextInt64(eventId, AUCTION_LENGTH, utils.Max(horizonMs*2, 1))
}
