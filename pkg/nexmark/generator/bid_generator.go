package generator

import (
	"math/bits"
	"strconv"

	"nexmark-bench/pkg/nexmark/ntypes"

	"github.com/zhangyunhao116/skipmap"
)

const (
	HOT_CHANNELS_RATIO uint64 = 2
	CHANNELS_NUMBER    uint64 = 10_000
)

var (
	HOT_CHANNELS = [4]string{"Google", "Facebook", "Baidu", "Apple"}
	HOT_URLS     = [4]string{
		nextBaseUrl(CHANNELS_NUMBER + 0),
		nextBaseUrl(CHANNELS_NUMBER + 1),
		nextBaseUrl(CHANNELS_NUMBER + 2),
		nextBaseUrl(CHANNELS_NUMBER + 3),
	}
)

type ChannelUrl struct {
	Channel string
	Url     string
}

// Channel/url pairs are pure functions of the channel number; the cache only
// avoids rebuilding them. Safe for concurrent generators.
var channelUrlCache = skipmap.NewUint64[ChannelUrl]()

func NextBid(eventId uint64, timestamp uint64, config *GeneratorConfig) *ntypes.Bid {
	var auction uint64
	// 1 in HotAuctionRatio bids target a hot auction.
	if NextUint64(eventId, BID_AUCTION_FLAG, uint64(config.Configuration.HotAuctionRatio)) == 0 {
		auction = HotBase0AuctionId(eventId, BID_AUCTION_PICK, config)
	} else {
		auction = NextBase0AuctionId(eventId, BID_AUCTION_PICK, config)
	}
	auction += FIRST_AUCTION_ID

	var bidder uint64
	// 1 in HotBiddersRatio bids are placed by a hot bidder.
	if NextUint64(eventId, BID_BIDDER_FLAG, uint64(config.Configuration.HotBiddersRatio)) == 0 {
		bidder = HotBase0PersonId(eventId, BID_BIDDER_PICK, config)
	} else {
		bidder = NextBase0PersonId(eventId, BID_BIDDER_PICK, config)
	}
	bidder += FIRST_PERSON_ID

	price := NextPrice(eventId, BID_PRICE)
	channel, url := nextChannelUrl(eventId)

	currentSize := 8 + 8 + 8 + 8
	extra := NextExtra(eventId, BID_EXTRA, uint32(currentSize), config.Configuration.AvgBidByteSize)
	return &ntypes.Bid{
		Auction:  auction,
		Bidder:   bidder,
		Price:    price,
		Channel:  channel,
		Url:      url,
		DateTime: int64(timestamp),
		Extra:    extra,
	}
}

func nextChannelUrl(eventId uint64) (string, string) {
	if NextUint64(eventId, BID_CHANNEL_FLAG, HOT_CHANNELS_RATIO) > 0 {
		i := NextUint64(eventId, BID_CHANNEL_PICK, uint64(len(HOT_CHANNELS)))
		return HOT_CHANNELS[i], HOT_URLS[i]
	}
	k := NextUint64(eventId, BID_CHANNEL_PICK, CHANNELS_NUMBER)
	cu := channelUrl(k)
	return cu.Channel, cu.Url
}

func channelUrl(k uint64) ChannelUrl {
	if cu, ok := channelUrlCache.Load(k); ok {
		return cu
	}
	url := nextBaseUrl(k)
	if NextUint64(k, CHANNEL_HAS_ID, 10) > 0 {
		url += "&channel_id=" + strconv.FormatUint(uint64(bits.Reverse32(uint32(k))), 10)
	}
	cu := ChannelUrl{
		Channel: "channel-" + strconv.FormatUint(k, 10),
		Url:     url,
	}
	channelUrlCache.Store(k, cu)
	return cu
}

func nextBaseUrl(seed uint64) string {
	return "https://www.nexmark.com/" +
		NextString(seed, CHANNEL_URL_PART0, 5) + "/" +
		NextString(seed, CHANNEL_URL_PART1, 5) + "/" +
		NextString(seed, CHANNEL_URL_PART2, 5) + "/" +
		"item.htm?query=1"
}
