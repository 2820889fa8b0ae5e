package generator

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// FieldId tags one variable field of one entity kind. Every draw made while
// building an event mixes the event id with the field's tag, so fields of
// the same event are uncorrelated and any event can be rebuilt from its id
// alone, in any order, on any goroutine.
type FieldId uint32

const (
	PERSON_FIRST_NAME FieldId = iota
	PERSON_LAST_NAME
	PERSON_EMAIL_LOCAL
	PERSON_EMAIL_DOMAIN
	PERSON_CREDIT_CARD
	PERSON_CITY
	PERSON_STATE
	PERSON_EXTRA
	AUCTION_ITEM_NAME
	AUCTION_DESCRIPTION
	AUCTION_INITIAL_BID
	AUCTION_RESERVE
	AUCTION_LENGTH
	AUCTION_CATEGORY
	AUCTION_SELLER_FLAG
	AUCTION_SELLER_PICK
	AUCTION_EXTRA
	BID_AUCTION_FLAG
	BID_AUCTION_PICK
	BID_BIDDER_FLAG
	BID_BIDDER_PICK
	BID_PRICE
	BID_CHANNEL_FLAG
	BID_CHANNEL_PICK
	BID_EXTRA
	CHANNEL_URL_PART0
	CHANNEL_URL_PART1
	CHANNEL_URL_PART2
	CHANNEL_HAS_ID
)

// FieldUint64 is the keyed mixing function everything else is built on:
// 64 well-mixed bits from (seed, tag), no state carried between calls.
func FieldUint64(seed uint64, tag FieldId) uint64 {
	return fieldBlock(seed, tag, 0)
}

// fieldBlock extends a (seed, tag) stream to arbitrary length; block 0 is
// reserved for scalar/size draws, blocks >= 1 feed string content.
func fieldBlock(seed uint64, tag FieldId, block uint32) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], seed)
	binary.LittleEndian.PutUint32(b[8:12], uint32(tag))
	binary.LittleEndian.PutUint32(b[12:16], block)
	return xxhash.Sum64(b[:])
}

func NextUint64(seed uint64, tag FieldId, n uint64) uint64 {
	return FieldUint64(seed, tag) % n
}

func NextInt64(seed uint64, tag FieldId, n int64) int64 {
	return int64(FieldUint64(seed, tag) % uint64(n))
}

func NextFloat64(seed uint64, tag FieldId) float64 {
	return float64(FieldUint64(seed, tag)>>11) / (1 << 53)
}
