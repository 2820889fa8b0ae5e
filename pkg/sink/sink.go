// Package sink delivers generated events to their destination: an output
// stream as JSON lines, a Kafka topic, a Redis stream, or an object store
// for bulk datasets.
package sink

import (
	"context"
	"encoding/binary"

	"nexmark-bench/pkg/nexmark/ntypes"
)

type EventSink interface {
	Produce(ctx context.Context, event *ntypes.Event) error
	Flush(ctx context.Context) error
	Close() error
}

// eventKey is the partitioning key of an event: the id of the entity it is
// about, so all bids of one auction land in one partition.
func eventKey(event *ntypes.Event) []byte {
	var id uint64
	switch event.Etype {
	case ntypes.PERSON:
		id = event.NewPerson.ID
	case ntypes.AUCTION:
		id = event.NewAuction.ID
	case ntypes.BID:
		id = event.Bid.Auction
	}
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, id)
	return key
}
