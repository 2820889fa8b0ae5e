package ntypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []*Event {
	return []*Event{
		NewPersonEvent(&Person{
			Name:         "Kate Walton",
			EmailAddress: "xyz@abc.com",
			CreditCard:   "1234 5678 9012 3456",
			City:         "Seattle",
			State:        "WA",
			Extra:        "pad",
			ID:           1001,
			DateTime:     1_436_918_400_000,
		}),
		NewAuctionEvent(&Auction{
			ItemName:    "widget",
			Description: "a widget in fine condition",
			Extra:       "pad",
			ID:          1002,
			Reserve:     2500,
			DateTime:    1_436_918_400_100,
			Expires:     1_436_918_460_100,
			Seller:      1001,
			Category:    12,
			InitialBid:  1200,
		}),
		NewBidEvent(&Bid{
			Extra:    "pad",
			Channel:  "Google",
			Url:      "https://www.nexmark.com/abc/def/ghi/item.htm?query=1",
			Bidder:   1001,
			Price:    777,
			DateTime: 1_436_918_400_200,
			Auction:  1002,
		}),
	}
}

func TestSerdeRoundTrip(t *testing.T) {
	serdes := map[string]EventSerde{
		"json": EventJSONSerde{},
		"msgp": EventMsgpSerde{},
	}
	for name, serde := range serdes {
		t.Run(name, func(t *testing.T) {
			for _, want := range sampleEvents() {
				payload, err := serde.Encode(want)
				require.NoError(t, err)
				got, err := serde.Decode(payload)
				require.NoError(t, err)
				assert.Equal(t, want, got, "etype %v", want.Etype)
			}
		})
	}
}

func TestMsgpEncodeUnknownType(t *testing.T) {
	_, err := EventMsgpSerde{}.Encode(&Event{Etype: EType(9)})
	assert.Error(t, err)
}

func TestJSONOmitsAbsentEntities(t *testing.T) {
	payload, err := EventJSONSerde{}.Encode(sampleEvents()[2])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "newPerson")
	assert.NotContains(t, string(payload), "newAuction")
	assert.Contains(t, string(payload), `"bid"`)
}

func TestExtractEventTime(t *testing.T) {
	for _, ev := range sampleEvents() {
		ts, err := ev.ExtractEventTime()
		require.NoError(t, err)
		assert.NotZero(t, ts)
	}
	_, err := (&Event{Etype: EType(9)}).ExtractEventTime()
	assert.Error(t, err)
}
