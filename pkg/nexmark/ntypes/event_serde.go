package ntypes

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/tinylib/msgp/msgp"
	"golang.org/x/xerrors"
)

// EventSerde converts events to and from a wire format.
type EventSerde interface {
	Encode(e *Event) ([]byte, error)
	Decode(payload []byte) (*Event, error)
}

var jsonc = jsoniter.ConfigCompatibleWithStandardLibrary

type EventJSONSerde struct{}

var _ = EventSerde(EventJSONSerde{})

func (s EventJSONSerde) Encode(e *Event) ([]byte, error) {
	return jsonc.Marshal(e)
}

func (s EventJSONSerde) Decode(payload []byte) (*Event, error) {
	e := Event{}
	if err := jsonc.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EventMsgpSerde writes the same map layout the msgp code generator would
// produce for Event, without a generation step.
type EventMsgpSerde struct{}

var _ = EventSerde(EventMsgpSerde{})

func (s EventMsgpSerde) Encode(e *Event) ([]byte, error) {
	b := msgp.Require(nil, 256)
	b = msgp.AppendMapHeader(b, 2)
	b = msgp.AppendString(b, "etype")
	b = msgp.AppendUint8(b, uint8(e.Etype))
	switch e.Etype {
	case PERSON:
		b = msgp.AppendString(b, "newPerson")
		b = appendPerson(b, e.NewPerson)
	case AUCTION:
		b = msgp.AppendString(b, "newAuction")
		b = appendAuction(b, e.NewAuction)
	case BID:
		b = msgp.AppendString(b, "bid")
		b = appendBid(b, e.Bid)
	default:
		return nil, xerrors.Errorf("encode: unrecognized event type %d", e.Etype)
	}
	return b, nil
}

func appendPerson(b []byte, p *Person) []byte {
	b = msgp.AppendMapHeader(b, 8)
	b = msgp.AppendString(b, "name")
	b = msgp.AppendString(b, p.Name)
	b = msgp.AppendString(b, "emailAddress")
	b = msgp.AppendString(b, p.EmailAddress)
	b = msgp.AppendString(b, "creditCard")
	b = msgp.AppendString(b, p.CreditCard)
	b = msgp.AppendString(b, "city")
	b = msgp.AppendString(b, p.City)
	b = msgp.AppendString(b, "state")
	b = msgp.AppendString(b, p.State)
	b = msgp.AppendString(b, "extra")
	b = msgp.AppendString(b, p.Extra)
	b = msgp.AppendString(b, "id")
	b = msgp.AppendUint64(b, p.ID)
	b = msgp.AppendString(b, "dateTime")
	b = msgp.AppendInt64(b, p.DateTime)
	return b
}

func appendAuction(b []byte, a *Auction) []byte {
	b = msgp.AppendMapHeader(b, 10)
	b = msgp.AppendString(b, "itemName")
	b = msgp.AppendString(b, a.ItemName)
	b = msgp.AppendString(b, "description")
	b = msgp.AppendString(b, a.Description)
	b = msgp.AppendString(b, "extra")
	b = msgp.AppendString(b, a.Extra)
	b = msgp.AppendString(b, "id")
	b = msgp.AppendUint64(b, a.ID)
	b = msgp.AppendString(b, "reserve")
	b = msgp.AppendUint64(b, a.Reserve)
	b = msgp.AppendString(b, "dateTime")
	b = msgp.AppendInt64(b, a.DateTime)
	b = msgp.AppendString(b, "expires")
	b = msgp.AppendInt64(b, a.Expires)
	b = msgp.AppendString(b, "seller")
	b = msgp.AppendUint64(b, a.Seller)
	b = msgp.AppendString(b, "category")
	b = msgp.AppendUint64(b, a.Category)
	b = msgp.AppendString(b, "initialBid")
	b = msgp.AppendUint64(b, a.InitialBid)
	return b
}

func appendBid(b []byte, bid *Bid) []byte {
	b = msgp.AppendMapHeader(b, 7)
	b = msgp.AppendString(b, "extra")
	b = msgp.AppendString(b, bid.Extra)
	b = msgp.AppendString(b, "channel")
	b = msgp.AppendString(b, bid.Channel)
	b = msgp.AppendString(b, "url")
	b = msgp.AppendString(b, bid.Url)
	b = msgp.AppendString(b, "bidder")
	b = msgp.AppendUint64(b, bid.Bidder)
	b = msgp.AppendString(b, "price")
	b = msgp.AppendUint64(b, bid.Price)
	b = msgp.AppendString(b, "dateTime")
	b = msgp.AppendInt64(b, bid.DateTime)
	b = msgp.AppendString(b, "auction")
	b = msgp.AppendUint64(b, bid.Auction)
	return b
}

func (s EventMsgpSerde) Decode(payload []byte) (*Event, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(payload)
	if err != nil {
		return nil, err
	}
	e := Event{}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "etype":
			var et uint8
			et, o, err = msgp.ReadUint8Bytes(o)
			if err != nil {
				return nil, err
			}
			e.Etype = EType(et)
		case "newPerson":
			e.NewPerson = &Person{}
			o, err = readPerson(o, e.NewPerson)
			if err != nil {
				return nil, err
			}
		case "newAuction":
			e.NewAuction = &Auction{}
			o, err = readAuction(o, e.NewAuction)
			if err != nil {
				return nil, err
			}
		case "bid":
			e.Bid = &Bid{}
			o, err = readBid(o, e.Bid)
			if err != nil {
				return nil, err
			}
		default:
			o, err = msgp.Skip(o)
			if err != nil {
				return nil, err
			}
		}
	}
	return &e, nil
}

func readPerson(b []byte, p *Person) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "name":
			p.Name, o, err = msgp.ReadStringBytes(o)
		case "emailAddress":
			p.EmailAddress, o, err = msgp.ReadStringBytes(o)
		case "creditCard":
			p.CreditCard, o, err = msgp.ReadStringBytes(o)
		case "city":
			p.City, o, err = msgp.ReadStringBytes(o)
		case "state":
			p.State, o, err = msgp.ReadStringBytes(o)
		case "extra":
			p.Extra, o, err = msgp.ReadStringBytes(o)
		case "id":
			p.ID, o, err = msgp.ReadUint64Bytes(o)
		case "dateTime":
			p.DateTime, o, err = msgp.ReadInt64Bytes(o)
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

func readAuction(b []byte, a *Auction) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "itemName":
			a.ItemName, o, err = msgp.ReadStringBytes(o)
		case "description":
			a.Description, o, err = msgp.ReadStringBytes(o)
		case "extra":
			a.Extra, o, err = msgp.ReadStringBytes(o)
		case "id":
			a.ID, o, err = msgp.ReadUint64Bytes(o)
		case "reserve":
			a.Reserve, o, err = msgp.ReadUint64Bytes(o)
		case "dateTime":
			a.DateTime, o, err = msgp.ReadInt64Bytes(o)
		case "expires":
			a.Expires, o, err = msgp.ReadInt64Bytes(o)
		case "seller":
			a.Seller, o, err = msgp.ReadUint64Bytes(o)
		case "category":
			a.Category, o, err = msgp.ReadUint64Bytes(o)
		case "initialBid":
			a.InitialBid, o, err = msgp.ReadUint64Bytes(o)
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

func readBid(b []byte, bid *Bid) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "extra":
			bid.Extra, o, err = msgp.ReadStringBytes(o)
		case "channel":
			bid.Channel, o, err = msgp.ReadStringBytes(o)
		case "url":
			bid.Url, o, err = msgp.ReadStringBytes(o)
		case "bidder":
			bid.Bidder, o, err = msgp.ReadUint64Bytes(o)
		case "price":
			bid.Price, o, err = msgp.ReadUint64Bytes(o)
		case "dateTime":
			bid.DateTime, o, err = msgp.ReadInt64Bytes(o)
		case "auction":
			bid.Auction, o, err = msgp.ReadUint64Bytes(o)
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}
