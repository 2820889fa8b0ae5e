package nexmark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	cfg := NewNexMarkConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadParams(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(c *NexMarkConfig)
	}{
		{"zero person proportion", func(c *NexMarkConfig) { c.PersonProportion = 0 }},
		{"zero auction proportion", func(c *NexMarkConfig) { c.AuctionProportion = 0 }},
		{"zero bid proportion", func(c *NexMarkConfig) { c.BidProportion = 0 }},
		{"zero hot sellers ratio", func(c *NexMarkConfig) { c.HotSellersRatio = 0 }},
		{"zero hot auction ratio", func(c *NexMarkConfig) { c.HotAuctionRatio = 0 }},
		{"zero hot bidders ratio", func(c *NexMarkConfig) { c.HotBiddersRatio = 0 }},
		{"zero active people window", func(c *NexMarkConfig) { c.NumActivePeople = 0 }},
		{"zero in-flight auction window", func(c *NexMarkConfig) { c.NumInFlightAuctions = 0 }},
		{"zero first event rate", func(c *NexMarkConfig) { c.FirstEventRate = 0 }},
		{"zero next event rate", func(c *NexMarkConfig) { c.NextEventRate = 0 }},
		{"zero rate period", func(c *NexMarkConfig) { c.RatePeriodSec = 0 }},
		{"unknown rate shape", func(c *NexMarkConfig) { c.RateShape = 42 }},
		{"unknown rate unit", func(c *NexMarkConfig) { c.RateUnit = 7 }},
		{"zero generators", func(c *NexMarkConfig) { c.NumEventGenerators = 0 }},
		{"zero person byte size", func(c *NexMarkConfig) { c.AvgPersonByteSize = 0 }},
		{"zero out-of-order group", func(c *NexMarkConfig) { c.OutOfOrderGroupSize = 0 }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			cfg := NewNexMarkConfig()
			m.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
