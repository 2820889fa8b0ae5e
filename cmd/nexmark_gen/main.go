package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexmark-bench/pkg/nexmark"
	"nexmark-bench/pkg/nexmark/generator"
	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/nexmark/utils"
	"nexmark-bench/pkg/sink"

	"github.com/Jeffail/gabs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Canonical deterministic base time: 2015-07-15 00:00:00 UTC.
const defaultBaseTime uint64 = 1_436_918_400_000

var (
	FLAGS_type    string
	FLAGS_number  uint64
	FLAGS_offset  uint64
	FLAGS_step    uint64
	FLAGS_format  string
	FLAGS_no_wait bool
	FLAGS_tps     uint64
	FLAGS_config  string
	FLAGS_sink    string
	FLAGS_stream  string
)

func init() {
	logLevel := os.Getenv("LOG_LEVEL")
	if level, err := zerolog.ParseLevel(logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func main() {
	flag.StringVar(&FLAGS_type, "type", "all", "event type to emit: all, person, auction or bid")
	flag.Uint64Var(&FLAGS_number, "number", 0, "number of events to emit; 0 means run until exhausted")
	flag.Uint64Var(&FLAGS_offset, "offset", 0, "start event offset")
	flag.Uint64Var(&FLAGS_step, "step", 1, "cursor step per emitted event")
	flag.StringVar(&FLAGS_format, "format", "json", "output format: json or debug")
	flag.BoolVar(&FLAGS_no_wait, "no_wait", false, "emit all events immediately instead of pacing them")
	flag.Uint64Var(&FLAGS_tps, "tps", 10000, "events per second")
	flag.StringVar(&FLAGS_config, "config", "", "path of a JSON benchmark config file")
	flag.StringVar(&FLAGS_sink, "sink", "stdout", "where events go: stdout, redis or minio")
	flag.StringVar(&FLAGS_stream, "stream", "nexmark", "redis stream / minio bucket name")
	flag.Parse()

	cfg := nexmark.NewNexMarkConfig()
	cfg.FirstEventRate = FLAGS_tps
	cfg.NextEventRate = FLAGS_tps
	if FLAGS_config != "" {
		if err := applyConfigFile(cfg, FLAGS_config); err != nil {
			log.Fatal().Err(err).Str("path", FLAGS_config).Msg("failed to load config file")
		}
	}

	baseTime := defaultBaseTime
	if cfg.UseWallclockEventTime {
		baseTime = uint64(time.Now().UnixMilli())
	}
	generatorConfig, err := generator.NewGeneratorConfig(cfg, baseTime, 0, cfg.NumEvents, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid benchmark config")
	}
	eventGenerator := generator.NewNexmarkGenerator(generatorConfig, FLAGS_offset, -1)

	var want ntypes.EType
	filtered := true
	switch FLAGS_type {
	case "all":
		filtered = false
	case "person":
		want = ntypes.PERSON
	case "auction":
		want = ntypes.AUCTION
	case "bid":
		want = ntypes.BID
	default:
		log.Fatal().Str("type", FLAGS_type).Msg("unrecognized event type")
	}
	if FLAGS_step < 1 {
		log.Fatal().Msg("step must be >= 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var out sink.EventSink
	switch FLAGS_sink {
	case "stdout":
		out = sink.NewWriterSink(os.Stdout, ntypes.EventJSONSerde{}, 256)
	case "redis":
		out, err = sink.NewRedisStreamSink(FLAGS_stream, ntypes.EventJSONSerde{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis sink")
		}
	case "minio":
		out, err = sink.NewMinioSink(ctx, FLAGS_stream, "events", ntypes.EventJSONSerde{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create minio sink")
		}
	default:
		log.Fatal().Str("sink", FLAGS_sink).Msg("unrecognized sink")
	}
	emitted := uint64(0)
	for FLAGS_number == 0 || emitted < FLAGS_number {
		var nextEvent *generator.NextEvent
		if FLAGS_no_wait {
			nextEvent, err = eventGenerator.NextEvent(ctx)
		} else {
			nextEvent, err = eventGenerator.NextEventPaced(ctx)
		}
		if err != nil {
			if errors.Is(err, generator.ErrExhausted) || errors.Is(err, context.Canceled) {
				break
			}
			log.Fatal().Err(err).Msg("event generation failed")
		}
		eventGenerator.EventsCountSoFar += FLAGS_step - 1
		if filtered && nextEvent.Event.Etype != want {
			continue
		}
		switch FLAGS_format {
		case "json":
			if err := out.Produce(ctx, nextEvent.Event); err != nil {
				log.Fatal().Err(err).Msg("write failed")
			}
		case "debug":
			fmt.Println(nextEvent.Event.String())
		default:
			log.Fatal().Str("format", FLAGS_format).Msg("unrecognized output format")
		}
		emitted++
	}
	if err := out.Close(); err != nil {
		log.Fatal().Err(err).Msg("flush failed")
	}
}

// applyConfigFile overrides cfg with the values present in a JSON document;
// absent keys keep their defaults.
func applyConfigFile(cfg *nexmark.NexMarkConfig, path string) error {
	parsed, err := gabs.ParseJSONFile(path)
	if err != nil {
		return err
	}
	setU64 := func(key string, dst *uint64) {
		if v, ok := parsed.Path(key).Data().(float64); ok {
			*dst = uint64(v)
		}
	}
	setU32 := func(key string, dst *uint32) {
		if v, ok := parsed.Path(key).Data().(float64); ok {
			*dst = uint32(v)
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := parsed.Path(key).Data().(bool); ok {
			*dst = v
		}
	}
	setU64("numEvents", &cfg.NumEvents)
	setU32("numEventGenerators", &cfg.NumEventGenerators)
	setU64("firstEventRate", &cfg.FirstEventRate)
	setU64("nextEventRate", &cfg.NextEventRate)
	setU32("ratePeriodSec", &cfg.RatePeriodSec)
	setU32("personProportion", &cfg.PersonProportion)
	setU32("auctionProportion", &cfg.AuctionProportion)
	setU32("bidProportion", &cfg.BidProportion)
	setU32("avgPersonByteSize", &cfg.AvgPersonByteSize)
	setU32("avgAuctionByteSize", &cfg.AvgAuctionByteSize)
	setU32("avgBidByteSize", &cfg.AvgBidByteSize)
	setU32("hotAuctionRatio", &cfg.HotAuctionRatio)
	setU32("hotSellersRatio", &cfg.HotSellersRatio)
	setU32("hotBiddersRatio", &cfg.HotBiddersRatio)
	setU32("numInFlightAuctions", &cfg.NumInFlightAuctions)
	setU32("numActivePeople", &cfg.NumActivePeople)
	setU64("outOfOrderGroupSize", &cfg.OutOfOrderGroupSize)
	setBool("isRateLimited", &cfg.IsRateLimited)
	setBool("useWallclockEventTime", &cfg.UseWallclockEventTime)
	if v, ok := parsed.Path("rateShape").Data().(string); ok {
		switch v {
		case "square":
			cfg.RateShape = utils.SQUARE
		case "sine":
			cfg.RateShape = utils.SINE
		}
	}
	return nil
}
