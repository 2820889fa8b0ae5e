package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"nexmark-bench/pkg/nexmark"
	"nexmark-bench/pkg/nexmark/generator"
	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/sink"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	FLAGS_events_num    uint64
	FLAGS_duration      int
	FLAGS_broker        string
	FLAGS_stream_prefix string
	FLAGS_serdeFormat   string
	FLAGS_numPartition  int
	FLAGS_tps           uint64
	FLAGS_paced         bool
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
	flag.Uint64Var(&FLAGS_events_num, "events_num", 100000000, "total number of events to feed")
	flag.IntVar(&FLAGS_duration, "duration", 60, "time budget in seconds; 0 means unbounded")
	flag.StringVar(&FLAGS_broker, "broker", "127.0.0.1", "")
	flag.StringVar(&FLAGS_stream_prefix, "stream_prefix", "nexmark", "")
	flag.StringVar(&FLAGS_serdeFormat, "serde", "json", "serde format: json or msgp")
	flag.IntVar(&FLAGS_numPartition, "npar", 1, "number of partition")
	flag.Uint64Var(&FLAGS_tps, "tps", 10000000, "target events per second")
	flag.BoolVar(&FLAGS_paced, "paced", false, "emit events on their wallclock due time")
	flag.Parse()

	fmt.Fprintf(os.Stderr, "duration: %d, events_num: %d, serde: %s, nPar: %d\n",
		FLAGS_duration, FLAGS_events_num, FLAGS_serdeFormat, FLAGS_numPartition)

	var serde ntypes.EventSerde
	if FLAGS_serdeFormat == "json" {
		serde = ntypes.EventJSONSerde{}
	} else if FLAGS_serdeFormat == "msgp" {
		serde = ntypes.EventMsgpSerde{}
	} else {
		log.Error().Msgf("serde format is not recognized; default back to JSON")
		serde = ntypes.EventJSONSerde{}
	}

	topic := FLAGS_stream_prefix + "_src"
	ctx := context.Background()
	if FLAGS_duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(FLAGS_duration)*time.Second)
		defer cancel()
	}
	if err := sink.CreateTopic(ctx, FLAGS_broker, topic, FLAGS_numPartition); err != nil {
		log.Fatal().Err(err).Msg("failed to create topic")
	}

	cfg := nexmark.NewNexMarkConfig()
	cfg.NumEvents = FLAGS_events_num
	cfg.FirstEventRate = FLAGS_tps
	cfg.NextEventRate = FLAGS_tps
	cfg.IsRateLimited = FLAGS_paced
	generatorConfig, err := generator.NewGeneratorConfig(cfg, uint64(time.Now().UnixMilli()), 0, cfg.NumEvents, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid benchmark config")
	}
	eventGenerator := generator.NewSimpleNexmarkGenerator(generatorConfig)

	kafkaSink, err := sink.NewKafkaSink(FLAGS_broker, topic, int32(FLAGS_numPartition), serde)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create kafka sink")
	}
	defer kafkaSink.Close()

	start := time.Now()
	produced := uint64(0)
	for eventGenerator.HasNext() {
		var nextEvent *generator.NextEvent
		if FLAGS_paced {
			nextEvent, err = eventGenerator.NextEventPaced(ctx)
		} else {
			nextEvent, err = eventGenerator.NextEvent(ctx)
		}
		if err != nil {
			if errors.Is(err, generator.ErrExhausted) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			log.Fatal().Err(err).Msg("event generation failed")
		}
		if err := kafkaSink.Produce(ctx, nextEvent.Event); err != nil {
			log.Fatal().Err(err).Msg("produce failed")
		}
		produced++
	}
	if err := kafkaSink.Flush(context.Background()); err != nil {
		log.Error().Err(err).Msg("flush incomplete")
	}
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "produced %d events in %v (%.0f events/s)\n",
		produced, elapsed, float64(produced)/elapsed.Seconds())
}
