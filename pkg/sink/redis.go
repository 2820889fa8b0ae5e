package sink

import (
	"context"
	"os"
	"strings"

	"nexmark-bench/pkg/hashfuncs"
	"nexmark-bench/pkg/nexmark/ntypes"

	"github.com/go-redis/redis/v9"
	"golang.org/x/xerrors"
)

// RedisStreamSink appends events to a Redis stream, spread over the clients
// listed in REDIS_ADDR by entity id.
type RedisStreamSink struct {
	clients []*redis.Client
	serde   ntypes.EventSerde
	hasher  hashfuncs.ByteSliceHasher
	stream  string
}

func getRedisAddr() []string {
	raw_addr := os.Getenv("REDIS_ADDR")
	return strings.Split(raw_addr, ",")
}

func NewRedisStreamSink(stream string, serde ntypes.EventSerde) (*RedisStreamSink, error) {
	addr_arr := getRedisAddr()
	if len(addr_arr) == 1 && addr_arr[0] == "" {
		return nil, xerrors.New("REDIS_ADDR is not set")
	}
	rdb_arr := make([]*redis.Client, len(addr_arr))
	for i := 0; i < len(addr_arr); i++ {
		rdb_arr[i] = redis.NewClient(&redis.Options{
			Addr:     addr_arr[i],
			Password: "", // no password set
			DB:       0,  // use default DB
		})
	}
	return &RedisStreamSink{
		clients: rdb_arr,
		serde:   serde,
		stream:  stream,
	}, nil
}

func (s *RedisStreamSink) Produce(ctx context.Context, event *ntypes.Event) error {
	payload, err := s.serde.Encode(event)
	if err != nil {
		return err
	}
	key := eventKey(event)
	client := s.clients[s.hasher.HashSum64(key)%uint64(len(s.clients))]
	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{"event": payload},
	}).Err()
}

func (s *RedisStreamSink) Flush(ctx context.Context) error {
	return nil
}

func (s *RedisStreamSink) Close() error {
	for _, client := range s.clients {
		if err := client.Close(); err != nil {
			return err
		}
	}
	return nil
}
