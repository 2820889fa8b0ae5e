package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/utils/syncutils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/xerrors"
)

const (
	accessKey       = "Q3AM3UQ867SPQQA43P2F"
	secretAccessKey = "zuf+tfteSlswRu7BJ86wekitnifILbZam1KYY3TG"

	// Objects are rolled once the buffered part grows past this.
	defaultPartBytes = 64 << 20
)

// MinioSink accumulates events as JSON lines and uploads them as numbered
// objects, for bulk dataset generation.
type MinioSink struct {
	mu        syncutils.Mutex
	client    *minio.Client
	serde     ntypes.EventSerde
	bucket    string
	prefix    string
	buf       bytes.Buffer
	partBytes int
	part      int
}

func NewMinioSink(ctx context.Context, bucket string, prefix string, serde ntypes.EventSerde) (*MinioSink, error) {
	addr := os.Getenv("MINIO_ADDR")
	if addr == "" {
		return nil, xerrors.New("MINIO_ADDR is not set")
	}
	mc, err := minio.New(addr, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, xerrors.Errorf("create minio client: %w", err)
	}
	exists, err := mc.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioSink{
		client:    mc,
		serde:     serde,
		bucket:    bucket,
		prefix:    prefix,
		partBytes: defaultPartBytes,
	}, nil
}

func (s *MinioSink) Produce(ctx context.Context, event *ntypes.Event) error {
	payload, err := s.serde.Encode(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(payload)
	s.buf.WriteByte('\n')
	if s.buf.Len() >= s.partBytes {
		return s.uploadLocked(ctx)
	}
	return nil
}

func (s *MinioSink) uploadLocked(ctx context.Context) error {
	if s.buf.Len() == 0 {
		return nil
	}
	name := fmt.Sprintf("%s-%05d.jsonl", s.prefix, s.part)
	_, err := s.client.PutObject(ctx, s.bucket, name,
		bytes.NewReader(s.buf.Bytes()), int64(s.buf.Len()),
		minio.PutObjectOptions{ContentType: "application/x-ndjson"})
	if err != nil {
		return xerrors.Errorf("put object %s: %w", name, err)
	}
	s.part++
	s.buf.Reset()
	return nil
}

func (s *MinioSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadLocked(ctx)
}

func (s *MinioSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadLocked(context.Background())
}
