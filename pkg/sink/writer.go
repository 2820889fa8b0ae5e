package sink

import (
	"context"
	"io"

	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/utils/syncutils"

	"github.com/gammazero/deque"
	"golang.org/x/xerrors"
)

// WriterSink renders one event per line to w, buffering encoded payloads so
// a slow writer does not stall generation between flushes.
type WriterSink struct {
	mu        syncutils.Mutex
	w         io.Writer
	serde     ntypes.EventSerde
	batch     *deque.Deque[[]byte]
	batchSize int
	closed    syncutils.AtomicBool
}

func NewWriterSink(w io.Writer, serde ntypes.EventSerde, batchSize int) *WriterSink {
	if batchSize < 1 {
		batchSize = 1
	}
	return &WriterSink{
		w:         w,
		serde:     serde,
		batch:     deque.New[[]byte](batchSize),
		batchSize: batchSize,
	}
}

func (s *WriterSink) Produce(ctx context.Context, event *ntypes.Event) error {
	if s.closed.Get() {
		return xerrors.New("produce on closed sink")
	}
	payload, err := s.serde.Encode(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch.PushBack(payload)
	if s.batch.Len() >= s.batchSize {
		return s.flushLocked()
	}
	return nil
}

func (s *WriterSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *WriterSink) flushLocked() error {
	for s.batch.Len() > 0 {
		payload := s.batch.PopFront()
		if _, err := s.w.Write(payload); err != nil {
			return err
		}
		if _, err := s.w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

func (s *WriterSink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}
