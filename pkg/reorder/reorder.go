// Package reorder restores timestamp order of event streams generated with
// out-of-order groups. Events are buffered until the stream's watermark
// passes their timestamp, then released oldest first.
package reorder

import (
	"nexmark-bench/pkg/utils/syncutils"

	"github.com/google/btree"
)

type entry[T any] struct {
	ts  int64
	seq uint64
	v   T
}

type Buffer[T any] struct {
	mu   syncutils.Mutex
	tree *btree.BTreeG[entry[T]]
	seq  uint64
}

func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{
		tree: btree.NewG(2, btree.LessFunc[entry[T]](func(a, b entry[T]) bool {
			if a.ts != b.ts {
				return a.ts < b.ts
			}
			return a.seq < b.seq
		})),
	}
}

func (b *Buffer[T]) Push(timestamp int64, v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.tree.ReplaceOrInsert(entry[T]{ts: timestamp, seq: b.seq, v: v})
}

// PopReady releases, in timestamp order, everything at or before watermark.
func (b *Buffer[T]) PopReady(watermark int64) []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []T
	for {
		e, ok := b.tree.Min()
		if !ok || e.ts > watermark {
			return out
		}
		b.tree.DeleteMin()
		out = append(out, e.v)
	}
}

// Drain releases everything still buffered, in timestamp order.
func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, 0, b.tree.Len())
	for {
		e, ok := b.tree.DeleteMin()
		if !ok {
			return out
		}
		out = append(out, e.v)
	}
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tree.Len()
}
