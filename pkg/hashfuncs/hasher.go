package hashfuncs

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

type HashSum64[K any] interface {
	HashSum64(k K) uint64
}

type ByteSliceHasher struct{}

func (sh ByteSliceHasher) HashSum64(k []byte) uint64 {
	return xxhash.Sum64(k)
}

// Murmur3ByteSliceHasher spreads entity ids over output partitions; murmur3
// keeps partition assignment stable across runs and processes.
type Murmur3ByteSliceHasher struct{}

func (sh Murmur3ByteSliceHasher) HashSum64(k []byte) uint64 {
	return murmur3.Sum64(k)
}
