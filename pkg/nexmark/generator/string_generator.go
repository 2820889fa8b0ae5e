package generator

import (
	"strings"
)

const (
	MIN_STRING_LENGTH uint32 = 3
	letterBytes              = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	letterIdxBits            = 6                    // 6 bits to represent a letter index
	letterIdxMask            = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax             = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func NextExactString(seed uint64, tag FieldId, length uint32) string {
	var b strings.Builder
	b.Grow(int(length))
	block := uint32(1)
	for i, cache, remain := int(length), fieldBlock(seed, tag, block), letterIdxMax; i > 0; {
		if remain == 0 {
			block++
			cache, remain = fieldBlock(seed, tag, block), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b.WriteByte(letterBytes[idx])
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return b.String()
}

func NextString(seed uint64, tag FieldId, maxLength uint32) string {
	length := MIN_STRING_LENGTH + uint32(fieldBlock(seed, tag, 0)%uint64(maxLength-MIN_STRING_LENGTH))
	return NextExactString(seed, tag, length)
}

// NextExtra pads an entity so its total size lands within +-20% of the
// configured average.
func NextExtra(seed uint64, tag FieldId, currentSize, desiredAverageSize uint32) string {
	if currentSize > desiredAverageSize {
		return ""
	}
	desiredAverageSize -= currentSize
	delta := uint32(float32(desiredAverageSize) * 0.2)
	minSize := desiredAverageSize - delta
	additional := uint64(0)
	if delta != 0 {
		additional = fieldBlock(seed, tag, 0) % uint64(2*delta)
	}
	desiredSize := minSize + uint32(additional)
	return NextExactString(seed, tag, desiredSize)
}
