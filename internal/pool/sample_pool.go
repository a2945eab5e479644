// Package pool provides sync.Pool-backed scratch buffers for the hot decode
// loop: one frame's worth of raw bytes and one frame's worth of decoded
// samples, reused across reads instead of allocated per call.
package pool

import (
	"sync"

	"github.com/wfdb-go/wfdb/core"
)

var (
	byteSlicePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
	sampleSlicePool = sync.Pool{
		New: func() any { return &[]core.Sample{} },
	}
)

// GetByteSlice retrieves and resizes a []byte scratch buffer from the pool.
//
// The returned slice has length exactly size. If the pooled slice has
// insufficient capacity, a new slice is allocated. The caller must call the
// returned cleanup function (typically via defer) to return the slice.
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { byteSlicePool.Put(ptr) }
}

// GetSampleSlice retrieves and resizes a []core.Sample scratch buffer from
// the pool, used to hold one decoded frame (one sample per interleaved
// signal) before the caller extracts or redistributes individual slots.
func GetSampleSlice(size int) ([]core.Sample, func()) {
	ptr, _ := sampleSlicePool.Get().(*[]core.Sample)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]core.Sample, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { sampleSlicePool.Put(ptr) }
}
