// Package decoder implements the per-format signal decoders of this module:
// one decoder per WFDB wire encoding, each exposing the same narrow
// capability set so the signal, frame, and segment readers can treat every
// format uniformly.
package decoder

import (
	"io"
	"math"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/errs"
)

// Decoder is the contract every format decoder implements.
//
// DecodeInto decodes up to len(out) samples from r, writing them into out
// and returning the number actually written. A short return (count <
// len(out)) with a nil error means the stream ended cleanly at a
// frame/pair/triple boundary: any trailing partial boundary bytes were
// discarded and the decoder's internal state was reset. Any other read
// failure is returned as a non-nil error and count reflects samples
// successfully decoded before the failure.
//
// Reset clears packing state and any accumulator, as if the decoder were
// newly constructed.
type Decoder interface {
	DecodeInto(r io.Reader, out []core.Sample) (int, error)
	Reset()
}

// FixedWidth is implemented by decoders whose wire format has a constant
// per-sample byte cost, which random access needs to compute byte offsets.
type FixedWidth interface {
	BytesPerSample() int
}

// Framed is implemented by decoders that can report the byte cost of one
// interleaved frame of n signals, which random access over packed or
// variable-width formats needs instead of a constant per-sample cost.
type Framed interface {
	BytesPerFrame(numSignals int) int
}

// New constructs the decoder for format, seeded with initial (format 8's
// running accumulator start value; ignored by every other format).
func New(format core.FormatCode, initial core.Sample) (Decoder, error) {
	switch format {
	case core.Format0:
		return newNullDecoder(), nil
	case core.Format8:
		return newDiffDecoder(initial), nil
	case core.Format16:
		return newFixedWidthDecoder(format, 2, false), nil
	case core.Format24:
		return newFixedWidthDecoder(format, 3, false), nil
	case core.Format32:
		return newFixedWidthDecoder(format, 4, false), nil
	case core.Format61:
		return newFixedWidthDecoder(format, 2, true), nil
	case core.Format80:
		return newFixedWidthDecoder(format, 1, false), nil
	case core.Format160:
		return newFixedWidthDecoder(format, 2, false), nil
	case core.Format212:
		return newFormat212Decoder(), nil
	case core.Format310:
		return newFormat310Decoder(), nil
	case core.Format311:
		return newFormat311Decoder(), nil
	default:
		return nil, errs.UnsupportedFormat(int(format), "no decoder implemented for "+format.String())
	}
}

// readExact reads exactly len(buf) bytes from r.
//
// It returns ok=true when the buffer was filled completely. It returns
// ok=false, err=nil when the stream ended before any further frame/pair
// boundary could be completed (EOF or unexpected EOF) — the caller must
// discard whatever partial bytes were read and reset decoder state. Any
// other error is returned as err with ok=false.
func readExact(r io.Reader, buf []byte) (ok bool, err error) {
	_, err = io.ReadFull(r, buf)
	if err == nil {
		return true, nil
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return false, nil
	}

	return false, errs.IO("read signal data", err)
}

// saturatingAdd adds b to a, clamping to the int32 range instead of
// wrapping on overflow.
func saturatingAdd(a, b int32) int32 {
	sum := int64(a) + int64(b)
	switch {
	case sum > math.MaxInt32:
		return math.MaxInt32
	case sum < math.MinInt32:
		return math.MinInt32
	default:
		return int32(sum)
	}
}
