package decoder

import (
	"io"

	"github.com/wfdb-go/wfdb/core"
)

// diffDecoder implements format 8: each byte is a signed 8-bit first
// difference, accumulated from an initial value with saturating add. It has
// no invalid marker and no fixed bytes-per-frame: the running accumulator
// makes interleaved random access unsupported by seeking alone.
type diffDecoder struct {
	initial     int32
	accumulator int32
}

var (
	_ Decoder    = (*diffDecoder)(nil)
	_ FixedWidth = (*diffDecoder)(nil)
)

func newDiffDecoder(initial core.Sample) *diffDecoder {
	return &diffDecoder{initial: int32(initial), accumulator: int32(initial)}
}

func (d *diffDecoder) DecodeInto(r io.Reader, out []core.Sample) (int, error) {
	var buf [1]byte

	count := 0
	for count < len(out) {
		ok, err := readExact(r, buf[:])
		if err != nil {
			return count, err
		}
		if !ok {
			d.Reset()
			return count, nil
		}

		diff := int32(int8(buf[0]))
		d.accumulator = saturatingAdd(d.accumulator, diff)
		out[count] = core.Sample(d.accumulator)
		count++
	}

	return count, nil
}

func (d *diffDecoder) Reset() {
	d.accumulator = d.initial
}

func (d *diffDecoder) BytesPerSample() int { return 1 }
