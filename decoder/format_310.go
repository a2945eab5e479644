package decoder

import (
	"encoding/binary"
	"io"

	"github.com/wfdb-go/wfdb/core"
)

type tripleState int

const (
	emit0 tripleState = iota
	emit1
	emit2
)

// format310Decoder implements format 310: three 10-bit samples packed into
// a 4-byte group of two little-endian 16-bit words w0, w1.
//
//	s0 = signExtend10((w0 >> 1) & 0x3FF)
//	s1 = signExtend10((w1 >> 1) & 0x3FF)
//	s2 = signExtend10(((w0 >> 11) & 0x1F) | (((w1 >> 11) & 0x1F) << 5))
type format310Decoder struct {
	state  tripleState
	w0, w1 uint16
}

var (
	_ Decoder = (*format310Decoder)(nil)
	_ Framed  = (*format310Decoder)(nil)
)

func newFormat310Decoder() *format310Decoder {
	return &format310Decoder{state: emit0}
}

func (d *format310Decoder) DecodeInto(r io.Reader, out []core.Sample) (int, error) {
	count := 0
	for count < len(out) {
		if d.state == emit0 {
			var buf [4]byte
			ok, err := readExact(r, buf[:])
			if err != nil {
				return count, err
			}
			if !ok {
				d.Reset()
				return count, nil
			}

			d.w0 = binary.LittleEndian.Uint16(buf[0:2])
			d.w1 = binary.LittleEndian.Uint16(buf[2:4])

			s0 := uint32(d.w0>>1) & 0x3FF
			out[count] = core.Sample(core.SignExtend(s0, 10))
			count++
			d.state = emit1

			continue
		}

		if d.state == emit1 {
			s1 := uint32(d.w1>>1) & 0x3FF
			out[count] = core.Sample(core.SignExtend(s1, 10))
			count++
			d.state = emit2

			continue
		}

		// emit2
		s2 := (uint32(d.w0>>11) & 0x1F) | ((uint32(d.w1>>11) & 0x1F) << 5)
		out[count] = core.Sample(core.SignExtend(s2, 10))
		count++
		d.state = emit0
	}

	return count, nil
}

func (d *format310Decoder) Reset() {
	d.state = emit0
	d.w0, d.w1 = 0, 0
}

func (d *format310Decoder) BytesPerFrame(numSignals int) int {
	return ((numSignals + 2) / 3) * 4
}
