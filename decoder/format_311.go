package decoder

import (
	"encoding/binary"
	"io"

	"github.com/wfdb-go/wfdb/core"
)

// format311Decoder implements format 311: three 10-bit samples packed into
// one little-endian 32-bit word w, at bit offsets 0, 10, and 20, each
// sign-extended to 10 bits.
type format311Decoder struct {
	state tripleState
	w     uint32
}

var (
	_ Decoder = (*format311Decoder)(nil)
	_ Framed  = (*format311Decoder)(nil)
)

func newFormat311Decoder() *format311Decoder {
	return &format311Decoder{state: emit0}
}

func (d *format311Decoder) DecodeInto(r io.Reader, out []core.Sample) (int, error) {
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

			d.w = binary.LittleEndian.Uint32(buf[:])

			s0 := d.w & 0x3FF
			out[count] = core.Sample(core.SignExtend(s0, 10))
			count++
			d.state = emit1

			continue
		}

		if d.state == emit1 {
			s1 := (d.w >> 10) & 0x3FF
			out[count] = core.Sample(core.SignExtend(s1, 10))
			count++
			d.state = emit2

			continue
		}

		// emit2
		s2 := (d.w >> 20) & 0x3FF
		out[count] = core.Sample(core.SignExtend(s2, 10))
		count++
		d.state = emit0
	}

	return count, nil
}

func (d *format311Decoder) Reset() {
	d.state = emit0
	d.w = 0
}

func (d *format311Decoder) BytesPerFrame(numSignals int) int {
	return ((numSignals + 2) / 3) * 4
}
