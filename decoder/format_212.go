package decoder

import (
	"io"

	"github.com/wfdb-go/wfdb/core"
)

// format212State tracks which half of a packed 3-byte/2-sample group the
// decoder is about to emit.
type format212State int

const (
	expectPair0 format212State = iota
	expectPair1
)

// format212Decoder implements format 212: two 12-bit samples packed into 3
// bytes. byte0 = low 8 bits of s0; byte1 = high nibble of s1 (bits 4-7) |
// high nibble of s0 (bits 0-3); byte2 = low 8 bits of s1.
type format212Decoder struct {
	state  format212State
	s1High byte // buffered high nibble of s1, valid only in expectPair1
}

var (
	_ Decoder = (*format212Decoder)(nil)
	_ Framed  = (*format212Decoder)(nil)
)

func newFormat212Decoder() *format212Decoder {
	return &format212Decoder{state: expectPair0}
}

func (d *format212Decoder) DecodeInto(r io.Reader, out []core.Sample) (int, error) {
	count := 0
	for count < len(out) {
		switch d.state {
		case expectPair0:
			var buf [2]byte
			ok, err := readExact(r, buf[:])
			if err != nil {
				return count, err
			}
			if !ok {
				d.Reset()
				return count, nil
			}

			byte0, byte1 := buf[0], buf[1]
			s0 := uint32(byte0) | uint32(byte1&0x0F)<<8
			out[count] = core.Sample(core.SignExtend(s0, 12))
			count++

			d.s1High = byte1 >> 4
			d.state = expectPair1

		case expectPair1:
			var buf [1]byte
			ok, err := readExact(r, buf[:])
			if err != nil {
				return count, err
			}
			if !ok {
				d.Reset()
				return count, nil
			}

			s1 := uint32(buf[0]) | uint32(d.s1High)<<8
			out[count] = core.Sample(core.SignExtend(s1, 12))
			count++

			d.state = expectPair0
		}
	}

	return count, nil
}

func (d *format212Decoder) Reset() {
	d.state = expectPair0
	d.s1High = 0
}

func (d *format212Decoder) BytesPerFrame(numSignals int) int {
	return ((numSignals + 1) / 2) * 3
}
