package decoder

import (
	"io"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/endian"
)

// fixedWidthDecoder implements every stateless fixed-byte-width format:
// 16, 24, 32, 61, 80, 160. Each sample occupies a constant number of bytes
// and decoding one sample never depends on any other, so Reset is a no-op.
type fixedWidthDecoder struct {
	format core.FormatCode
	width  int
	engine endian.EndianEngine
}

var (
	_ Decoder    = (*fixedWidthDecoder)(nil)
	_ FixedWidth = (*fixedWidthDecoder)(nil)
	_ Framed     = (*fixedWidthDecoder)(nil)
)

func newFixedWidthDecoder(format core.FormatCode, width int, bigEndian bool) *fixedWidthDecoder {
	engine := endian.GetLittleEndianEngine()
	if bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	return &fixedWidthDecoder{format: format, width: width, engine: engine}
}

func (d *fixedWidthDecoder) DecodeInto(r io.Reader, out []core.Sample) (int, error) {
	var buf [4]byte

	count := 0
	for count < len(out) {
		ok, err := readExact(r, buf[:d.width])
		if err != nil {
			return count, err
		}
		if !ok {
			return count, nil
		}

		out[count] = d.decodeOne(buf[:d.width])
		count++
	}

	return count, nil
}

func (d *fixedWidthDecoder) decodeOne(b []byte) core.Sample {
	switch d.format {
	case core.Format16, core.Format61:
		return core.Sample(int16(d.engine.Uint16(b)))
	case core.Format24:
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		return core.Sample(core.SignExtend(v, 24))
	case core.Format32:
		return core.Sample(int32(d.engine.Uint32(b)))
	case core.Format80:
		return core.Sample(int32(b[0]) - 128)
	case core.Format160:
		return core.Sample(int32(d.engine.Uint16(b)) - 32768)
	default:
		// Unreachable: New() only constructs this type for the formats above.
		panic("decoder: fixedWidthDecoder used with unsupported format " + d.format.String())
	}
}

func (d *fixedWidthDecoder) Reset() {}

func (d *fixedWidthDecoder) BytesPerSample() int { return d.width }

func (d *fixedWidthDecoder) BytesPerFrame(numSignals int) int { return d.width * numSignals }
