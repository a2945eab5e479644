package decoder

import (
	"io"

	"github.com/wfdb-go/wfdb/core"
)

// nullDecoder implements format 0: no bytes are ever consumed and every
// decoded position is the invalid sentinel.
type nullDecoder struct{}

var (
	_ Decoder    = (*nullDecoder)(nil)
	_ FixedWidth = (*nullDecoder)(nil)
	_ Framed     = (*nullDecoder)(nil)
)

func newNullDecoder() *nullDecoder { return &nullDecoder{} }

func (d *nullDecoder) DecodeInto(_ io.Reader, out []core.Sample) (int, error) {
	for i := range out {
		out[i] = core.InvalidSample
	}

	return len(out), nil
}

func (d *nullDecoder) Reset() {}

func (d *nullDecoder) BytesPerSample() int { return 0 }

func (d *nullDecoder) BytesPerFrame(numSignals int) int { return 0 }
