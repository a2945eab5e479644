package decoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfdb-go/wfdb/core"
)

func decodeAll(t *testing.T, d Decoder, data []byte, total int) []core.Sample {
	t.Helper()
	r := bytes.NewReader(data)
	out := make([]core.Sample, total)
	n, err := d.DecodeInto(r, out)
	require.NoError(t, err)
	return out[:n]
}

func TestFormat16InvalidSentinel(t *testing.T) {
	d, err := New(core.Format16, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x00, 0x80}, 1)
	require.Equal(t, []core.Sample{-32768}, got)
}

func TestFormat16BasicDecode(t *testing.T) {
	d, err := New(core.Format16, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x01, 0x00, 0xFF, 0xFF, 0x64, 0x00}, 3)
	require.Equal(t, []core.Sample{1, -1, 100}, got)
}

func TestFormat212BoundaryInvalid(t *testing.T) {
	d, err := New(core.Format212, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x00, 0x08, 0x00}, 2)
	require.Equal(t, []core.Sample{-2048, 0}, got)
}

func TestFormat8Accumulator(t *testing.T) {
	d, err := New(core.Format8, 100)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{10, 251, 3}, 3)
	require.Equal(t, []core.Sample{110, 105, 108}, got)
}

func TestFormat8SaturatingAdd(t *testing.T) {
	d, err := New(core.Format8, core.Sample(1<<31-1-5))
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{100}, 1)
	require.Equal(t, core.Sample(1<<31-1), got[0])
}

func TestFormat61BigEndian(t *testing.T) {
	d, err := New(core.Format61, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x00, 0x01}, 1)
	require.Equal(t, []core.Sample{1}, got)
}

func TestFormat24SignExtend(t *testing.T) {
	d, err := New(core.Format24, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0xFF, 0xFF, 0xFF}, 1)
	require.Equal(t, []core.Sample{-1}, got)
}

func TestFormat80OffsetBinary(t *testing.T) {
	d, err := New(core.Format80, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x00, 128, 255}, 3)
	require.Equal(t, []core.Sample{-128, 0, 127}, got)
}

func TestFormat160OffsetBinary(t *testing.T) {
	d, err := New(core.Format160, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x00, 0x00}, 1)
	require.Equal(t, []core.Sample{-32768}, got)
}

func TestFormat310RoundTrip(t *testing.T) {
	d, err := New(core.Format310, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x0A, 0x00, 0xF6, 0x07}, 3)
	require.Equal(t, []core.Sample{5, -5, 0}, got)
}

func TestFormat311RoundTrip(t *testing.T) {
	d, err := New(core.Format311, 0)
	require.NoError(t, err)

	got := decodeAll(t, d, []byte{0x03, 0xF4, 0x7F, 0x00}, 3)
	require.Equal(t, []core.Sample{3, -3, 7}, got)
}

func TestFormat0AlwaysInvalid(t *testing.T) {
	d, err := New(core.Format0, 0)
	require.NoError(t, err)

	out := make([]core.Sample, 4)
	n, err := d.DecodeInto(bytes.NewReader(nil), out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	for _, s := range out {
		require.Equal(t, core.InvalidSample, s)
	}
}

func TestShortReadDiscardsPartialBoundary(t *testing.T) {
	d, err := New(core.Format16, 0)
	require.NoError(t, err)

	out := make([]core.Sample, 3)
	// 2 complete samples (4 bytes) plus 1 trailing byte that can never complete.
	n, err := d.DecodeInto(bytes.NewReader([]byte{0x01, 0x00, 0x02, 0x00, 0xFF}), out)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestBytesPerFrameInvariants(t *testing.T) {
	cases := []struct {
		format core.FormatCode
		n      int
		want   int
	}{
		{core.Format16, 3, 6},
		{core.Format212, 1, 3},
		{core.Format212, 2, 3},
		{core.Format212, 3, 6},
		{core.Format310, 1, 4},
		{core.Format310, 3, 4},
		{core.Format310, 4, 8},
		{core.Format311, 2, 4},
	}

	for _, tc := range cases {
		d, err := New(tc.format, 0)
		require.NoError(t, err)
		framed, ok := d.(Framed)
		require.True(t, ok, "%v should implement Framed", tc.format)
		require.Equal(t, tc.want, framed.BytesPerFrame(tc.n))
	}
}

func TestResetProducesIdenticalOutput(t *testing.T) {
	data := []byte{10, 251, 3, 3, 3}

	d1, _ := New(core.Format8, 100)
	first := decodeAll(t, d1, data, len(data))

	d1.Reset()
	second := decodeAll(t, d1, data, len(data))

	require.Equal(t, first, second)

	d2, _ := New(core.Format8, 100)
	fresh := decodeAll(t, d2, data, len(data))
	require.Equal(t, fresh, second)
}

func TestNewRejectsUndecodableFormat(t *testing.T) {
	_, err := New(core.Format508, 0)
	require.Error(t, err)
}

func TestFixedWidthBytesPerSample(t *testing.T) {
	widths := map[core.FormatCode]int{
		core.Format16: 2, core.Format24: 3, core.Format32: 4,
		core.Format61: 2, core.Format80: 1, core.Format160: 2,
	}
	for format, want := range widths {
		d, err := New(format, 0)
		require.NoError(t, err)
		fw, ok := d.(FixedWidth)
		require.True(t, ok)
		require.Equal(t, want, fw.BytesPerSample())
	}
}
