package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/header"
	"github.com/wfdb-go/wfdb/signal"
)

func TestReadFrameTwoChannelInterleaved(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x0A, 0x00, // frame0
		0x02, 0x00, 0x0B, 0x00, // frame1
	}

	r0, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format16}, 250, 2, 0)
	require.NoError(t, err)
	r1, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format16}, 250, 2, 1)
	require.NoError(t, err)

	fr := NewReader([]*signal.Reader{r0, r1}, 250, 2)

	f0, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []core.Sample{1, 10}, f0)

	f1, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []core.Sample{2, 11}, f1)

	f2, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Nil(t, f2)
}

func TestReadFramesPhysical(t *testing.T) {
	data := []byte{0x64, 0x00} // 100
	gain := 100.0
	r0, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format16, Gain: &gain}, 250, 1, 0)
	require.NoError(t, err)

	fr := NewReader([]*signal.Reader{r0}, 250, 1)
	rows, err := fr.ReadFramesPhysical(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 1.0, rows[0][0], 1e-9)
}

func TestReadFrameTruncatedRejected(t *testing.T) {
	// sig0 has 2 samples, sig1 has only 1 -- an incomplete final frame.
	data0 := []byte{0x01, 0x00, 0x02, 0x00}
	data1 := []byte{0x0A, 0x00}

	r0, err := signal.NewReader(bytes.NewReader(data0), header.SignalSpec{Format: core.Format16}, 250, 1, 0)
	require.NoError(t, err)
	r1, err := signal.NewReader(bytes.NewReader(data1), header.SignalSpec{Format: core.Format16}, 250, 1, 0)
	require.NoError(t, err)

	fr := NewReader([]*signal.Reader{r0, r1}, 250, 2)

	f0, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []core.Sample{1, 10}, f0)

	_, err = fr.ReadFrame()
	require.Error(t, err)
}

func TestSeekToFrame(t *testing.T) {
	data := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00}
	r0, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format16}, 250, 1, 0)
	require.NoError(t, err)

	fr := NewReader([]*signal.Reader{r0}, 250, 3)
	require.NoError(t, fr.SeekToFrame(2))

	f, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []core.Sample{3}, f)
}

func TestNewReaderFromHeaderGroupsByFile(t *testing.T) {
	text := "100 2 360\n" +
		"shared.dat 16 200 11 0 0 0 0 I\n" +
		"shared.dat 16 200 11 0 0 0 0 II\n"
	h, err := header.Parse(bytes.NewReader([]byte(text)))
	require.NoError(t, err)

	data := []byte{0x01, 0x00, 0x0A, 0x00}
	open := func(name string) (io.ReadSeeker, error) {
		require.Equal(t, "shared.dat", name)
		return bytes.NewReader(data), nil
	}

	fr, err := NewReaderFromHeader(h, open)
	require.NoError(t, err)
	require.Equal(t, 2, fr.NumSignals())

	f, err := fr.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []core.Sample{1, 10}, f)
}

func TestReaderCloseReturnsScratchBuffers(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x14}
	r0, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format212}, 250, 2, 0)
	require.NoError(t, err)
	r1, err := signal.NewReader(bytes.NewReader(data), header.SignalSpec{Format: core.Format212}, 250, 2, 1)
	require.NoError(t, err)

	fr := NewReader([]*signal.Reader{r0, r1}, 250, 1)
	require.NotPanics(t, fr.Close)
}
