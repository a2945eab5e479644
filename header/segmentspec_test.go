package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSegmentSpecLineNormal(t *testing.T) {
	s, err := parseSegmentSpecLine("100s 5000", 1)
	require.NoError(t, err)
	require.Equal(t, "100s", s.RecordName)
	require.Equal(t, int64(5000), s.NumSamples)
	require.False(t, s.IsNull())
	require.False(t, s.IsLayout())
}

func TestParseSegmentSpecLineNull(t *testing.T) {
	s, err := parseSegmentSpecLine("~ 1200", 1)
	require.NoError(t, err)
	require.True(t, s.IsNull())
}

func TestParseSegmentSpecLineLayout(t *testing.T) {
	s, err := parseSegmentSpecLine("layout 0", 1)
	require.NoError(t, err)
	require.True(t, s.IsLayout())
}

func TestParseSegmentSpecLineNegativeSamplesRejected(t *testing.T) {
	_, err := parseSegmentSpecLine("100s -5", 1)
	require.Error(t, err)
}

func TestParseSegmentSpecLineWrongTokenCount(t *testing.T) {
	_, err := parseSegmentSpecLine("100s", 1)
	require.Error(t, err)
}
