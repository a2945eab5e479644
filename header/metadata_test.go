package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecordLineBasic(t *testing.T) {
	m, err := parseRecordLine("100 2 250 650000", 1)
	require.NoError(t, err)
	require.Equal(t, "100", m.Name)
	require.Nil(t, m.NumSegments)
	require.Equal(t, 2, m.NumSignals)
	require.Equal(t, 250.0, m.SamplingFrequency)
	require.NotNil(t, m.NumSamples)
	require.Equal(t, int64(650000), *m.NumSamples)
}

func TestParseRecordLineDefaultFrequency(t *testing.T) {
	m, err := parseRecordLine("100 2", 1)
	require.NoError(t, err)
	require.Equal(t, float64(defaultSamplingFrequency), m.SamplingFrequency)
}

func TestParseRecordLineMultiSegment(t *testing.T) {
	m, err := parseRecordLine("multi/3 2", 1)
	require.NoError(t, err)
	require.True(t, m.IsMultiSegment())
	require.Equal(t, 3, *m.NumSegments)
}

func TestParseRecordLineZeroSegmentsRejected(t *testing.T) {
	_, err := parseRecordLine("rec/0 2", 1)
	require.Error(t, err)
}

func TestParseRecordLineZeroSignalsRejected(t *testing.T) {
	_, err := parseRecordLine("rec 0", 1)
	require.Error(t, err)
}

func TestParseRecordLineNegativeFrequencyRejected(t *testing.T) {
	_, err := parseRecordLine("rec 2 -100", 1)
	require.Error(t, err)
}

func TestParseRecordLineWithCounterFrequency(t *testing.T) {
	m, err := parseRecordLine("rec 2 360/2(0)", 1)
	require.NoError(t, err)
	require.Equal(t, 360.0, m.SamplingFrequency)
	require.NotNil(t, m.CounterFrequency)
	require.Equal(t, 2.0, *m.CounterFrequency)
	require.NotNil(t, m.BaseCounter)
	require.Equal(t, 0.0, *m.BaseCounter)
}

func TestParseRecordLineNonPositiveCounterFrequencyAbsent(t *testing.T) {
	m, err := parseRecordLine("rec 2 360/0", 1)
	require.NoError(t, err)
	require.Nil(t, m.CounterFrequency)
}

func TestParseRecordLineBaseTimeAndDate(t *testing.T) {
	m, err := parseRecordLine("rec 2 250 10000 13:30:00 12/05/2001", 1)
	require.NoError(t, err)
	require.NotNil(t, m.BaseTime)
	require.Equal(t, ClockTime{13, 30, 0}, *m.BaseTime)
	require.NotNil(t, m.BaseDate)
	require.Equal(t, CalendarDate{12, 5, 2001}, *m.BaseDate)
}

func TestParseRecordLineNumberAfterDateRejected(t *testing.T) {
	_, err := parseRecordLine("rec 2 250 10000 13:30:00 12/05/2001 99", 1)
	require.Error(t, err)
}

func TestParseRecordLineDuplicateFrequencyRejected(t *testing.T) {
	_, err := parseRecordLine("rec 2 250 360/2", 1)
	require.Error(t, err)
}

func TestParseRecordLineInvalidNameRejected(t *testing.T) {
	_, err := parseRecordLine("na@me 2", 1)
	require.Error(t, err)
}

func TestParseRecordLineTooFewTokensRejected(t *testing.T) {
	_, err := parseRecordLine("rec", 1)
	require.Error(t, err)
}
