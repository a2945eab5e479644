package header

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfdb-go/wfdb/core"
)

func TestParseFormatFieldPlain(t *testing.T) {
	format, spf, skew, offset, err := parseFormatField("212", 1)
	require.NoError(t, err)
	require.Equal(t, core.Format212, format)
	require.Equal(t, 1, spf)
	require.Equal(t, 0, skew)
	require.Equal(t, int64(0), offset)
}

func TestParseFormatFieldFull(t *testing.T) {
	format, spf, skew, offset, err := parseFormatField("16x2:3+1024", 1)
	require.NoError(t, err)
	require.Equal(t, core.Format16, format)
	require.Equal(t, 2, spf)
	require.Equal(t, 3, skew)
	require.Equal(t, int64(1024), offset)
}

func TestParseFormatFieldUnrecognizedCode(t *testing.T) {
	_, _, _, _, err := parseFormatField("999", 1)
	require.Error(t, err)
}

func TestParseFormatFieldTrailingGarbage(t *testing.T) {
	_, _, _, _, err := parseFormatField("212z", 1)
	require.Error(t, err)
}

func TestParseSignalSpecLineFull(t *testing.T) {
	spec, err := parseSignalSpecLine("100.dat 212 200(0)/mV 11 0 995 -22 0 ECG lead II", 1)
	require.NoError(t, err)
	require.Equal(t, "100.dat", spec.FileName)
	require.Equal(t, core.Format212, spec.Format)
	require.Equal(t, 200.0, spec.GainOrDefault())
	require.Equal(t, int32(0), spec.BaselineOrDefault())
	require.Equal(t, "mV", spec.UnitsOrDefault())
	require.Equal(t, 11, spec.ResolutionOrDefault())
	require.Equal(t, int32(0), spec.ZeroOrDefault())
	require.Equal(t, int32(995), spec.InitialOrDefault())
	require.NotNil(t, spec.Checksum)
	require.Equal(t, int16(-22), *spec.Checksum)
	require.Equal(t, int32(0), spec.BlockSizeOrDefault())
	require.Equal(t, "ECG lead II", spec.Description)
}

func TestParseSignalSpecLineMinimal(t *testing.T) {
	spec, err := parseSignalSpecLine("100.dat 16", 1)
	require.NoError(t, err)
	require.Equal(t, 200.0, spec.GainOrDefault())
	require.Equal(t, "mV", spec.UnitsOrDefault())
	require.Equal(t, core.Format16.DefaultADCResolution(), spec.ResolutionOrDefault())
	require.Empty(t, spec.Description)
}

func TestParseSignalSpecLineGainOnly(t *testing.T) {
	spec, err := parseSignalSpecLine("100.dat 16 200", 1)
	require.NoError(t, err)
	require.Equal(t, 200.0, spec.GainOrDefault())
	require.Nil(t, spec.Resolution)
}

func TestParseSignalSpecLineDescriptionStartsEarly(t *testing.T) {
	spec, err := parseSignalSpecLine("100.dat 16 200(0)/mV II lead, modified", 1)
	require.NoError(t, err)
	require.Equal(t, "II lead, modified", spec.Description)
	require.Nil(t, spec.Resolution)
}

func TestParseSignalSpecLineBlockSizeShortcut(t *testing.T) {
	spec, err := parseSignalSpecLine("100.dat 16 0 a description here", 1)
	require.NoError(t, err)
	require.NotNil(t, spec.BlockSize)
	require.Equal(t, int32(0), *spec.BlockSize)
	require.Equal(t, "a description here", spec.Description)
}

func TestParseSignalSpecLineMissingFileOrFormat(t *testing.T) {
	_, err := parseSignalSpecLine("100.dat", 1)
	require.Error(t, err)
}

func TestParseGainFieldVariants(t *testing.T) {
	gain, baseline, units, err := parseGainField("200(10)/mV", 1)
	require.NoError(t, err)
	require.Equal(t, 200.0, gain)
	require.NotNil(t, baseline)
	require.Equal(t, int32(10), *baseline)
	require.NotNil(t, units)
	require.Equal(t, "mV", *units)

	gain, baseline, units, err = parseGainField("200/mV", 1)
	require.NoError(t, err)
	require.Equal(t, 200.0, gain)
	require.Nil(t, baseline)
	require.Equal(t, "mV", *units)

	gain, baseline, units, err = parseGainField("200(10)", 1)
	require.NoError(t, err)
	require.Equal(t, 200.0, gain)
	require.NotNil(t, baseline)
	require.Nil(t, units)
}

func TestSignalSpecToPhysicalAndBack(t *testing.T) {
	gain := 200.0
	baseline := int32(10)
	spec := SignalSpec{Gain: &gain, Baseline: &baseline}

	phys := spec.ToPhysical(410)
	require.InDelta(t, 2.0, phys, 1e-9)
	require.Equal(t, core.Sample(410), spec.ToADC(phys))
}

func TestSignalSpecToPhysicalPassesThroughInvalidSample(t *testing.T) {
	spec := SignalSpec{}
	phys := spec.ToPhysical(core.InvalidSample)
	require.Equal(t, (float64(core.InvalidSample)-0)/defaultGain, phys)
}
