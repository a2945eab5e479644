package header

import (
	"math"
	"strconv"
	"strings"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/errs"
)

// Default values applied by SignalSpec's accessors when a field was absent
// from the header line.
const (
	defaultGain            = 200.0
	defaultUnits           = "mV"
	defaultBaseline  int32 = 0
)

// SignalSpec is one signal-spec line of a header.
type SignalSpec struct {
	FileName        string
	Format          core.FormatCode
	SamplesPerFrame int // default 1
	Skew            int
	ByteOffset      int64

	Gain        *float64
	Baseline    *int32
	Units       *string
	Resolution  *int
	Zero        *int32
	Initial     *int32
	Checksum    *int16
	BlockSize   *int32
	Description string
}

// GainOrDefault returns the declared ADC gain, or 200 counts/unit if absent.
func (s SignalSpec) GainOrDefault() float64 {
	if s.Gain != nil {
		return *s.Gain
	}
	return defaultGain
}

// UnitsOrDefault returns the declared physical units, or "mV" if absent.
func (s SignalSpec) UnitsOrDefault() string {
	if s.Units != nil {
		return *s.Units
	}
	return defaultUnits
}

// ResolutionOrDefault returns the declared ADC resolution in bits, or the
// format's default resolution if absent.
func (s SignalSpec) ResolutionOrDefault() int {
	if s.Resolution != nil {
		return *s.Resolution
	}
	return s.Format.DefaultADCResolution()
}

// ZeroOrDefault returns the declared ADC zero level, or 0 if absent.
func (s SignalSpec) ZeroOrDefault() int32 {
	if s.Zero != nil {
		return *s.Zero
	}
	return 0
}

// BaselineOrDefault returns the declared baseline, falling back to the ADC
// zero level (which itself defaults to 0) when absent.
func (s SignalSpec) BaselineOrDefault() int32 {
	if s.Baseline != nil {
		return *s.Baseline
	}
	return s.ZeroOrDefault()
}

// InitialOrDefault returns the first sample's expected raw value, falling
// back to the ADC zero level when absent.
func (s SignalSpec) InitialOrDefault() int32 {
	if s.Initial != nil {
		return *s.Initial
	}
	return s.ZeroOrDefault()
}

// BlockSizeOrDefault returns the declared block size in bytes, or 0 if absent.
func (s SignalSpec) BlockSizeOrDefault() int32 {
	if s.BlockSize != nil {
		return *s.BlockSize
	}
	return 0
}

// ToPhysical converts a decoded raw sample to its physical value using
// this signal's gain and baseline. It applies the formula uniformly,
// including to core.InvalidSample: this module does not special-case the
// sentinel into NaN, matching the reference decoder's pass-through
// behavior so callers that need to detect it can still compare the raw
// sample first.
func (s SignalSpec) ToPhysical(raw core.Sample) float64 {
	return (float64(raw) - float64(s.BaselineOrDefault())) / s.GainOrDefault()
}

// ToADC converts a physical value back to its nearest raw ADC sample.
func (s SignalSpec) ToADC(phys float64) core.Sample {
	return core.Sample(math.Round(phys*s.GainOrDefault() + float64(s.BaselineOrDefault())))
}

// parseFormatField parses the second signal-spec token:
// formatCode[xSamplesPerFrame][:skew][+byteOffset].
func parseFormatField(tok string, lineNum int) (core.FormatCode, int, int, int64, error) {
	i := 0
	digitsFrom := func(s string, start int) (string, int) {
		j := start
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		return s[start:j], j
	}

	codeStr, next := digitsFrom(tok, i)
	if codeStr == "" {
		return 0, 0, 0, 0, errs.InvalidHeader("line %d: missing format code in %q", lineNum, tok)
	}
	i = next

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return 0, 0, 0, 0, errs.InvalidHeader("line %d: invalid format code %q", lineNum, codeStr)
	}
	format := core.FormatCode(code)
	if !format.Valid() {
		return 0, 0, 0, 0, errs.InvalidHeader("line %d: unrecognized format code %d", lineNum, code)
	}

	samplesPerFrame := 1
	if i < len(tok) && tok[i] == 'x' {
		i++
		spfStr, next := digitsFrom(tok, i)
		if spfStr == "" {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: missing samplesPerFrame after 'x' in %q", lineNum, tok)
		}
		i = next
		samplesPerFrame, err = strconv.Atoi(spfStr)
		if err != nil || samplesPerFrame <= 0 {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: invalid samplesPerFrame in %q", lineNum, tok)
		}
	}

	skew := 0
	if i < len(tok) && tok[i] == ':' {
		i++
		skewStr, next := digitsFrom(tok, i)
		if skewStr == "" {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: missing skew after ':' in %q", lineNum, tok)
		}
		i = next
		skew, err = strconv.Atoi(skewStr)
		if err != nil {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: invalid skew in %q", lineNum, tok)
		}
	}

	var byteOffset int64
	if i < len(tok) && tok[i] == '+' {
		i++
		offStr, next := digitsFrom(tok, i)
		if offStr == "" {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: missing byteOffset after '+' in %q", lineNum, tok)
		}
		i = next
		byteOffset, err = strconv.ParseInt(offStr, 10, 64)
		if err != nil {
			return 0, 0, 0, 0, errs.InvalidHeader("line %d: invalid byteOffset in %q", lineNum, tok)
		}
	}

	if i != len(tok) {
		return 0, 0, 0, 0, errs.InvalidHeader("line %d: trailing garbage in format field %q", lineNum, tok)
	}

	return format, samplesPerFrame, skew, byteOffset, nil
}

// parseGainField parses a gain token shaped as gain[(baseline)][/units].
func parseGainField(tok string, lineNum int) (float64, *int32, *string, error) {
	rest, units := tok, ""
	if idx := strings.LastIndexByte(tok, '/'); idx >= 0 {
		rest = tok[:idx]
		units = tok[idx+1:]
	}

	gainStr, baselineStr := rest, ""
	if idx := strings.IndexByte(rest, '('); idx >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return 0, nil, nil, errs.InvalidHeader("line %d: malformed baseline in %q", lineNum, tok)
		}
		gainStr = rest[:idx]
		baselineStr = rest[idx+1 : len(rest)-1]
	}

	gain, err := strconv.ParseFloat(gainStr, 64)
	if err != nil {
		return 0, nil, nil, errs.InvalidHeader("line %d: invalid gain %q", lineNum, gainStr)
	}

	var baseline *int32
	if baselineStr != "" {
		b, err := strconv.ParseInt(baselineStr, 10, 32)
		if err != nil {
			return 0, nil, nil, errs.InvalidHeader("line %d: invalid baseline %q", lineNum, baselineStr)
		}
		b32 := int32(b)
		baseline = &b32
	}

	var unitsPtr *string
	if units != "" {
		unitsPtr = &units
	}

	return gain, baseline, unitsPtr, nil
}

// signalSpecState walks the gain/resolution/zero/initial/checksum/blockSize
// chain described in this module: each slot is individually optional, and
// the first token that fails to parse for its slot's width starts the
// description instead.
type signalSpecState int

const (
	stateStart signalSpecState = iota
	stateAfterGain
	stateAfterResolution
	stateAfterZero
	stateAfterInitial
	stateAfterChecksum
	stateAfterBlockSize
	stateDescription
)

func parseSignalSpecLine(line string, lineNum int) (SignalSpec, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return SignalSpec{}, errs.InvalidHeader("line %d: signal-spec line needs a file name and a format field, got %q", lineNum, line)
	}

	spec := SignalSpec{FileName: tokens[0]}

	format, spf, skew, byteOffset, err := parseFormatField(tokens[1], lineNum)
	if err != nil {
		return SignalSpec{}, err
	}
	spec.Format = format
	spec.SamplesPerFrame = spf
	spec.Skew = skew
	spec.ByteOffset = byteOffset

	rest := tokens[2:]
	state := stateStart
	descStart := len(rest)

	for i, tok := range rest {
		switch state {
		case stateStart:
			if strings.Contains(tok, "/") || strings.Contains(tok, "(") {
				gain, baseline, units, err := parseGainField(tok, lineNum)
				if err != nil {
					return SignalSpec{}, err
				}
				spec.Gain = &gain
				spec.Baseline = baseline
				spec.Units = units
				state = stateAfterGain
				continue
			}
			if v, err := strconv.ParseFloat(tok, 64); err == nil && v > 0 {
				spec.Gain = &v
				state = stateAfterGain
				continue
			}
			if v, err := strconv.Atoi(tok); err == nil && v <= 0 {
				v32 := int32(v)
				spec.BlockSize = &v32
				state = stateAfterBlockSize
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterGain:
			if v, err := strconv.ParseUint(tok, 10, 8); err == nil {
				r := int(v)
				spec.Resolution = &r
				state = stateAfterResolution
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterResolution:
			if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
				v32 := int32(v)
				spec.Zero = &v32
				state = stateAfterZero
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterZero:
			if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
				v32 := int32(v)
				spec.Initial = &v32
				state = stateAfterInitial
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterInitial:
			if v, err := strconv.ParseInt(tok, 10, 16); err == nil {
				v16 := int16(v)
				spec.Checksum = &v16
				state = stateAfterChecksum
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterChecksum:
			if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
				v32 := int32(v)
				spec.BlockSize = &v32
				state = stateAfterBlockSize
				continue
			}
			descStart = i
			state = stateDescription

		case stateAfterBlockSize, stateDescription:
			descStart = i
			state = stateDescription
		}

		if state == stateDescription {
			break
		}
	}

	if descStart < len(rest) {
		spec.Description = strings.Join(rest[descStart:], " ")
	}

	return spec, nil
}
