package header

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wfdb-go/wfdb/errs"
)

// ClockTime is a WFDB base time of day, HH:MM:SS.
type ClockTime struct {
	Hour, Minute, Second int
}

// CalendarDate is a WFDB base date, DD/MM/YYYY.
type CalendarDate struct {
	Day, Month, Year int
}

// Metadata is the record line of a header.
type Metadata struct {
	Name              string
	NumSegments       *int // non-nil means this is a multi-segment record
	NumSignals        int
	SamplingFrequency float64 // Hz; defaults to 250 when the record line omits it
	CounterFrequency  *float64
	BaseCounter       *float64
	NumSamples        *int64
	BaseTime          *ClockTime
	BaseDate          *CalendarDate
}

// IsMultiSegment reports whether the record line declared a segment count.
func (m Metadata) IsMultiSegment() bool {
	return m.NumSegments != nil
}

const defaultSamplingFrequency = 250

var identifierRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(identifierRunes, r) {
			return false
		}
	}
	return true
}

// parseRecordLine parses the first non-comment line of a header file.
func parseRecordLine(line string, lineNum int) (Metadata, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Metadata{}, errs.InvalidHeader("line %d: record line needs at least a name and a signal count, got %q", lineNum, line)
	}

	m := Metadata{}

	nameField := tokens[0]
	if idx := strings.Index(nameField, "/"); idx >= 0 {
		name := nameField[:idx]
		segStr := nameField[idx+1:]
		if strings.Contains(segStr, "/") {
			return Metadata{}, errs.InvalidHeader("line %d: malformed record name %q", lineNum, nameField)
		}
		if !isIdentifier(name) {
			return Metadata{}, errs.InvalidHeader("line %d: invalid record name %q", lineNum, name)
		}
		segs, err := strconv.Atoi(segStr)
		if err != nil || segs <= 0 {
			return Metadata{}, errs.InvalidHeader("line %d: segment count must be a positive integer, got %q", lineNum, segStr)
		}
		m.Name = name
		m.NumSegments = &segs
	} else {
		if !isIdentifier(nameField) {
			return Metadata{}, errs.InvalidHeader("line %d: invalid record name %q", lineNum, nameField)
		}
		m.Name = nameField
	}

	numSignals, err := strconv.Atoi(tokens[1])
	if err != nil || numSignals <= 0 {
		return Metadata{}, errs.InvalidHeader("line %d: signal count must be a positive integer, got %q", lineNum, tokens[1])
	}
	m.NumSignals = numSignals

	if err := parseRecordLineTail(&m, tokens[2:], lineNum); err != nil {
		return Metadata{}, err
	}

	if m.SamplingFrequency == 0 {
		m.SamplingFrequency = defaultSamplingFrequency
	}

	return m, nil
}

// parseRecordLineTail consumes the optional frequency/numSamples/baseTime/
// baseDate tokens that may follow name and signal count, classifying each
// by shape rather than position.
func parseRecordLineTail(m *Metadata, tokens []string, lineNum int) error {
	freqSet, numSamplesSet, sawTimeOrDate := false, false, false

	for _, tok := range tokens {
		switch {
		case strings.Contains(tok, ":"):
			if m.BaseTime != nil {
				return errs.InvalidHeader("line %d: duplicate base time %q", lineNum, tok)
			}
			t, err := parseClockTime(tok)
			if err != nil {
				return errs.Wrap(errs.KindInvalidHeader, err, "line %d: invalid base time %q", lineNum, tok)
			}
			m.BaseTime = &t
			sawTimeOrDate = true

		case strings.Count(tok, "/") == 2:
			if m.BaseDate != nil {
				return errs.InvalidHeader("line %d: duplicate base date %q", lineNum, tok)
			}
			d, err := parseCalendarDate(tok)
			if err != nil {
				return errs.Wrap(errs.KindInvalidHeader, err, "line %d: invalid base date %q", lineNum, tok)
			}
			m.BaseDate = &d
			sawTimeOrDate = true

		case strings.Contains(tok, "/") || strings.Contains(tok, "("):
			if sawTimeOrDate {
				return errs.InvalidHeader("line %d: frequency field %q appears after base time/date", lineNum, tok)
			}
			if freqSet {
				return errs.InvalidHeader("line %d: duplicate frequency field %q", lineNum, tok)
			}
			if err := parseFrequencyWithCounter(m, tok, lineNum); err != nil {
				return err
			}
			freqSet = true

		default:
			val, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return errs.InvalidHeader("line %d: token %q is not a recognized record-line field", lineNum, tok)
			}
			if sawTimeOrDate {
				return errs.InvalidHeader("line %d: numeric field %q appears after base time/date", lineNum, tok)
			}
			switch {
			case !freqSet:
				m.SamplingFrequency = val
				freqSet = true
			case !numSamplesSet:
				n := int64(val)
				m.NumSamples = &n
				numSamplesSet = true
			default:
				return errs.InvalidHeader("line %d: unexpected extra numeric field %q", lineNum, tok)
			}
		}
	}

	if freqSet && m.SamplingFrequency <= 0 {
		return errs.InvalidHeader("line %d: sampling frequency must be positive, got %v", lineNum, m.SamplingFrequency)
	}

	return nil
}

func parseFrequencyWithCounter(m *Metadata, tok string, lineNum int) error {
	rest, base := tok, ""
	if idx := strings.IndexByte(tok, '('); idx >= 0 {
		if !strings.HasSuffix(tok, ")") {
			return errs.InvalidHeader("line %d: malformed base counter in %q", lineNum, tok)
		}
		rest = tok[:idx]
		base = tok[idx+1 : len(tok)-1]
	}

	sampStr, counterStr := rest, ""
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		sampStr = rest[:idx]
		counterStr = rest[idx+1:]
	}

	samp, err := strconv.ParseFloat(sampStr, 64)
	if err != nil {
		return errs.InvalidHeader("line %d: invalid sampling frequency %q", lineNum, sampStr)
	}
	m.SamplingFrequency = samp

	if counterStr != "" {
		counter, err := strconv.ParseFloat(counterStr, 64)
		if err != nil {
			return errs.InvalidHeader("line %d: invalid counter frequency %q", lineNum, counterStr)
		}
		if counter > 0 {
			m.CounterFrequency = &counter
		}
	}

	if base != "" {
		baseVal, err := strconv.ParseFloat(base, 64)
		if err != nil {
			return errs.InvalidHeader("line %d: invalid base counter %q", lineNum, base)
		}
		m.BaseCounter = &baseVal
	}

	return nil
}

func parseClockTime(tok string) (ClockTime, error) {
	parts := strings.Split(tok, ":")
	if len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("expected HH:MM:SS")
	}
	var t ClockTime
	var err error
	if t.Hour, err = strconv.Atoi(parts[0]); err != nil {
		return ClockTime{}, err
	}
	if t.Minute, err = strconv.Atoi(parts[1]); err != nil {
		return ClockTime{}, err
	}
	if t.Second, err = strconv.Atoi(parts[2]); err != nil {
		return ClockTime{}, err
	}
	return t, nil
}

func parseCalendarDate(tok string) (CalendarDate, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return CalendarDate{}, fmt.Errorf("expected DD/MM/YYYY")
	}
	var d CalendarDate
	var err error
	if d.Day, err = strconv.Atoi(parts[0]); err != nil {
		return CalendarDate{}, err
	}
	if d.Month, err = strconv.Atoi(parts[1]); err != nil {
		return CalendarDate{}, err
	}
	if d.Year, err = strconv.Atoi(parts[2]); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}
