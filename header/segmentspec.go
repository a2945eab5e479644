package header

import (
	"strconv"
	"strings"

	"github.com/wfdb-go/wfdb/errs"
)

// nullSegmentName marks a segment with no data, used to represent a gap in
// a multi-segment recording.
const nullSegmentName = "~"

// SegmentSpec is one segment-spec line of a multi-segment header.
type SegmentSpec struct {
	RecordName string
	NumSamples int64
}

// IsNull reports whether this segment represents a gap with no data.
func (s SegmentSpec) IsNull() bool {
	return s.RecordName == nullSegmentName
}

// IsLayout reports whether this segment is a layout segment: one that
// declares the signal layout for the record but contributes no samples.
func (s SegmentSpec) IsLayout() bool {
	return s.NumSamples == 0
}

func parseSegmentSpecLine(line string, lineNum int) (SegmentSpec, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return SegmentSpec{}, errs.InvalidHeader("line %d: segment-spec line needs a name and a sample count, got %q", lineNum, line)
	}

	name := tokens[0]
	if name != nullSegmentName && !isIdentifier(name) {
		return SegmentSpec{}, errs.InvalidHeader("line %d: invalid segment record name %q", lineNum, name)
	}

	numSamples, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil || numSamples < 0 {
		return SegmentSpec{}, errs.InvalidHeader("line %d: segment sample count must be a non-negative integer, got %q", lineNum, tokens[1])
	}

	return SegmentSpec{RecordName: name, NumSamples: numSamples}, nil
}
