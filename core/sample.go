// Package core holds the scalar types shared by every other package in this
// module: the decoded sample type, the sample-count time type, and the
// format-code enumeration. None of these types depend on any other package
// here, which keeps the decoder, header, signal, frame, and segment
// packages free to depend on core without import cycles.
package core

import "math"

// Sample is a decoded signal value in ADC units. It is wide enough to hold
// every value any decodable format can produce, including 24-bit and 32-bit
// signed integers.
type Sample int32

// InvalidSample is the sentinel the format 0 decoder returns for every
// position. Other formats' invalid markers are not translated to it: they
// are returned as their raw decoded value (for example -32768 for format 16,
// -2048 for format 212), and only format 32's marker coincides with this
// value. A format 8 accumulator that saturates at the low end also yields
// this value.
const InvalidSample Sample = math.MinInt32

// Time is a count of sample intervals elapsed since the start of a record.
type Time int64
