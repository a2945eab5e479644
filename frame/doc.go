// Package frame implements the multi-signal frame reader of this module: a
// reader over a single segment's signals that advances all of them in
// lockstep, one sample per signal per frame, and assembles the row.
//
// Signals that physically share one file (an interleaved layout) are
// grouped automatically by NewReaderFromHeader, which opens each distinct
// file once and wires every signal sharing it to the correct slot.
package frame
