// Package wfdb reads PhysioNet Waveform Database (WFDB) records: the
// ASCII header format describing a recording's signals and, for
// multi-segment records, its sub-records, plus the eleven binary sample
// formats used to store the signal data itself.
//
// # Basic Usage
//
// Opening a record and reading frames (one sample per signal, in signal
// order):
//
//	rec, err := wfdb.Open("100")
//	if err != nil {
//	    // handle error
//	}
//	defer rec.Close()
//
//	frames, err := rec.ReadFrames(1000)
//	for _, f := range frames {
//	    lead1, err := wfdb.ToPhysical(rec, 0, f[0])
//	    if err != nil {
//	        // handle error
//	    }
//	    _ = lead1
//	}
//
// Seeking by sample index or elapsed time:
//
//	rec.SeekToSample(0)
//	rec.SeekToTime(10.5)
//
// # Package Structure
//
// This package is a thin, convenient wrapper around record.Record. The
// header, decoder, signal, frame, and segment packages implement header
// parsing, per-format sample decoding, single-signal de-interleaving, frame
// assembly, and multi-segment coordination respectively, and can be used
// directly for finer control.
package wfdb

import (
	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/record"
)

// Record is an open WFDB record.
type Record = record.Record

// Open resolves spec to a WFDB header file (appending ".hea" if spec
// doesn't already end with it), parses it, and returns a Record ready to
// read frames from. Signal and, for multi-segment records, sub-record
// header files are resolved relative to the header file's own directory.
func Open(spec string) (*Record, error) {
	return record.Open(spec)
}

// ToPhysical converts an ADC sample from signal index i to its physical
// unit using that signal's gain and baseline. For a multi-segment record
// the signal's gain and baseline are resolved from whichever sub-record
// currently covers the record's read position.
func ToPhysical(r *Record, i int, sample core.Sample) (float64, error) {
	spec, err := r.ActiveSignalSpec(i)
	if err != nil {
		return 0, err
	}
	return spec.ToPhysical(sample), nil
}
