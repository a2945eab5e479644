package record

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/errs"
	"github.com/wfdb-go/wfdb/frame"
	"github.com/wfdb-go/wfdb/header"
	"github.com/wfdb-go/wfdb/segment"
)

// Record is an open WFDB record, ready to read frames from. Exactly one
// of its two reading strategies is active: frameReader for a
// single-segment record, coordinator for a multi-segment one.
type Record struct {
	Header *header.Header

	frameReader *frame.Reader
	coordinator *segment.Coordinator

	closers []io.Closer
}

// headerPath turns a record specifier into the path of its ".hea" file:
// a specifier already ending in ".hea" is used as-is, otherwise the suffix
// is appended.
func headerPath(spec string) string {
	if strings.HasSuffix(spec, ".hea") {
		return spec
	}
	return spec + ".hea"
}

// Open resolves spec to a header file, parses it, and wires the
// appropriate reader. Signal (and, for multi-segment records, sub-record
// header) files are resolved relative to the header file's directory, not
// the process's working directory.
func Open(spec string) (*Record, error) {
	path := headerPath(spec)

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidPath, err, "open header %q", path)
	}
	defer f.Close()

	h, err := header.Parse(f)
	if err != nil {
		return nil, err
	}

	rec := &Record{Header: h}
	dir := filepath.Dir(path)

	if h.Metadata.IsMultiSegment() {
		rec.coordinator = segment.NewCoordinator(h.Segments, rec.segmentLoader(dir))
		return rec, nil
	}

	fr, err := frame.NewReaderFromHeader(h, rec.fileOpener(dir))
	if err != nil {
		return nil, err
	}
	rec.frameReader = fr

	return rec, nil
}

// fileOpener returns an OpenFunc that opens signal files relative to dir,
// tracking each opened file so Close can release them all.
func (r *Record) fileOpener(dir string) frame.OpenFunc {
	return func(name string) (io.ReadSeeker, error) {
		p := filepath.Join(dir, name)
		sf, err := os.Open(p)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidPath, err, "open signal file %q", p)
		}
		r.closers = append(r.closers, sf)
		return sf, nil
	}
}

// segmentLoader returns a segment.Loader that resolves a sub-record name
// relative to dir, the directory holding the multi-segment master header.
func (r *Record) segmentLoader(dir string) segment.Loader {
	return func(name string) (*header.Header, frame.OpenFunc, error) {
		subPath := filepath.Join(dir, headerPath(name))

		sf, err := os.Open(subPath)
		if err != nil {
			return nil, nil, errs.Wrap(errs.KindInvalidPath, err, "open segment header %q", subPath)
		}
		defer sf.Close()

		h, err := header.Parse(sf)
		if err != nil {
			return nil, nil, err
		}

		return h, r.fileOpener(filepath.Dir(subPath)), nil
	}
}

// ReadFrame reads the next frame (one sample per signal).
func (r *Record) ReadFrame() ([]core.Sample, error) {
	if r.coordinator != nil {
		return r.coordinator.ReadFrame()
	}
	return r.frameReader.ReadFrame()
}

// ReadFrames reads up to n frames, stopping early without error at the end
// of the data.
func (r *Record) ReadFrames(n int) ([][]core.Sample, error) {
	if r.coordinator != nil {
		return r.coordinator.ReadFrames(n)
	}
	return r.frameReader.ReadFrames(n)
}

// SeekToSample repositions the record to sample index s.
func (r *Record) SeekToSample(s core.Time) error {
	if r.coordinator != nil {
		return r.coordinator.SeekToSample(s)
	}
	return r.frameReader.SeekToFrame(s)
}

// SeekToTime repositions the record to the sample nearest elapsed seconds
// from the start of the record.
func (r *Record) SeekToTime(seconds float64) error {
	s := core.Time(math.Round(seconds * r.Header.Metadata.SamplingFrequency))
	return r.SeekToSample(s)
}

// TotalSamples returns the record's declared sample count and whether it
// was knowable without reading to the end of the data.
func (r *Record) TotalSamples() (int64, bool) {
	if r.coordinator != nil {
		return r.coordinator.TotalSamples(), true
	}
	return r.frameReader.NumSamples()
}

// NumSignals returns the number of signals advanced in lockstep per frame.
func (r *Record) NumSignals() int {
	if r.coordinator != nil {
		return r.Header.Metadata.NumSignals
	}
	return r.frameReader.NumSignals()
}

// ActiveSignalSpec returns the SignalSpec for signal index i. For a
// single-segment record this is simply Header.Signals[i]; for a
// multi-segment record it resolves to whichever sub-record currently
// covers the read position, since segments can declare different gain,
// baseline, or format for the same signal index.
func (r *Record) ActiveSignalSpec(i int) (header.SignalSpec, error) {
	if r.coordinator != nil {
		return r.coordinator.SignalSpecAt(i)
	}
	if i < 0 || i >= len(r.Header.Signals) {
		return header.SignalSpec{}, errs.InvalidHeader("signal index %d out of range (record has %d signals)", i, len(r.Header.Signals))
	}
	return r.Header.Signals[i], nil
}

// SignalIndex returns the index of the signal named name, or -1 if no
// signal by that name exists at the current read position. For a
// multi-segment record the lookup is scoped to whichever sub-record
// currently covers that position.
func (r *Record) SignalIndex(name string) int {
	if r.coordinator != nil {
		return r.coordinator.SignalIndexAt(name)
	}
	return r.Header.SignalIndex(name)
}

// InfoStrings returns the header's trailing "#" comment lines, in order.
func (r *Record) InfoStrings() []string {
	return r.Header.InfoStrings
}

// Close returns pooled scratch buffers and releases every signal and
// segment file this record opened.
func (r *Record) Close() error {
	if r.coordinator != nil {
		r.coordinator.Close()
	}
	if r.frameReader != nil {
		r.frameReader.Close()
	}

	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
