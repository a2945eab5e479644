package frame

import (
	"io"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/errs"
	"github.com/wfdb-go/wfdb/header"
	"github.com/wfdb-go/wfdb/signal"
)

// Reader reads one frame (one sample per signal) at a time across all of a
// segment's signals.
type Reader struct {
	signals           []*signal.Reader
	samplingFrequency float64
	numSamples        int64 // -1 when unknown
	position          core.Time
}

// NewReader constructs a frame reader from already-wired per-signal readers,
// in the same order as the header's signal specs.
func NewReader(signals []*signal.Reader, samplingFrequency float64, numSamples int64) *Reader {
	return &Reader{signals: signals, samplingFrequency: samplingFrequency, numSamples: numSamples}
}

// OpenFunc opens the file holding a signal's data, given the file name from
// its signal-spec line.
type OpenFunc func(fileName string) (io.ReadSeeker, error)

// NewReaderFromHeader groups h's signals by shared file name and builds a
// Reader wired to read every signal's interleaved data correctly.
func NewReaderFromHeader(h *header.Header, open OpenFunc) (*Reader, error) {
	groups := make(map[string][]int) // fileName -> signal indices, in order
	var order []string
	for i, s := range h.Signals {
		if _, ok := groups[s.FileName]; !ok {
			order = append(order, s.FileName)
		}
		groups[s.FileName] = append(groups[s.FileName], i)
	}

	readers := make([]*signal.Reader, len(h.Signals))
	for _, fileName := range order {
		indices := groups[fileName]
		src, err := open(fileName)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidPath, err, "open signal file %q", fileName)
		}

		for slot, idx := range indices {
			r, err := signal.NewReader(src, h.Signals[idx], h.Metadata.SamplingFrequency, len(indices), slot)
			if err != nil {
				return nil, err
			}
			readers[idx] = r
		}
	}

	numSamples := int64(-1)
	if h.Metadata.NumSamples != nil {
		numSamples = *h.Metadata.NumSamples
	}

	return NewReader(readers, h.Metadata.SamplingFrequency, numSamples), nil
}

// ReadFrame reads one sample from every signal. A clean end of data (every
// signal exhausted at the same frame boundary) returns (nil, nil); a
// truncated frame, where some signals have data and others don't, returns
// an error instead of a partial row.
func (r *Reader) ReadFrame() ([]core.Sample, error) {
	frame := make([]core.Sample, len(r.signals))
	present := 0

	for i, s := range r.signals {
		got, err := s.Read(1)
		if err != nil {
			return nil, err
		}
		if len(got) == 1 {
			frame[i] = got[0]
			present++
		}
	}

	if present == 0 {
		return nil, nil
	}
	if present != len(r.signals) {
		return nil, errs.InvalidHeader("incomplete frame at position %d: %d of %d signals have data", r.position, present, len(r.signals))
	}

	r.position++
	return frame, nil
}

// ReadFrames reads up to n frames, stopping early (without error) if the
// data ends cleanly before n frames are read.
func (r *Reader) ReadFrames(n int) ([][]core.Sample, error) {
	frames := make([][]core.Sample, 0, n)
	for i := 0; i < n; i++ {
		f, err := r.ReadFrame()
		if err != nil {
			return frames, err
		}
		if f == nil {
			break
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// ReadFramesPhysical reads up to n frames and converts every sample to its
// physical value using each signal's gain and baseline.
func (r *Reader) ReadFramesPhysical(n int) ([][]float64, error) {
	raw, err := r.ReadFrames(n)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(raw))
	for i, frame := range raw {
		row := make([]float64, len(frame))
		for j, sample := range frame {
			row[j] = r.signals[j].ToPhysical(sample)
		}
		out[i] = row
	}
	return out, nil
}

// SeekToFrame repositions every signal so the next ReadFrame returns frame k.
func (r *Reader) SeekToFrame(k core.Time) error {
	for _, s := range r.signals {
		if err := s.SeekToSample(k); err != nil {
			return err
		}
	}
	r.position = k
	return nil
}

// Position returns the index of the next frame ReadFrame will return.
func (r *Reader) Position() core.Time {
	return r.position
}

// NumSamples returns the record's declared sample count and whether it was
// known (absent from the header line otherwise).
func (r *Reader) NumSamples() (int64, bool) {
	return r.numSamples, r.numSamples >= 0
}

// NumSignals returns the number of signals this reader advances in lockstep.
func (r *Reader) NumSignals() int {
	return len(r.signals)
}

// Close returns every signal's pooled scratch buffers.
func (r *Reader) Close() {
	for _, s := range r.signals {
		s.Close()
	}
}
