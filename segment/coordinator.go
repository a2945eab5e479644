package segment

import (
	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/errs"
	"github.com/wfdb-go/wfdb/frame"
	"github.com/wfdb-go/wfdb/header"
)

// State is a segment's lazy-loading status.
type State int

const (
	NotLoaded State = iota
	Loaded
	Null
)

// Loader opens a named sub-record, returning its parsed header and a
// function for opening its signal files. The coordinator uses it to build
// a frame.Reader the first time a segment's data is actually needed.
type Loader func(recordName string) (*header.Header, frame.OpenFunc, error)

type entry struct {
	spec   header.SegmentSpec
	state  State
	reader *frame.Reader
	header *header.Header
}

// Coordinator reads and seeks across a multi-segment record's timeline as
// if it were one continuous sequence of frames.
type Coordinator struct {
	entries      []*entry
	loader       Loader
	totalSamples int64
	position     core.Time
	lastRead     *entry // segment the most recent ReadFrame actually read from
}

// NewCoordinator builds a coordinator over segments, which must be in the
// order they appear in the multi-segment header.
func NewCoordinator(segments []header.SegmentSpec, loader Loader) *Coordinator {
	c := &Coordinator{loader: loader}
	var total int64

	for _, s := range segments {
		e := &entry{spec: s}
		if s.IsNull() {
			e.state = Null
		} else {
			e.state = NotLoaded
		}
		if !s.IsLayout() {
			total += s.NumSamples
		}
		c.entries = append(c.entries, e)
	}

	c.totalSamples = total
	return c
}

// TotalSamples returns the sum of every non-layout segment's declared
// sample count, computed eagerly at construction time.
func (c *Coordinator) TotalSamples() int64 {
	return c.totalSamples
}

// NumSegments returns the number of segment-spec entries, including layout
// and null segments.
func (c *Coordinator) NumSegments() int {
	return len(c.entries)
}

// SegmentState reports the lazy-loading state of segment i.
func (c *Coordinator) SegmentState(i int) State {
	return c.entries[i].state
}

func (c *Coordinator) load(e *entry) error {
	if e.state == Loaded {
		return nil
	}

	h, open, err := c.loader(e.spec.RecordName)
	if err != nil {
		return err
	}
	if h.Metadata.IsMultiSegment() {
		return errs.InvalidHeader("segment %q is itself a multi-segment record, which is not supported", e.spec.RecordName)
	}

	fr, err := frame.NewReaderFromHeader(h, open)
	if err != nil {
		return err
	}

	e.reader = fr
	e.header = h
	e.state = Loaded
	return nil
}

// entryForPosition finds the segment covering global frame pos, skipping
// layout segments (which contribute no frames), and returns it along with
// the global frame index where that segment begins.
func (c *Coordinator) entryForPosition(pos core.Time) (*entry, int64, bool) {
	var cum int64
	for _, e := range c.entries {
		if e.spec.IsLayout() {
			continue
		}
		if int64(pos) < cum+e.spec.NumSamples {
			return e, cum, true
		}
		cum += e.spec.NumSamples
	}
	return nil, 0, false
}

// ReadFrame reads the next frame from whichever segment covers the
// coordinator's current position. A clean end of the whole timeline
// returns (nil, nil). Reading into a null segment's range returns an
// error; seeking across or past one does not.
func (c *Coordinator) ReadFrame() ([]core.Sample, error) {
	e, start, ok := c.entryForPosition(c.position)
	if !ok {
		return nil, nil
	}

	if e.state == Null {
		return nil, errs.InvalidPath("frame %d falls in null segment %q: no data available", c.position, e.spec.RecordName)
	}

	if err := c.load(e); err != nil {
		return nil, err
	}

	localPos := core.Time(int64(c.position) - start)
	if e.reader.Position() != localPos {
		if err := e.reader.SeekToFrame(localPos); err != nil {
			return nil, err
		}
	}

	f, err := e.reader.ReadFrame()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}

	c.lastRead = e
	c.position++
	return f, nil
}

// SignalSpecAt returns the SignalSpec governing signal index i in the
// active segment (see activeEntry), loading that segment if it hasn't
// been already. Each segment is its own sub-record and may declare
// different gain, baseline, or format for the same signal index.
func (c *Coordinator) SignalSpecAt(i int) (header.SignalSpec, error) {
	e, err := c.activeEntry()
	if err != nil {
		return header.SignalSpec{}, err
	}

	if i < 0 || i >= len(e.header.Signals) {
		return header.SignalSpec{}, errs.InvalidHeader("signal index %d out of range (segment %q has %d signals)", i, e.spec.RecordName, len(e.header.Signals))
	}
	return e.header.Signals[i], nil
}

// SignalIndexAt returns the index of the signal named name within the
// active segment (see activeEntry), or -1 if that segment has no signal
// by that name or there is no active segment.
func (c *Coordinator) SignalIndexAt(name string) int {
	e, err := c.activeEntry()
	if err != nil {
		return -1
	}
	return e.header.SignalIndex(name)
}

// activeEntry returns the segment whose signal metadata currently governs
// index lookups: the segment the most recent ReadFrame actually read from,
// if any, so a sample and the spec used to interpret it agree even when
// that read crossed into the next segment's starting position. Before any
// read (or right after a seek), it falls back to whichever segment covers
// the coordinator's current position.
func (c *Coordinator) activeEntry() (*entry, error) {
	if c.lastRead != nil {
		return c.lastRead, nil
	}

	e, _, ok := c.entryForPosition(c.position)
	if !ok {
		return nil, errs.InvalidPath("position %d is past the end of the timeline", c.position)
	}
	if e.state == Null {
		return nil, errs.InvalidPath("frame %d falls in null segment %q: no signal data available", c.position, e.spec.RecordName)
	}
	if err := c.load(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ReadFrames reads up to n frames, stopping early without error if the
// timeline ends first.
func (c *Coordinator) ReadFrames(n int) ([][]core.Sample, error) {
	frames := make([][]core.Sample, 0, n)
	for i := 0; i < n; i++ {
		f, err := c.ReadFrame()
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

// SeekToSample repositions the coordinator's global timeline to s. Seeking
// into a null segment succeeds; reading from it afterward fails.
func (c *Coordinator) SeekToSample(s core.Time) error {
	c.position = s
	c.lastRead = nil
	return nil
}

// Position returns the coordinator's current global frame index.
func (c *Coordinator) Position() core.Time {
	return c.position
}

// Close returns the pooled scratch buffers of every segment that was
// loaded during this coordinator's lifetime.
func (c *Coordinator) Close() {
	for _, e := range c.entries {
		if e.state == Loaded {
			e.reader.Close()
		}
	}
}
