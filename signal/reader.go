package signal

import (
	"bytes"
	"io"
	"math"

	"github.com/wfdb-go/wfdb/core"
	"github.com/wfdb-go/wfdb/decoder"
	"github.com/wfdb-go/wfdb/errs"
	"github.com/wfdb-go/wfdb/header"
	"github.com/wfdb-go/wfdb/internal/pool"
)

// readMode selects how Reader turns a sample index into bytes on disk.
type readMode int

const (
	// modeSequential: this signal owns its file outright. The decoder's own
	// internal state (pair/triple/accumulator) is trusted across calls;
	// no seeking is needed beyond the initial byteOffset.
	modeSequential readMode = iota
	// modeGroupedFixed: this signal shares a file with others at a constant
	// per-sample width. Every sample is independently byte-addressable, so
	// random access just seeks to dataStart + frame*frameWidth + slotOffset.
	modeGroupedFixed
	// modeGroupedPacked: this signal shares a file with others under a
	// packed, stateful format. A frame's bytes must be decoded as a whole
	// (with the decoder reset first) and all but this signal's sample
	// discarded, since individual samples are not byte-addressable.
	modeGroupedPacked
)

// Reader is a random-access view over one signal's decoded samples.
type Reader struct {
	src    io.ReadSeeker
	spec   header.SignalSpec
	dec    decoder.Decoder
	format core.FormatCode

	samplingFrequency float64
	dataStart         int64

	mode              readMode
	numSignalsInGroup int
	slotInGroup       int
	frameWidth        int // bytes per frame in grouped modes
	sampleWidth       int // bytes per sample, modeGroupedFixed only
	packingGroupSize  int // samples per packed group, modeSequential-packed and modeGroupedPacked

	position core.Time

	groupBuf []core.Sample
	rawBuf   []byte
	release  []func()
}

// NewReader constructs a reader for one signal.
//
// numSignalsInGroup and slotInGroup describe this signal's position among
// the signals that physically share its file: a signal with a dedicated
// file is constructed with numSignalsInGroup 1 and slotInGroup 0.
func NewReader(src io.ReadSeeker, spec header.SignalSpec, samplingFrequency float64, numSignalsInGroup, slotInGroup int) (*Reader, error) {
	dec, err := decoder.New(spec.Format, core.Sample(spec.InitialOrDefault()))
	if err != nil {
		return nil, err
	}

	r := &Reader{
		src:               src,
		spec:              spec,
		dec:               dec,
		format:            spec.Format,
		samplingFrequency: samplingFrequency,
		dataStart:         spec.ByteOffset,
		numSignalsInGroup: numSignalsInGroup,
		slotInGroup:       slotInGroup,
		packingGroupSize:  spec.Format.PackingGroupSize(),
	}

	fw, isFixed := dec.(decoder.FixedWidth)
	fr, isFramed := dec.(decoder.Framed)

	switch {
	case numSignalsInGroup <= 1:
		r.mode = modeSequential
		if _, err := src.Seek(r.dataStart, io.SeekStart); err != nil {
			return nil, errs.IO("seek to signal data", err)
		}

	case isFixed:
		r.mode = modeGroupedFixed
		r.sampleWidth = fw.BytesPerSample()
		r.frameWidth = r.sampleWidth * numSignalsInGroup

	case isFramed:
		if numSignalsInGroup%r.packingGroupSize != 0 {
			return nil, errs.UnsupportedFormat(int(spec.Format), "packed format cannot be de-interleaved when the shared file's signal count is not a multiple of its packing group size")
		}
		r.mode = modeGroupedPacked
		r.frameWidth = fr.BytesPerFrame(numSignalsInGroup)

		groupBuf, releaseGroup := pool.GetSampleSlice(numSignalsInGroup)
		rawBuf, releaseRaw := pool.GetByteSlice(r.frameWidth)
		r.groupBuf = groupBuf
		r.rawBuf = rawBuf
		r.release = append(r.release, releaseGroup, releaseRaw)

	default:
		return nil, errs.UnsupportedFormat(int(spec.Format), "format cannot be de-interleaved from a shared file")
	}

	return r, nil
}

// ReadInto decodes up to len(out) consecutive samples starting at the
// reader's current position, returning the count actually decoded. A
// return of n < len(out) with a nil error means the underlying data ended
// cleanly; any other error is returned as-is.
func (r *Reader) ReadInto(out []core.Sample) (int, error) {
	switch r.mode {
	case modeSequential:
		return r.readSequential(out)
	case modeGroupedFixed:
		return r.readGroupedFixed(out)
	default:
		return r.readGroupedPacked(out)
	}
}

// Read decodes and returns the next n samples.
func (r *Reader) Read(n int) ([]core.Sample, error) {
	out := make([]core.Sample, n)
	got, err := r.ReadInto(out)
	return out[:got], err
}

func (r *Reader) readSequential(out []core.Sample) (int, error) {
	n, err := r.dec.DecodeInto(r.src, out)
	r.position += core.Time(n)
	return n, err
}

func (r *Reader) readGroupedFixed(out []core.Sample) (int, error) {
	count := 0
	for count < len(out) {
		seekPos := r.dataStart + int64(r.position)*int64(r.frameWidth) + int64(r.slotInGroup*r.sampleWidth)
		if _, err := r.src.Seek(seekPos, io.SeekStart); err != nil {
			return count, errs.IO("seek to signal frame", err)
		}

		n, err := r.dec.DecodeInto(r.src, out[count:count+1])
		if err != nil {
			return count, err
		}
		if n == 0 {
			return count, nil
		}

		count++
		r.position++
	}
	return count, nil
}

func (r *Reader) readGroupedPacked(out []core.Sample) (int, error) {
	count := 0
	for count < len(out) {
		seekPos := r.dataStart + int64(r.position)*int64(r.frameWidth)
		if _, err := r.src.Seek(seekPos, io.SeekStart); err != nil {
			return count, errs.IO("seek to signal frame", err)
		}

		n, err := io.ReadFull(r.src, r.rawBuf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return count, nil
		}
		if err != nil {
			return count, errs.IO("read signal frame", err)
		}
		_ = n

		r.dec.Reset()
		decoded, err := r.dec.DecodeInto(bytes.NewReader(r.rawBuf), r.groupBuf)
		if err != nil {
			return count, err
		}
		if decoded <= r.slotInGroup {
			return count, nil
		}

		out[count] = r.groupBuf[r.slotInGroup]
		count++
		r.position++
	}
	return count, nil
}

// Position returns the index of the next sample ReadInto will return.
func (r *Reader) Position() core.Time {
	return r.position
}

// Close returns this reader's pooled scratch buffers, if any. It does not
// close the underlying io.ReadSeeker, which may be shared with other
// signals in the same file group.
func (r *Reader) Close() {
	for _, release := range r.release {
		release()
	}
	r.release = nil
}

// ToPhysical converts a decoded raw sample to its physical value using this
// signal's gain and baseline. It applies the formula uniformly, including
// to core.InvalidSample: this module does not special-case the sentinel
// into NaN, matching the reference decoder's pass-through behavior so
// callers that need to detect it can still compare the raw sample first.
func (r *Reader) ToPhysical(raw core.Sample) float64 {
	return r.spec.ToPhysical(raw)
}

// ToADC converts a physical value back to its nearest raw ADC sample.
func (r *Reader) ToADC(phys float64) core.Sample {
	return r.spec.ToADC(phys)
}

// SeekToSample repositions the reader so the next ReadInto starts at s.
func (r *Reader) SeekToSample(s core.Time) error {
	switch r.mode {
	case modeGroupedFixed, modeGroupedPacked:
		r.position = s
		return nil

	default:
		return r.seekSequential(s)
	}
}

// SeekToTime repositions the reader to the sample nearest elapsed seconds
// from the start of the signal.
func (r *Reader) SeekToTime(seconds float64) error {
	return r.SeekToSample(core.Time(math.Round(seconds * r.samplingFrequency)))
}

func (r *Reader) seekSequential(s core.Time) error {
	if fw, ok := r.dec.(decoder.FixedWidth); ok {
		width := fw.BytesPerSample()
		seekPos := r.dataStart + int64(s)*int64(width)
		if _, err := r.src.Seek(seekPos, io.SeekStart); err != nil {
			return errs.IO("seek signal", err)
		}
		r.dec.Reset()
		r.position = s
		return nil
	}

	fr, ok := r.dec.(decoder.Framed)
	if !ok {
		return errs.UnsupportedFormat(int(r.format), "format supports neither fixed-width nor framed seeking")
	}

	groupSize := int64(r.packingGroupSize)
	groupIndex := int64(s) / groupSize
	leading := int(int64(s) % groupSize)

	groupBytes := fr.BytesPerFrame(r.packingGroupSize)
	seekPos := r.dataStart + groupIndex*int64(groupBytes)
	if _, err := r.src.Seek(seekPos, io.SeekStart); err != nil {
		return errs.IO("seek signal", err)
	}
	r.dec.Reset()

	if leading > 0 {
		discard := make([]core.Sample, leading)
		if _, err := r.dec.DecodeInto(r.src, discard); err != nil {
			return err
		}
	}

	r.position = s
	return nil
}
