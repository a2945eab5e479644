package header

import (
	"bufio"
	"io"
	"strings"

	"github.com/wfdb-go/wfdb/errs"
	"github.com/wfdb-go/wfdb/internal/hash"
)

// Header is the fully parsed content of a ".hea" file.
type Header struct {
	Metadata    Metadata
	Signals     []SignalSpec  // populated for single-segment records
	Segments    []SegmentSpec // populated for multi-segment records
	InfoStrings []string

	nameIndex map[uint64]int
}

// SignalIndex returns the index of the signal with the given description,
// or -1 if no signal by that name exists. Lookups are O(1) via an xxHash64
// keyed map built once at parse time, since multi-signal records are
// commonly searched by name when wiring a specific channel.
func (h *Header) SignalIndex(name string) int {
	if h.nameIndex == nil {
		return -1
	}
	idx, ok := h.nameIndex[hash.ID(name)]
	if !ok {
		return -1
	}
	return idx
}

func (h *Header) buildNameIndex() {
	h.nameIndex = make(map[uint64]int, len(h.Signals))
	for i, s := range h.Signals {
		if s.Description != "" {
			h.nameIndex[hash.ID(s.Description)] = i
		}
	}
}

type rawLine struct {
	num  int
	text string
}

func isComment(s string) bool {
	return strings.HasPrefix(s, "#")
}

func readLines(r io.Reader) ([]rawLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var lines []rawLine
	num := 0
	for scanner.Scan() {
		num++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, rawLine{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.IO("read header", err)
	}
	return lines, nil
}

// Parse reads a WFDB header from r.
func Parse(r io.Reader) (*Header, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	pos := 0
	for pos < len(lines) && isComment(strings.TrimSpace(lines[pos].text)) {
		pos++
	}
	if pos >= len(lines) {
		return nil, errs.InvalidHeader("header has no record line")
	}

	metadata, err := parseRecordLine(lines[pos].text, lines[pos].num)
	if err != nil {
		return nil, err
	}
	pos++

	h := &Header{Metadata: metadata}

	if metadata.IsMultiSegment() {
		h.Segments, pos, err = collectSegmentSpecs(lines, pos, *metadata.NumSegments)
	} else {
		h.Signals, pos, err = collectSignalSpecs(lines, pos, metadata.NumSignals)
	}
	if err != nil {
		return nil, err
	}

	h.InfoStrings, err = collectInfoStrings(lines, pos)
	if err != nil {
		return nil, err
	}

	h.buildNameIndex()

	return h, nil
}

func collectSignalSpecs(lines []rawLine, pos, n int) ([]SignalSpec, int, error) {
	specs := make([]SignalSpec, 0, n)
	for len(specs) < n {
		if pos >= len(lines) {
			return nil, pos, errs.InvalidHeader("expected %d signal-spec lines, found %d", n, len(specs))
		}
		line := lines[pos]
		pos++
		if isComment(strings.TrimSpace(line.text)) {
			continue
		}
		spec, err := parseSignalSpecLine(line.text, line.num)
		if err != nil {
			return nil, pos, err
		}
		specs = append(specs, spec)
	}
	return specs, pos, nil
}

func collectSegmentSpecs(lines []rawLine, pos, n int) ([]SegmentSpec, int, error) {
	specs := make([]SegmentSpec, 0, n)
	for len(specs) < n {
		if pos >= len(lines) {
			return nil, pos, errs.InvalidHeader("expected %d segment-spec lines, found %d", n, len(specs))
		}
		line := lines[pos]
		pos++
		if isComment(strings.TrimSpace(line.text)) {
			continue
		}
		spec, err := parseSegmentSpecLine(line.text, line.num)
		if err != nil {
			return nil, pos, err
		}
		specs = append(specs, spec)
	}
	return specs, pos, nil
}

// collectInfoStrings gathers the trailing "#"-prefixed lines that follow the
// last spec line. Any remaining non-comment line is a malformed header.
func collectInfoStrings(lines []rawLine, pos int) ([]string, error) {
	var info []string
	for ; pos < len(lines); pos++ {
		text := strings.TrimSpace(lines[pos].text)
		if !isComment(text) {
			return nil, errs.InvalidHeader("line %d: unexpected trailing content %q", lines[pos].num, lines[pos].text)
		}
		info = append(info, strings.TrimPrefix(strings.TrimPrefix(text, "#"), " "))
	}
	return info, nil
}
