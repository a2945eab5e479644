// Package header parses WFDB ASCII header files into the
// typed Metadata, SignalSpec, and SegmentSpec values the rest of this module
// builds readers from.
//
// A header file is tokenized whitespace-separated, line by line. The first
// non-comment, non-blank line is the record line (parsed into Metadata);
// the lines that follow are either signal-spec lines (single-segment records)
// or segment-spec lines (multi-segment records), one per declared signal or
// segment; any "#"-prefixed lines trailing the last spec line are captured
// as info strings.
//
// # Example
//
//	f, err := os.Open("100.hea")
//	if err != nil { ... }
//	defer f.Close()
//	h, err := header.Parse(f)
//	if err != nil { ... }
//	fmt.Println(h.Metadata.Name, h.Metadata.NumSignals)
package header
