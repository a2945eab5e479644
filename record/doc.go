// Package record is the top-level entry point of this module:
// it resolves a record specifier to a header file, parses it, and wires
// either a frame.Reader (single-segment records) or a segment.Coordinator
// (multi-segment records) behind one uniform Record type.
package record
