// Package segment implements the multi-segment coordinator of this module:
// a seekable timeline across the component records of a multi-segment
// WFDB record, loading each sub-record's frame reader lazily on first
// access and treating "~" null segments as present-but-unreadable gaps.
package segment
