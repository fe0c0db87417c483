package ogg

import "errors"

// Package-level errors for Ogg parsing and encoding. All failures are
// returned, never panicked, so batch callers can skip unreadable
// streams.
var (
	// ErrMalformedHeader indicates the fixed page header is unusable:
	// the buffer is shorter than 27 bytes, the "OggS" magic is missing,
	// or the stream structure version is not 0.
	ErrMalformedHeader = errors.New("ogg: malformed page header")

	// ErrTruncatedSegmentTable indicates the buffer ends inside the
	// segment table announced by the header.
	ErrTruncatedSegmentTable = errors.New("ogg: truncated segment table")

	// ErrTruncatedPayload indicates the buffer ends before the payload
	// length implied by the segment table.
	ErrTruncatedPayload = errors.New("ogg: truncated page payload")

	// ErrChecksumMismatch indicates the page CRC does not match the
	// computed value. Only reported when validation was requested.
	ErrChecksumMismatch = errors.New("ogg: CRC mismatch")

	// ErrMissingBOS indicates the first page of a stream does not carry
	// the beginning-of-stream flag.
	ErrMissingBOS = errors.New("ogg: first page missing beginning-of-stream flag")

	// ErrPacketTooLarge indicates a packet under reassembly would
	// exceed the configured size cap.
	ErrPacketTooLarge = errors.New("ogg: packet exceeds size limit")

	// ErrSegmentOverflow indicates the supplied packets need more than
	// 255 segments on a single page. Callers with oversized packets
	// must use BuildPacketPages instead.
	ErrSegmentOverflow = errors.New("ogg: packets exceed single page segment budget")
)
