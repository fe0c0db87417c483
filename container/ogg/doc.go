// Package ogg implements the Ogg bitstream framing layer shared by the
// codec-specific metadata readers and writers.
//
// The package handles pages, the atomic framing unit of an Ogg stream,
// without interpreting the packets they carry. It provides primitives
// for parsing pages out of a byte buffer, reassembling packets that
// span page boundaries, locating the final granule position of a
// stream, and regenerating pages when metadata ahead of the audio data
// grows or shrinks.
//
// # Page Structure
//
// An Ogg page has the following layout (RFC 3533):
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position, little-endian
//	Bytes 14-17: Bitstream serial number, little-endian
//	Bytes 18-21: Page sequence number, little-endian
//	Bytes 22-25: CRC checksum, little-endian
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment
// value of 255 indicates the packet continues in the next segment (or,
// when it is the page's last segment, on the next page). A value less
// than 255 marks the end of a packet. A packet whose length is an
// exact multiple of 255 therefore needs a trailing zero-length
// terminator segment.
//
// With at most 255 segments per page, a single page carries at most
// 65,025 payload bytes. Larger packets span multiple pages; every page
// after the first carries the continuation flag.
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 (NOT the IEEE polynomial
// used by hash/crc32), no input reflection and no final XOR. The CRC
// is computed over the entire page with the CRC field set to zero.
//
// All functions operate on in-memory byte slices owned by the caller;
// parsed pages copy what they need and never retain the input.
package ogg
