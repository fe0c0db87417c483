package ogg

import (
	"encoding/binary"
)

// Page header flag constants.
const (
	// FlagContinuation indicates this page contains data from a packet
	// that began on a previous page.
	FlagContinuation = 0x01

	// FlagBOS (Beginning of Stream) indicates this is the first page
	// of a logical bitstream.
	FlagBOS = 0x02

	// FlagEOS (End of Stream) indicates this is the last page of a
	// logical bitstream.
	FlagEOS = 0x04
)

// Page layout constants. Every bounds check in this package is
// expressed in terms of these offsets.
const (
	// headerSize is the fixed portion of the page header (before the
	// segment table).
	headerSize = 27

	// capturePattern identifies an Ogg page.
	capturePattern = "OggS"

	versionOffset      = 4
	flagsOffset        = 5
	granuleOffset      = 6
	serialOffset       = 14
	sequenceOffset     = 18
	crcOffset          = 22
	segmentCountOffset = 26
	segmentTableOffset = 27

	// maxSegments is the segment table capacity of one page.
	maxSegments = 255

	// maxPagePayload is the payload capacity of one page: 255 segments
	// of 255 bytes each.
	maxPagePayload = maxSegments * 255
)

// GranuleNoPacket is the granule position sentinel meaning no packet
// completes on the page.
const GranuleNoPacket = ^uint64(0)

// Page represents a single parsed Ogg page. Segments and Payload are
// copies; a Page never aliases the buffer it was parsed from.
type Page struct {
	// Version is the stream structure version (always 0).
	Version byte

	// Flags holds the header type bits (continuation, BOS, EOS).
	Flags byte

	// GranulePos is the codec-defined progress counter as of this
	// page, or GranuleNoPacket when no packet completes here.
	GranulePos uint64

	// SerialNumber identifies the logical bitstream.
	SerialNumber uint32

	// PageSequence is the page sequence number within the bitstream.
	PageSequence uint32

	// Checksum is the CRC stored in the page header.
	Checksum uint32

	// Segments contains the segment table entries.
	// Each entry is the size of a segment (0-255).
	Segments []byte

	// Payload contains the concatenated packet data. Its length equals
	// the sum of the segment table entries.
	Payload []byte
}

// IsBOS returns true if this is a Beginning of Stream page.
func (p *Page) IsBOS() bool {
	return p.Flags&FlagBOS != 0
}

// IsEOS returns true if this is an End of Stream page.
func (p *Page) IsEOS() bool {
	return p.Flags&FlagEOS != 0
}

// IsContinuation returns true if this page continues a packet from a
// previous page.
func (p *Page) IsContinuation() bool {
	return p.Flags&FlagContinuation != 0
}

// ParsePage parses one Ogg page from the start of data.
//
// Returns the parsed page and the number of bytes it occupies
// (27 + segment count + payload length), so callers can advance a
// cursor across consecutive pages.
//
// Errors distinguish the point of failure: ErrMalformedHeader for a
// short buffer, missing magic or unsupported version,
// ErrTruncatedSegmentTable and ErrTruncatedPayload when the buffer
// ends inside the variable-length portions, and ErrChecksumMismatch
// when validateCRC is set and the stored CRC does not match.
func ParsePage(data []byte, validateCRC bool) (*Page, int, error) {
	if len(data) < headerSize {
		return nil, 0, ErrMalformedHeader
	}
	if string(data[0:4]) != capturePattern {
		return nil, 0, ErrMalformedHeader
	}
	if data[versionOffset] != 0 {
		return nil, 0, ErrMalformedHeader
	}

	segmentCount := int(data[segmentCountOffset])
	tableEnd := segmentTableOffset + segmentCount
	if len(data) < tableEnd {
		return nil, 0, ErrTruncatedSegmentTable
	}

	payloadLen := 0
	for _, seg := range data[segmentTableOffset:tableEnd] {
		payloadLen += int(seg)
	}

	totalSize := tableEnd + payloadLen
	if len(data) < totalSize {
		return nil, 0, ErrTruncatedPayload
	}

	if validateCRC && !ValidatePageCRC(data[:totalSize]) {
		return nil, 0, ErrChecksumMismatch
	}

	p := &Page{
		Version:      data[versionOffset],
		Flags:        data[flagsOffset],
		GranulePos:   binary.LittleEndian.Uint64(data[granuleOffset : granuleOffset+8]),
		SerialNumber: binary.LittleEndian.Uint32(data[serialOffset : serialOffset+4]),
		PageSequence: binary.LittleEndian.Uint32(data[sequenceOffset : sequenceOffset+4]),
		Checksum:     binary.LittleEndian.Uint32(data[crcOffset : crcOffset+4]),
		Segments:     make([]byte, segmentCount),
		Payload:      make([]byte, payloadLen),
	}
	copy(p.Segments, data[segmentTableOffset:tableEnd])
	copy(p.Payload, data[tableEnd:totalSize])

	return p, totalSize, nil
}

// Encode serializes the page to bytes with proper CRC.
// The CRC is computed over the entire page with the CRC field zeroed
// and patched in last.
func (p *Page) Encode() []byte {
	pageHeaderSize := headerSize + len(p.Segments)
	data := make([]byte, pageHeaderSize+len(p.Payload))

	copy(data[0:4], capturePattern)
	data[versionOffset] = p.Version
	data[flagsOffset] = p.Flags
	binary.LittleEndian.PutUint64(data[granuleOffset:granuleOffset+8], p.GranulePos)
	binary.LittleEndian.PutUint32(data[serialOffset:serialOffset+4], p.SerialNumber)
	binary.LittleEndian.PutUint32(data[sequenceOffset:sequenceOffset+4], p.PageSequence)
	data[segmentCountOffset] = byte(len(p.Segments))
	copy(data[segmentTableOffset:], p.Segments)
	copy(data[pageHeaderSize:], p.Payload)

	patchCRC(data)
	return data
}

// BuildSegmentTable creates a segment table for a packet of the given
// length: full 255-byte segments followed by one terminator segment
// shorter than 255. A packet whose length is an exact multiple of 255
// (including zero) takes a trailing zero-length terminator.
func BuildSegmentTable(packetLen int) []byte {
	full := packetLen / 255
	remainder := packetLen % 255

	segments := make([]byte, full+1)
	for i := 0; i < full; i++ {
		segments[i] = 255
	}
	segments[full] = byte(remainder)
	return segments
}

// BuildPage renders a single page carrying the given packets in order.
//
// Each packet contributes full 255-byte segments plus one terminator
// segment shorter than 255. Returns ErrSegmentOverflow when the
// packets need more than 255 segments in total; a single page caps
// payload at 65,025 bytes, and callers with larger packets must use
// BuildPacketPages.
func BuildPage(packets [][]byte, flags byte, granule uint64, serial, sequence uint32) ([]byte, error) {
	segments := make([]byte, 0, len(packets))
	payloadLen := 0
	for _, pkt := range packets {
		segments = append(segments, BuildSegmentTable(len(pkt))...)
		payloadLen += len(pkt)
	}
	if len(segments) > maxSegments {
		return nil, ErrSegmentOverflow
	}

	payload := make([]byte, 0, payloadLen)
	for _, pkt := range packets {
		payload = append(payload, pkt...)
	}

	p := &Page{
		Flags:        flags,
		GranulePos:   granule,
		SerialNumber: serial,
		PageSequence: sequence,
		Segments:     segments,
		Payload:      payload,
	}
	return p.Encode(), nil
}
