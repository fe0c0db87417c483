package ogg

import (
	"encoding/binary"
)

// RenumberAudioPages rewrites the bookkeeping fields of an unmodified
// run of audio pages after the header and metadata pages ahead of them
// have been regenerated.
//
// Pass 1 collects the offset and length of every well-formed page,
// stopping at the first malformed or short page; trailing garbage is
// dropped from the output. Pass 2 copies each page verbatim and then
// patches in place: the serial number, the sequence number
// (incrementing from startSequence), the end-of-stream flag forced on
// for the last collected page only, and the recomputed CRC.
//
// Audio payload bytes are never touched; only the fields that depend
// on the new page numbering change.
func RenumberAudioPages(data []byte, serial uint32, startSequence uint32) []byte {
	type span struct {
		offset int
		length int
	}

	var spans []span
	offset := 0
	for offset < len(data) {
		_, consumed, err := ParsePage(data[offset:], false)
		if err != nil {
			break
		}
		spans = append(spans, span{offset: offset, length: consumed})
		offset += consumed
	}

	out := make([]byte, 0, offset)
	seq := startSequence
	for i, s := range spans {
		start := len(out)
		out = append(out, data[s.offset:s.offset+s.length]...)
		page := out[start:]

		binary.LittleEndian.PutUint32(page[serialOffset:serialOffset+4], serial)
		binary.LittleEndian.PutUint32(page[sequenceOffset:sequenceOffset+4], seq)
		if i == len(spans)-1 {
			page[flagsOffset] |= FlagEOS
		}
		patchCRC(page)
		seq++
	}

	return out
}
