package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/audiolith/oggmeta/container/ogg"
)

// Comment packet prefixes per codec. Speex comment packets carry the
// bare Vorbis-comment structure with no magic.
var (
	opusTagsMagic      = []byte("OpusTags")
	vorbisCommentMagic = []byte("\x03vorbis")
)

// flacVorbisCommentBlock is the FLAC metadata block type carrying a
// Vorbis-comment structure.
const flacVorbisCommentBlock = 4

// Comments returns the vendor string and the raw FIELD=value entries
// of the stream's comment header. The field grammar itself is left to
// the caller; entries are returned exactly as stored. maxPacketSize
// caps reassembly of any single header packet; values <= 0 use the
// library default.
func Comments(data []byte, validateCRC bool, maxPacketSize int) (vendor string, fields []string, err error) {
	first, err := ogg.ExtractHeaderPackets(data, 1, validateCRC, maxPacketSize)
	if err != nil {
		return "", nil, fmt.Errorf("probe: reading identification packet: %w", err)
	}
	if len(first.Packets) == 0 {
		return "", nil, ErrEmptyStream
	}

	codec := Identify(first.Packets[0])
	headers, err := ogg.ExtractHeaderPackets(data, headerPacketCount(codec), validateCRC, maxPacketSize)
	if err != nil {
		return "", nil, fmt.Errorf("probe: reading header packets: %w", err)
	}
	if len(headers.Packets) < 2 {
		return "", nil, ErrNoComments
	}

	body, err := commentBody(codec, headers.Packets[1:])
	if err != nil {
		return "", nil, err
	}
	return parseVorbisComment(body)
}

// commentBody locates the Vorbis-comment structure inside the header
// packets following the identification packet.
func commentBody(codec Codec, packets [][]byte) ([]byte, error) {
	switch codec {
	case CodecOpus:
		pkt := packets[0]
		if !bytes.HasPrefix(pkt, opusTagsMagic) {
			return nil, ErrNoComments
		}
		return pkt[len(opusTagsMagic):], nil

	case CodecVorbis:
		pkt := packets[0]
		if !bytes.HasPrefix(pkt, vorbisCommentMagic) {
			return nil, ErrNoComments
		}
		return pkt[len(vorbisCommentMagic):], nil

	case CodecFLAC:
		// Ogg-FLAC header packets after the first are native metadata
		// blocks: 1-byte type (high bit = last-block) + 3-byte length.
		for _, pkt := range packets {
			if len(pkt) < 4 {
				continue
			}
			if pkt[0]&0x7F == flacVorbisCommentBlock {
				return pkt[4:], nil
			}
		}
		return nil, ErrNoComments

	case CodecSpeex:
		return packets[0], nil

	default:
		return nil, ErrNoComments
	}
}

// parseVorbisComment decodes the framing of a Vorbis-comment
// structure: vendor length + vendor, entry count, then length-prefixed
// entries. All lengths are little-endian u32 and every read is bounds
// checked against attacker-controlled values.
func parseVorbisComment(body []byte) (string, []string, error) {
	cursor := 0

	readBlock := func() ([]byte, bool) {
		if cursor+4 > len(body) {
			return nil, false
		}
		n := int(binary.LittleEndian.Uint32(body[cursor : cursor+4]))
		cursor += 4
		if n < 0 || cursor+n > len(body) {
			return nil, false
		}
		block := body[cursor : cursor+n]
		cursor += n
		return block, true
	}

	vendorBytes, ok := readBlock()
	if !ok {
		return "", nil, ErrBadHeaderPacket
	}

	if cursor+4 > len(body) {
		return "", nil, ErrBadHeaderPacket
	}
	count := int(binary.LittleEndian.Uint32(body[cursor : cursor+4]))
	cursor += 4

	fields := make([]string, 0, min(count, 64))
	for i := 0; i < count; i++ {
		entry, ok := readBlock()
		if !ok {
			return "", nil, ErrBadHeaderPacket
		}
		fields = append(fields, string(entry))
	}

	return string(vendorBytes), fields, nil
}
