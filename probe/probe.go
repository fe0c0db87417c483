// Package probe summarizes single-stream Ogg files: which codec the
// logical bitstream carries, its basic audio parameters, and its
// duration. It is a pure client of the container/ogg framing engine
// and inspects only the stream's header packets plus granule
// positions; audio packet contents are never decoded.
package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/audiolith/oggmeta/container/ogg"
)

// Codec identifies the codec carried by a logical bitstream.
type Codec string

const (
	CodecOpus    Codec = "opus"
	CodecVorbis  Codec = "vorbis"
	CodecFLAC    Codec = "flac"
	CodecSpeex   Codec = "speex"
	CodecUnknown Codec = "unknown"
)

// Codec identification magics, from the first packet of the stream.
var (
	opusHeadMagic    = []byte("OpusHead")
	vorbisIdentMagic = []byte("\x01vorbis")
	oggFLACMagic     = []byte("\x7fFLAC")
	speexMagic       = []byte("Speex   ")
)

var (
	// ErrBadHeaderPacket indicates the identification packet is too
	// short or inconsistent for its codec.
	ErrBadHeaderPacket = errors.New("probe: malformed identification packet")

	// ErrNoComments indicates no Vorbis-comment packet was found among
	// the stream's header packets.
	ErrNoComments = errors.New("probe: no comment header found")

	// ErrEmptyStream indicates the buffer contained no header packets.
	ErrEmptyStream = errors.New("probe: no header packets found")
)

// opusSampleRate is the granule rate of an Opus stream. Granule
// positions always count 48 kHz samples regardless of the input rate.
const opusSampleRate = 48000

// Stream describes one logical Ogg bitstream.
type Stream struct {
	Codec        Codec
	SerialNumber uint32

	// Channels and SampleRate come from the identification packet;
	// zero when the codec is unknown.
	Channels   uint8
	SampleRate uint32

	// PreSkip is the Opus decoder priming sample count (48 kHz);
	// zero for other codecs.
	PreSkip uint16

	// TotalGranules is the authoritative end-of-stream granule
	// position, preferring the EOS page.
	TotalGranules uint64

	// HeaderPackets is the number of header packets collected and
	// HeaderSize the byte offset where non-header pages begin.
	HeaderPackets int
	HeaderSize    int
}

// Duration derives the playback time from the total granule count.
// Opus granules run at 48 kHz with the pre-skip priming samples
// excluded; Vorbis and FLAC granules run at the stream sample rate.
// Returns 0 when the codec or sample rate is unknown.
func (s *Stream) Duration() time.Duration {
	granules := s.TotalGranules
	rate := s.SampleRate
	if s.Codec == CodecOpus {
		rate = opusSampleRate
		if granules > uint64(s.PreSkip) {
			granules -= uint64(s.PreSkip)
		} else {
			granules = 0
		}
	}
	if rate == 0 {
		return 0
	}
	// Split the division so granule values near the top of the 64-bit
	// range cannot overflow the nanosecond multiplication.
	sec := granules / uint64(rate)
	rem := granules % uint64(rate)
	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/uint64(rate))
}

// Identify reports the codec announced by a stream's first packet.
func Identify(packet []byte) Codec {
	switch {
	case bytes.HasPrefix(packet, opusHeadMagic):
		return CodecOpus
	case bytes.HasPrefix(packet, vorbisIdentMagic):
		return CodecVorbis
	case bytes.HasPrefix(packet, oggFLACMagic):
		return CodecFLAC
	case bytes.HasPrefix(packet, speexMagic):
		return CodecSpeex
	default:
		return CodecUnknown
	}
}

// headerPacketCount is how many packets precede audio data for each
// codec: identification plus comment (plus setup for Vorbis).
func headerPacketCount(codec Codec) int {
	switch codec {
	case CodecVorbis:
		return 3
	case CodecOpus, CodecFLAC, CodecSpeex:
		return 2
	default:
		return 1
	}
}

// Inspect summarizes the logical bitstream at the start of data.
// maxPacketSize caps reassembly of any single header packet; values
// <= 0 use the library default.
func Inspect(data []byte, validateCRC bool, maxPacketSize int) (*Stream, error) {
	first, err := ogg.ExtractHeaderPackets(data, 1, validateCRC, maxPacketSize)
	if err != nil {
		return nil, fmt.Errorf("probe: reading identification packet: %w", err)
	}
	if len(first.Packets) == 0 {
		return nil, ErrEmptyStream
	}

	codec := Identify(first.Packets[0])
	headers := first
	if n := headerPacketCount(codec); n > 1 {
		headers, err = ogg.ExtractHeaderPackets(data, n, validateCRC, maxPacketSize)
		if err != nil {
			return nil, fmt.Errorf("probe: reading header packets: %w", err)
		}
	}

	s := &Stream{
		Codec:         codec,
		SerialNumber:  headers.SerialNumber,
		TotalGranules: ogg.FindLastGranulePosition(data),
		HeaderPackets: len(headers.Packets),
		HeaderSize:    headers.BytesConsumed,
	}

	switch codec {
	case CodecOpus:
		err = parseOpusHead(first.Packets[0], s)
	case CodecVorbis:
		err = parseVorbisIdent(first.Packets[0], s)
	case CodecFLAC:
		err = parseOggFLACHeader(first.Packets[0], s)
	case CodecSpeex:
		err = parseSpeexHeader(first.Packets[0], s)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// parseOpusHead reads channels, pre-skip and input sample rate from an
// OpusHead packet (RFC 7845 section 5.1).
func parseOpusHead(packet []byte, s *Stream) error {
	if len(packet) < 19 {
		return ErrBadHeaderPacket
	}
	if version := packet[8]; version>>4 != 0 {
		// Major version bump means an incompatible layout.
		return ErrBadHeaderPacket
	}
	s.Channels = packet[9]
	s.PreSkip = binary.LittleEndian.Uint16(packet[10:12])
	s.SampleRate = binary.LittleEndian.Uint32(packet[12:16])
	return nil
}

// parseVorbisIdent reads channels and sample rate from a Vorbis
// identification header.
func parseVorbisIdent(packet []byte, s *Stream) error {
	// 0x01 "vorbis", version u32, channels u8, rate u32.
	if len(packet) < 16 {
		return ErrBadHeaderPacket
	}
	if version := binary.LittleEndian.Uint32(packet[7:11]); version != 0 {
		return ErrBadHeaderPacket
	}
	s.Channels = packet[11]
	s.SampleRate = binary.LittleEndian.Uint32(packet[12:16])
	return nil
}

// parseOggFLACHeader reads channels and sample rate from the first
// packet of an Ogg-FLAC stream, which embeds the native STREAMINFO
// block after the mapping prefix.
func parseOggFLACHeader(packet []byte, s *Stream) error {
	// 0x7F "FLAC" major minor, header-packet count u16 BE, "fLaC",
	// 4-byte block header, then the 34-byte STREAMINFO block.
	const streaminfoOffset = 17
	if len(packet) < streaminfoOffset+18 {
		return ErrBadHeaderPacket
	}
	if !bytes.Equal(packet[9:13], []byte("fLaC")) {
		return ErrBadHeaderPacket
	}

	si := packet[streaminfoOffset:]
	// Sample rate is 20 bits starting at STREAMINFO byte 10, followed
	// by 3 bits of channels-minus-one.
	s.SampleRate = uint32(si[10])<<12 | uint32(si[11])<<4 | uint32(si[12])>>4
	s.Channels = (si[12]>>1)&0x07 + 1
	return nil
}

// parseSpeexHeader reads rate and channels from a Speex header packet.
func parseSpeexHeader(packet []byte, s *Stream) error {
	if len(packet) < 56 {
		return ErrBadHeaderPacket
	}
	s.SampleRate = binary.LittleEndian.Uint32(packet[36:40])
	channels := binary.LittleEndian.Uint32(packet[48:52])
	if channels > 255 {
		return ErrBadHeaderPacket
	}
	s.Channels = uint8(channels)
	return nil
}
