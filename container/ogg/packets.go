package ogg

// Packet is one codec-level unit recovered from a page. Complete is
// false when the page's last segment was 255 bytes, meaning the packet
// continues on the next page.
type Packet struct {
	Data     []byte
	Complete bool
}

// AssemblePackets splits the page payload along segment boundaries.
//
// Segments accumulate into the current packet; a segment shorter than
// 255 bytes completes it. If the page's final segment is exactly 255
// bytes the trailing accumulation is emitted as an incomplete packet,
// and the next page (which must carry the continuation flag) extends
// it.
//
// The accumulator is local to the call; no state carries over between
// pages. Cross-page reassembly belongs to the caller (see
// ExtractHeaderPackets).
func (p *Page) AssemblePackets() []Packet {
	var packets []Packet
	var acc []byte

	offset := 0
	for _, seg := range p.Segments {
		n := int(seg)
		if offset+n > len(p.Payload) {
			// Inconsistent page. ParsePage never produces one, but a
			// hand-built Page might; clamp rather than panic.
			n = len(p.Payload) - offset
		}
		acc = append(acc, p.Payload[offset:offset+n]...)
		offset += n

		if seg < 255 {
			packets = append(packets, Packet{Data: acc, Complete: true})
			acc = nil
		}
	}

	if len(acc) > 0 {
		packets = append(packets, Packet{Data: acc, Complete: false})
	}
	return packets
}
