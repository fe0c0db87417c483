package ogg

// DefaultMaxPacketSize caps cross-page packet reassembly when the
// caller does not supply its own limit. Real header packets (codec
// identification, comments, codec setup) are far smaller; the cap
// exists so a hostile stream cannot make the extractor allocate
// without bound.
const DefaultMaxPacketSize = 16 << 20 // 16 MiB

// maxHeaderPages bounds the number of pages scanned while collecting
// header packets. A malformed stream that never terminates a packet
// stops here instead of being walked to the end.
const maxHeaderPages = 50

// HeaderPackets is the result of ExtractHeaderPackets.
type HeaderPackets struct {
	// Packets holds the collected packets in stream order.
	Packets [][]byte

	// SerialNumber is the logical bitstream serial from the BOS page.
	SerialNumber uint32

	// BytesConsumed is the offset immediately following the page that
	// completed the last collected packet. Non-header data begins here.
	BytesConsumed int
}

// ExtractHeaderPackets reads consecutive pages from the start of data
// and collects up to maxPackets complete packets.
//
// The first page must carry the beginning-of-stream flag; its serial
// number identifies the stream. Packets spanning pages are reassembled
// across continuation pages. A continuation flag with no pending
// partial packet starts a fresh packet rather than failing; a missing
// continuation flag drops any stale partial.
//
// maxPacketSize caps the reassembled size of any single packet
// (DefaultMaxPacketSize when <= 0); the prospective size is checked
// before the accumulator grows. Scanning stops after maxHeaderPages
// pages even if fewer than maxPackets completed, bounding work on
// adversarial input.
func ExtractHeaderPackets(data []byte, maxPackets int, validateCRC bool, maxPacketSize int) (*HeaderPackets, error) {
	if maxPacketSize <= 0 {
		maxPacketSize = DefaultMaxPacketSize
	}

	result := &HeaderPackets{}
	var pending []byte
	haveBOS := false
	offset := 0

	for pageCount := 0; pageCount < maxHeaderPages && len(result.Packets) < maxPackets; pageCount++ {
		page, consumed, err := ParsePage(data[offset:], validateCRC)
		if err != nil {
			return nil, err
		}

		if !haveBOS {
			if !page.IsBOS() {
				return nil, ErrMissingBOS
			}
			result.SerialNumber = page.SerialNumber
			haveBOS = true
		}

		if !page.IsContinuation() {
			// Stale partial state must not leak into a fresh packet.
			pending = nil
		}

		for i, pkt := range page.AssemblePackets() {
			if len(result.Packets) == maxPackets {
				break
			}

			extends := i == 0 && pending != nil
			size := len(pkt.Data)
			if extends {
				size += len(pending)
			}
			if size > maxPacketSize {
				return nil, ErrPacketTooLarge
			}

			if extends {
				pending = append(pending, pkt.Data...)
				if pkt.Complete {
					result.Packets = append(result.Packets, pending)
					result.BytesConsumed = offset + consumed
					pending = nil
				}
				continue
			}

			if pkt.Complete {
				result.Packets = append(result.Packets, pkt.Data)
				result.BytesConsumed = offset + consumed
			} else {
				// Only the page's last packet can be incomplete.
				pending = pkt.Data
			}
		}

		offset += consumed
	}

	return result, nil
}
