package ogg

// BuildPacketPages renders a single packet as one or more pages.
//
// A packet that fits one page's segment budget (255 segments including
// the terminator) delegates to BuildPage. Larger packets split into
// pages of 65,025 payload bytes (255 full 255-byte segments) with the
// tail on a final terminated page; only the first page keeps the
// caller's flags, every subsequent page carries the continuation flag,
// and intermediate pages get the no-packet granule sentinel since the
// packet completes only on the last page.
//
// Returns the rendered pages and the next free sequence number.
func BuildPacketPages(packet []byte, flags byte, granule uint64, serial, startSequence uint32) ([][]byte, uint32, error) {
	if fitsOnePage(len(packet)) {
		page, err := BuildPage([][]byte{packet}, flags, granule, serial, startSequence)
		if err != nil {
			return nil, startSequence, err
		}
		return [][]byte{page}, startSequence + 1, nil
	}

	var pages [][]byte
	seq := startSequence
	pageFlags := flags
	rest := packet

	for !fitsOnePage(len(rest)) {
		p := &Page{
			Flags:        pageFlags,
			GranulePos:   GranuleNoPacket,
			SerialNumber: serial,
			PageSequence: seq,
			Segments:     fullSegmentTable(),
			Payload:      rest[:maxPagePayload],
		}
		pages = append(pages, p.Encode())
		rest = rest[maxPagePayload:]
		seq++
		pageFlags = FlagContinuation
	}

	tail, err := BuildPage([][]byte{rest}, pageFlags, granule, serial, seq)
	if err != nil {
		return nil, startSequence, err
	}
	pages = append(pages, tail)
	seq++

	return pages, seq, nil
}

// fitsOnePage reports whether a packet of the given length can be
// terminated within one page: full segments plus the terminator must
// not exceed the 255-entry segment table.
func fitsOnePage(packetLen int) bool {
	return packetLen/255+1 <= maxSegments
}

// fullSegmentTable returns a 255-entry table of 255-byte segments,
// the shape of every non-final page of an oversized packet.
func fullSegmentTable() []byte {
	segments := make([]byte, maxSegments)
	for i := range segments {
		segments[i] = 255
	}
	return segments
}
