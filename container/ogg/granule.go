package ogg

// FindLastGranulePosition scans the whole buffer for pages and returns
// the authoritative total-granule value of the stream.
//
// The granule of the end-of-stream page wins when one is found;
// otherwise the last non-sentinel granule seen; otherwise 0. The scan
// resyncs one byte at a time when the capture pattern does not match
// at the current offset, so valid pages after interior corruption are
// still found, and it stops quietly at a truncated trailing page.
//
// CRC validation is deliberately off here: a page with a damaged
// checksum still carries the best available granule estimate.
func FindLastGranulePosition(data []byte) uint64 {
	var lastValid, eosValue uint64
	haveValid := false
	foundEOS := false

	offset := 0
	for offset+headerSize <= len(data) {
		if string(data[offset:offset+4]) != capturePattern {
			offset++
			continue
		}

		page, consumed, err := ParsePage(data[offset:], false)
		if err != nil {
			// A stray capture pattern inside payload bytes, or a
			// truncated trailing page. Resync past it.
			offset++
			continue
		}

		if page.GranulePos != GranuleNoPacket {
			lastValid = page.GranulePos
			haveValid = true
			if page.IsEOS() {
				eosValue = page.GranulePos
				foundEOS = true
			}
		}
		offset += consumed
	}

	if foundEOS {
		return eosValue
	}
	if haveValid {
		return lastValid
	}
	return 0
}
