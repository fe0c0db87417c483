package ogg

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildTestPage renders a page or fails the test.
func buildTestPage(t *testing.T, packets [][]byte, flags byte, granule uint64, serial, sequence uint32) []byte {
	t.Helper()
	page, err := BuildPage(packets, flags, granule, serial, sequence)
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}
	return page
}

// TestBuildSegmentTable tests segment table creation for various
// packet sizes, including the exact-multiple-of-255 terminator rule.
func TestBuildSegmentTable(t *testing.T) {
	tests := []struct {
		name      string
		packetLen int
		expected  []byte
	}{
		{name: "zero length", packetLen: 0, expected: []byte{0}},
		{name: "1 byte", packetLen: 1, expected: []byte{1}},
		{name: "254 bytes", packetLen: 254, expected: []byte{254}},
		{name: "255 bytes exact", packetLen: 255, expected: []byte{255, 0}},
		{name: "256 bytes", packetLen: 256, expected: []byte{255, 1}},
		{name: "510 bytes (2x255)", packetLen: 510, expected: []byte{255, 255, 0}},
		{name: "600 bytes", packetLen: 600, expected: []byte{255, 255, 90}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSegmentTable(tc.packetLen)
			if !bytes.Equal(got, tc.expected) {
				t.Errorf("BuildSegmentTable(%d) = %v, want %v", tc.packetLen, got, tc.expected)
			}

			total := 0
			for _, seg := range got {
				total += int(seg)
			}
			if total != tc.packetLen {
				t.Errorf("BuildSegmentTable(%d) sums to %d", tc.packetLen, total)
			}
		})
	}
}

// TestParsePage_Roundtrip verifies that every header field survives a
// build/parse cycle and that the consumed count covers the whole page.
func TestParsePage_Roundtrip(t *testing.T) {
	packet := []byte("roundtrip payload")
	rendered := buildTestPage(t, [][]byte{packet}, FlagBOS|FlagEOS, 123456789, 0xDEADBEEF, 42)

	page, consumed, err := ParsePage(rendered, true)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if consumed != len(rendered) {
		t.Errorf("consumed = %d, want %d", consumed, len(rendered))
	}
	if page.Version != 0 {
		t.Errorf("Version = %d, want 0", page.Version)
	}
	if !page.IsBOS() || !page.IsEOS() || page.IsContinuation() {
		t.Errorf("flags = 0x%02x, want BOS|EOS", page.Flags)
	}
	if page.GranulePos != 123456789 {
		t.Errorf("GranulePos = %d, want 123456789", page.GranulePos)
	}
	if page.SerialNumber != 0xDEADBEEF {
		t.Errorf("SerialNumber = 0x%08x, want 0xDEADBEEF", page.SerialNumber)
	}
	if page.PageSequence != 42 {
		t.Errorf("PageSequence = %d, want 42", page.PageSequence)
	}
	if !bytes.Equal(page.Payload, packet) {
		t.Errorf("Payload = %q, want %q", page.Payload, packet)
	}
}

// TestParsePage_Cursor verifies that consumed counts let a caller walk
// consecutive pages.
func TestParsePage_Cursor(t *testing.T) {
	first := buildTestPage(t, [][]byte{[]byte("one")}, FlagBOS, 0, 7, 0)
	second := buildTestPage(t, [][]byte{[]byte("two")}, 0, 100, 7, 1)
	stream := append(append([]byte{}, first...), second...)

	p1, n1, err := ParsePage(stream, true)
	if err != nil {
		t.Fatalf("first ParsePage failed: %v", err)
	}
	p2, n2, err := ParsePage(stream[n1:], true)
	if err != nil {
		t.Fatalf("second ParsePage failed: %v", err)
	}
	if n1+n2 != len(stream) {
		t.Errorf("consumed %d+%d, want %d", n1, n2, len(stream))
	}
	if p1.PageSequence != 0 || p2.PageSequence != 1 {
		t.Errorf("sequences = %d,%d, want 0,1", p1.PageSequence, p2.PageSequence)
	}
}

// TestParsePage_Errors checks that each failure mode reports its own
// error.
func TestParsePage_Errors(t *testing.T) {
	valid := buildTestPage(t, [][]byte{make([]byte, 300)}, 0, 0, 1, 0)

	t.Run("short buffer", func(t *testing.T) {
		_, _, err := ParsePage(valid[:headerSize-1], false)
		if err != ErrMalformedHeader {
			t.Errorf("err = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupted := append([]byte{}, valid...)
		corrupted[0] = 'X'
		_, _, err := ParsePage(corrupted, false)
		if err != ErrMalformedHeader {
			t.Errorf("err = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		corrupted := append([]byte{}, valid...)
		corrupted[versionOffset] = 1
		_, _, err := ParsePage(corrupted, false)
		if err != ErrMalformedHeader {
			t.Errorf("err = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("truncated segment table", func(t *testing.T) {
		_, _, err := ParsePage(valid[:headerSize], false)
		if err != ErrTruncatedSegmentTable {
			t.Errorf("err = %v, want ErrTruncatedSegmentTable", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, _, err := ParsePage(valid[:len(valid)-1], false)
		if err != ErrTruncatedPayload {
			t.Errorf("err = %v, want ErrTruncatedPayload", err)
		}
	})

	t.Run("checksum mismatch only when requested", func(t *testing.T) {
		corrupted := append([]byte{}, valid...)
		corrupted[len(corrupted)-1] ^= 0xFF

		if _, _, err := ParsePage(corrupted, true); err != ErrChecksumMismatch {
			t.Errorf("validated parse err = %v, want ErrChecksumMismatch", err)
		}
		if _, _, err := ParsePage(corrupted, false); err != nil {
			t.Errorf("unvalidated parse err = %v, want nil", err)
		}
	})
}

// TestBuildPage_TwoPackets covers the 10-byte + 300-byte layout: the
// segment table must be [10, 255, 45] and reading the page back must
// yield exactly those two packets.
func TestBuildPage_TwoPackets(t *testing.T) {
	small := bytes.Repeat([]byte{0xAA}, 10)
	large := bytes.Repeat([]byte{0xBB}, 300)

	rendered := buildTestPage(t, [][]byte{small, large}, 0, 0, 1, 0)

	page, _, err := ParsePage(rendered, true)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if !bytes.Equal(page.Segments, []byte{10, 255, 45}) {
		t.Errorf("Segments = %v, want [10 255 45]", page.Segments)
	}

	packets := page.AssemblePackets()
	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}
	if !packets[0].Complete || !packets[1].Complete {
		t.Error("expected both packets complete")
	}
	if !bytes.Equal(packets[0].Data, small) {
		t.Errorf("packet 0 = %d bytes, want 10", len(packets[0].Data))
	}
	if !bytes.Equal(packets[1].Data, large) {
		t.Errorf("packet 1 = %d bytes, want 300", len(packets[1].Data))
	}
}

// TestBuildPage_SegmentOverflow verifies the writer-side precondition:
// packets needing more than 255 segments on one page are rejected.
func TestBuildPage_SegmentOverflow(t *testing.T) {
	// 255 full segments with no room for the terminator.
	_, err := BuildPage([][]byte{make([]byte, maxPagePayload)}, 0, 0, 1, 0)
	if err != ErrSegmentOverflow {
		t.Errorf("err = %v, want ErrSegmentOverflow", err)
	}

	// Two packets whose combined tables overflow.
	_, err = BuildPage([][]byte{make([]byte, 32640), make([]byte, 32640)}, 0, 0, 1, 0)
	if err != ErrSegmentOverflow {
		t.Errorf("combined err = %v, want ErrSegmentOverflow", err)
	}

	// The largest packet that still fits must succeed.
	page, err := BuildPage([][]byte{make([]byte, 254*255+254)}, 0, 0, 1, 0)
	if err != nil {
		t.Fatalf("max packet BuildPage failed: %v", err)
	}
	if !ValidatePageCRC(page) {
		t.Error("max packet page has invalid CRC")
	}
}

// TestBuildPage_GranuleSentinel checks that the no-packet sentinel
// round-trips through the wire format.
func TestBuildPage_GranuleSentinel(t *testing.T) {
	rendered := buildTestPage(t, [][]byte{[]byte("x")}, 0, GranuleNoPacket, 1, 0)

	if got := binary.LittleEndian.Uint64(rendered[granuleOffset:]); got != GranuleNoPacket {
		t.Errorf("wire granule = 0x%016x, want all ones", got)
	}

	page, _, err := ParsePage(rendered, true)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if page.GranulePos != GranuleNoPacket {
		t.Errorf("GranulePos = 0x%016x, want sentinel", page.GranulePos)
	}
}
