package ogg

import (
	"bytes"
	"testing"
)

// TestFindLastGranulePosition covers the scanner's preference order:
// EOS page granule, then last non-sentinel granule, then zero.
func TestFindLastGranulePosition(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		if got := FindLastGranulePosition(nil); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("no pages", func(t *testing.T) {
		if got := FindLastGranulePosition(bytes.Repeat([]byte{0xAB}, 1000)); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("last page wins without EOS", func(t *testing.T) {
		stream := concat(
			buildTestPage(t, [][]byte{[]byte("a")}, FlagBOS, 0, 1, 0),
			buildTestPage(t, [][]byte{[]byte("b")}, 0, 960, 1, 1),
			buildTestPage(t, [][]byte{[]byte("c")}, 0, 1920, 1, 2),
		)
		if got := FindLastGranulePosition(stream); got != 1920 {
			t.Errorf("got %d, want 1920", got)
		}
	})

	t.Run("sentinel pages are skipped", func(t *testing.T) {
		stream := concat(
			buildTestPage(t, [][]byte{[]byte("a")}, FlagBOS, 0, 1, 0),
			buildTestPage(t, [][]byte{[]byte("b")}, 0, 4800, 1, 1),
			buildTestPage(t, [][]byte{[]byte("c")}, 0, GranuleNoPacket, 1, 2),
		)
		if got := FindLastGranulePosition(stream); got != 4800 {
			t.Errorf("got %d, want 4800", got)
		}
	})

	t.Run("EOS page preferred over later garbage", func(t *testing.T) {
		eos := buildTestPage(t, [][]byte{[]byte("end")}, FlagEOS, 48000, 1, 3)

		// A page-looking region after the real EOS page: valid framing,
		// huge granule. The scanner must still report the EOS value.
		spurious := buildTestPage(t, [][]byte{[]byte("junk")}, 0, 1<<40, 1, 4)

		stream := concat(
			buildTestPage(t, [][]byte{[]byte("a")}, FlagBOS, 0, 1, 0),
			buildTestPage(t, [][]byte{[]byte("b")}, 0, 24000, 1, 1),
			eos,
			spurious,
		)
		if got := FindLastGranulePosition(stream); got != 48000 {
			t.Errorf("got %d, want 48000", got)
		}
	})

	t.Run("resync over interior corruption", func(t *testing.T) {
		good := buildTestPage(t, [][]byte{[]byte("tail")}, 0, 7777, 1, 5)
		stream := concat(
			buildTestPage(t, [][]byte{[]byte("a")}, FlagBOS, 0, 1, 0),
			[]byte("OggSgarbage-that-is-not-a-page"),
			good,
		)
		if got := FindLastGranulePosition(stream); got != 7777 {
			t.Errorf("got %d, want 7777", got)
		}
	})

	t.Run("stops on truncated trailing page", func(t *testing.T) {
		full := buildTestPage(t, [][]byte{[]byte("full")}, 0, 555, 1, 0)
		truncated := buildTestPage(t, [][]byte{bytes.Repeat([]byte{9}, 400)}, 0, 999, 1, 1)

		stream := concat(full, truncated[:len(truncated)-50])
		if got := FindLastGranulePosition(stream); got != 555 {
			t.Errorf("got %d, want 555", got)
		}
	})
}
