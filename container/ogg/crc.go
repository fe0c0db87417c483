package ogg

import (
	"encoding/binary"
)

// Ogg CRC-32 implementation using polynomial 0x04C11DB7.
//
// Note: This is NOT the standard IEEE CRC-32 (polynomial 0xEDB88320).
// The standard library hash/crc32 package cannot be used here.

// crcTable is the pre-computed lookup table for Ogg CRC-32.
var crcTable [256]uint32

func init() {
	// Polynomial: 0x04C11DB7, MSB-first, no reflection.
	const poly = uint32(0x04C11DB7)
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

// crc32ogg computes the Ogg CRC-32 checksum from scratch.
func crc32ogg(data []byte) uint32 {
	return crcUpdate(0, data)
}

// crcUpdate updates a running CRC with additional data.
// There is no input reflection and no final XOR.
func crcUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// patchCRC zeroes the CRC field of a rendered page and writes the
// checksum computed over the whole page. The slice must hold exactly
// one page.
func patchCRC(page []byte) {
	page[crcOffset] = 0
	page[crcOffset+1] = 0
	page[crcOffset+2] = 0
	page[crcOffset+3] = 0
	binary.LittleEndian.PutUint32(page[crcOffset:crcOffset+4], crc32ogg(page))
}

// ValidatePageCRC reports whether the checksum stored in a rendered
// page matches the checksum computed over the page with the CRC field
// zeroed. Buffers too short to hold a page header fail closed.
func ValidatePageCRC(page []byte) bool {
	if len(page) < headerSize {
		return false
	}
	stored := binary.LittleEndian.Uint32(page[crcOffset : crcOffset+4])

	work := make([]byte, len(page))
	copy(work, page)
	work[crcOffset] = 0
	work[crcOffset+1] = 0
	work[crcOffset+2] = 0
	work[crcOffset+3] = 0

	return crc32ogg(work) == stored
}
