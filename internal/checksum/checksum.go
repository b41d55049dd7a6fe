// Package checksum implements the CRC-32 engine used to verify part files.
//
// The default engine is a bit-by-bit, table-free implementation of the
// reflected IEEE 802.3 CRC-32 (polynomial 0xEDB88320, initial value and
// final XOR 0xFFFFFFFF). A table-driven engine with identical output is
// available for large parts where throughput matters.
package checksum

import "fmt"

const (
	// Polynomial is the reversed IEEE 802.3 CRC-32 polynomial.
	Polynomial uint32 = 0xEDB88320

	initial uint32 = 0xFFFFFFFF
)

// Checksum computes the CRC-32 of data.
// The empty sequence yields 0.
func Checksum(data []byte) uint32 {
	return Update(0, data)
}

// Update returns the result of adding the bytes in p to crc, where crc is a
// previously finalized checksum (0 to start). Update(Update(0, a), b) equals
// Checksum of a followed by b.
func Update(crc uint32, p []byte) uint32 {
	crc ^= initial
	for _, b := range p {
		crc ^= uint32(b)
		for i := 0; i < 8; i++ {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ Polynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc ^ initial
}

// Verify reports whether data checksums to expected.
func Verify(data []byte, expected uint32) bool {
	return Checksum(data) == expected
}

// Format renders a checksum the way it is shown in progress output and
// mismatch diagnostics (e.g. "0xCBF43926").
func Format(sum uint32) string {
	return fmt.Sprintf("0x%08X", sum)
}
