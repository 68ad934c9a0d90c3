// Package checksum computes the CRC-32 values that drive catalog matching.
//
// The algorithm is the reflected-polynomial CRC-32 used by DAT catalogs
// (polynomial 0xEDB88320, initial and final XOR 0xFFFFFFFF), which is the
// stdlib IEEE table. Keys are rendered as eight uppercase hex digits so they
// compare byte-for-byte with normalized catalog entries.
package checksum

import (
	"fmt"
	"hash/crc32"
)

// ieeeTable is derived once at init from the 0xEDB88320 polynomial.
var ieeeTable = crc32.MakeTable(crc32.IEEE)

// selfTestInput and selfTestSum form the standard CRC-32 check vector.
const (
	selfTestInput = "123456789"
	selfTestSum   = uint32(0xCBF43926)
)

// Sum computes the CRC-32 of data. Empty input is valid and yields zero.
func Sum(data []byte) uint32 {
	return crc32.Checksum(data, ieeeTable)
}

// Hex renders a checksum in canonical key form: exactly eight uppercase hex
// digits, zero padded.
func Hex(sum uint32) string {
	return fmt.Sprintf("%08X", sum)
}

// SumHex computes the CRC-32 of data and renders it in canonical key form.
func SumHex(data []byte) string {
	return Hex(Sum(data))
}

// SelfTest checks the engine against the standard "123456789" vector.
// Callers treat a failure as a warning; matching still runs, but results are
// suspect on such a platform.
func SelfTest() error {
	if got := Sum([]byte(selfTestInput)); got != selfTestSum {
		return fmt.Errorf("checksum self-test: got %s, want %s", Hex(got), Hex(selfTestSum))
	}
	return nil
}
