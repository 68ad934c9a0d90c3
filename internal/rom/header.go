package rom

// HeaderSize is the length in bytes of the optional dump header some ROM
// images carry in front of the cartridge payload.
const HeaderSize = 16

// nesMagic identifies a header: the ASCII bytes "NES" followed by 0x1A.
var nesMagic = [4]byte{0x4E, 0x45, 0x53, 0x1A}

// HasHeader reports whether data starts with a dump header. Inputs shorter
// than HeaderSize never have one.
func HasHeader(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}
	return data[0] == nesMagic[0] &&
		data[1] == nesMagic[1] &&
		data[2] == nesMagic[2] &&
		data[3] == nesMagic[3]
}

// Body returns the payload with the dump header removed. Callers must only
// use this when HasHeader reported true and the file is longer than the
// header itself.
func Body(data []byte) []byte {
	return data[HeaderSize:]
}
