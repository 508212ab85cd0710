package icon

import (
	"bytes"
	"encoding/binary"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// ICO wraps the PNG in a single-image ICO container, which Windows
// accepts for PNG-compressed icons.
func (i *Image) ICO() []byte {
	var buf bytes.Buffer
	buf.Grow(icoHeaderSize + icoEntrySize + len(i.encoded))

	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})

	// ICONDIRENTRY; 0 means 256 pixels
	_ = buf.WriteByte(icoDimension(i.Width))
	_ = buf.WriteByte(icoDimension(i.Height))
	_ = buf.WriteByte(0) // palette size
	_ = buf.WriteByte(0) // reserved
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // color planes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(i.encoded)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(icoHeaderSize+icoEntrySize))

	buf.Write(i.encoded)

	return buf.Bytes()
}

func icoDimension(n int) byte {
	if n <= 0 || n >= 256 {
		return 0
	}

	return byte(n)
}
