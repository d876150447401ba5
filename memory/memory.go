// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
)

// Access widths, in bytes.
const (
	WIDTH_BYTE  = 1 // byte
	WIDTH_WORD  = 2 // word
	WIDTH_DWORD = 4 // dword
	WIDTH_QWORD = 8 // qword
)

// Memory is a flat, fixed size, zero initialized byte array.
// All multi-byte accesses are little-endian.
type Memory struct {
	Data []byte
}

// NewMemory creates a new memory of size bytes.
func NewMemory(size uint64) (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, size),
	}

	return
}

// Defines returns an iterator over the memory defines.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%v", mem.Size()),
	})
}

// Size of the memory, in bytes.
func (mem *Memory) Size() uint64 {
	return uint64(len(mem.Data))
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// Span returns the slice of memory covering [addr, addr+size).
func (mem *Memory) Span(addr uint64, size uint64) (data []byte, err error) {
	end := addr + size
	if end < addr || end > mem.Size() {
		err = ErrAccess{Address: addr, Size: size}
		return
	}

	data = mem.Data[addr:end]
	return
}

// Read a width sized value from memory, zero extended to 64 bits.
func (mem *Memory) Read(addr uint64, width int) (value uint64, err error) {
	data, err := mem.Span(addr, uint64(width))
	if err != nil {
		return
	}

	switch width {
	case WIDTH_BYTE:
		value = uint64(data[0])
	case WIDTH_WORD:
		value = uint64(binary.LittleEndian.Uint16(data))
	case WIDTH_DWORD:
		value = uint64(binary.LittleEndian.Uint32(data))
	case WIDTH_QWORD:
		value = binary.LittleEndian.Uint64(data)
	default:
		err = ErrWidth(width)
	}

	return
}

// Write the low width bytes of value to memory.
// Neighboring bytes are never touched.
func (mem *Memory) Write(addr uint64, width int, value uint64) (err error) {
	data, err := mem.Span(addr, uint64(width))
	if err != nil {
		return
	}

	switch width {
	case WIDTH_BYTE:
		data[0] = byte(value)
	case WIDTH_WORD:
		binary.LittleEndian.PutUint16(data, uint16(value))
	case WIDTH_DWORD:
		binary.LittleEndian.PutUint32(data, uint32(value))
	case WIDTH_QWORD:
		binary.LittleEndian.PutUint64(data, value)
	default:
		err = ErrWidth(width)
	}

	return
}

// Read8 reads a byte.
func (mem *Memory) Read8(addr uint64) (value uint8, err error) {
	v, err := mem.Read(addr, WIDTH_BYTE)
	value = uint8(v)
	return
}

// Read16 reads a little-endian word.
func (mem *Memory) Read16(addr uint64) (value uint16, err error) {
	v, err := mem.Read(addr, WIDTH_WORD)
	value = uint16(v)
	return
}

// Read32 reads a little-endian dword.
func (mem *Memory) Read32(addr uint64) (value uint32, err error) {
	v, err := mem.Read(addr, WIDTH_DWORD)
	value = uint32(v)
	return
}

// Read64 reads a little-endian qword.
func (mem *Memory) Read64(addr uint64) (value uint64, err error) {
	return mem.Read(addr, WIDTH_QWORD)
}

// Write8 writes a byte.
func (mem *Memory) Write8(addr uint64, value uint8) error {
	return mem.Write(addr, WIDTH_BYTE, uint64(value))
}

// Write16 writes a little-endian word.
func (mem *Memory) Write16(addr uint64, value uint16) error {
	return mem.Write(addr, WIDTH_WORD, uint64(value))
}

// Write32 writes a little-endian dword.
func (mem *Memory) Write32(addr uint64, value uint32) error {
	return mem.Write(addr, WIDTH_DWORD, uint64(value))
}

// Write64 writes a little-endian qword.
func (mem *Memory) Write64(addr uint64, value uint64) error {
	return mem.Write(addr, WIDTH_QWORD, value)
}

// Load copies data into memory at addr.
func (mem *Memory) Load(addr uint64, data []byte) (err error) {
	span, err := mem.Span(addr, uint64(len(data)))
	if err != nil {
		return
	}

	copy(span, data)
	return
}

// CString reads a null terminated string starting at addr.
// The terminator must lie within memory.
func (mem *Memory) CString(addr uint64) (text string, err error) {
	if addr >= mem.Size() {
		err = ErrAccess{Address: addr, Size: 1}
		return
	}

	for end := addr; end < mem.Size(); end++ {
		if mem.Data[end] == 0 {
			text = string(mem.Data[addr:end])
			return
		}
	}

	err = ErrAccess{Address: addr, Size: mem.Size() - addr + 1}
	return
}
