package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_New(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(64)
	assert.Equal(uint64(64), mem.Size())
	for _, b := range mem.Data {
		assert.Equal(byte(0), b)
	}
}

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		width int
		value uint64
		bytes []byte
		read  uint64
	}){
		{WIDTH_BYTE, 0x1122334455667788, []byte{0x88, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}, 0x88},
		{WIDTH_WORD, 0x1122334455667788, []byte{0x88, 0x77, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}, 0x7788},
		{WIDTH_DWORD, 0x1122334455667788, []byte{0x88, 0x77, 0x66, 0x55, 0xaa, 0xaa, 0xaa, 0xaa}, 0x55667788},
		{WIDTH_QWORD, 0x1122334455667788, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, 0x1122334455667788},
	}

	for _, entry := range table {
		mem := NewMemory(10)
		for n := range mem.Data {
			mem.Data[n] = 0xaa
		}

		err := mem.Write(1, entry.width, entry.value)
		assert.NoError(err)
		assert.Equal(byte(0xaa), mem.Data[0], entry.width)
		assert.Equal(entry.bytes, mem.Data[1:9], entry.width)
		assert.Equal(byte(0xaa), mem.Data[9], entry.width)

		value, err := mem.Read(1, entry.width)
		assert.NoError(err)
		assert.Equal(entry.read, value)
	}
}

func TestMemory_Helpers(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(16)
	assert.NoError(mem.Write8(0, 0xfe))
	assert.NoError(mem.Write16(1, 0xbeef))
	assert.NoError(mem.Write32(3, 0xdeadbeef))
	assert.NoError(mem.Write64(7, 0x0123456789abcdef))

	v8, err := mem.Read8(0)
	assert.NoError(err)
	assert.Equal(uint8(0xfe), v8)

	v16, err := mem.Read16(1)
	assert.NoError(err)
	assert.Equal(uint16(0xbeef), v16)

	v32, err := mem.Read32(3)
	assert.NoError(err)
	assert.Equal(uint32(0xdeadbeef), v32)

	v64, err := mem.Read64(7)
	assert.NoError(err)
	assert.Equal(uint64(0x0123456789abcdef), v64)
}

func TestMemory_Range(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(16)

	table := [](struct {
		addr  uint64
		width int
		ok    bool
	}){
		{0, WIDTH_QWORD, true},
		{8, WIDTH_QWORD, true},
		{9, WIDTH_QWORD, false},
		{15, WIDTH_BYTE, true},
		{16, WIDTH_BYTE, false},
		{14, WIDTH_DWORD, false},
		{^uint64(0), WIDTH_WORD, false},
	}

	for _, entry := range table {
		_, err := mem.Read(entry.addr, entry.width)
		werr := mem.Write(entry.addr, entry.width, 0x1234)
		if entry.ok {
			assert.NoError(err, entry)
			assert.NoError(werr, entry)
		} else {
			assert.ErrorIs(err, ErrRange, entry)
			assert.ErrorIs(werr, ErrRange, entry)
		}
	}

	_, err := mem.Read(0, 3)
	assert.ErrorIs(err, ErrSize)
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	assert.NoError(mem.Load(1, []byte{1, 2, 3}))
	assert.Equal([]byte{0, 1, 2, 3}, mem.Data)

	err := mem.Load(2, []byte{1, 2, 3})
	assert.ErrorIs(err, ErrRange)

	mem.Reset()
	assert.Equal([]byte{0, 0, 0, 0}, mem.Data)
}

func TestMemory_CString(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(12)
	assert.NoError(mem.Load(2, []byte("file.txt\x00")))

	text, err := mem.CString(2)
	assert.NoError(err)
	assert.Equal("file.txt", text)

	text, err = mem.CString(11)
	assert.NoError(err)
	assert.Equal("", text)

	mem.Data[11] = 'x'
	_, err = mem.CString(11)
	assert.ErrorIs(err, ErrRange)

	_, err = mem.CString(12)
	assert.ErrorIs(err, ErrRange)
}
