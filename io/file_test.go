package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestFile(t *testing.T) (fl *File, root string) {
	root = t.TempDir()
	dir, err := OpenDir(root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dir.Close() })

	fl = &File{Filesystem: dir}
	return
}

func TestFile_OpenEmpty(t *testing.T) {
	assert := assert.New(t)

	fl, root := newTestFile(t)

	atEnd, err := fl.Open("new.txt")
	assert.NoError(err)
	assert.True(atEnd)
	assert.True(fl.IsOpen())
	assert.FileExists(filepath.Join(root, "new.txt"))

	_, err = fl.Open("other.txt")
	assert.ErrorIs(err, ErrFileOperation)
	assert.ErrorIs(err, ErrFileOpen)

	assert.NoError(fl.Close())
	assert.False(fl.IsOpen())

	err = fl.Close()
	assert.ErrorIs(err, ErrFileOperation)
}

func TestFile_ReadToEnd(t *testing.T) {
	assert := assert.New(t)

	fl, root := newTestFile(t)
	assert.NoError(os.WriteFile(filepath.Join(root, "one.bin"), []byte{0x42}, 0o644))

	atEnd, err := fl.Open("one.bin")
	assert.NoError(err)
	assert.False(atEnd)

	value, err := fl.Receive()
	assert.NoError(err)
	assert.Equal(byte(0x42), value)
	assert.True(fl.AtEnd())

	_, err = fl.Receive()
	assert.ErrorIs(err, ErrFileOperation)
	assert.ErrorIs(err, ErrFileEnd)
}

func TestFile_Send(t *testing.T) {
	assert := assert.New(t)

	fl, root := newTestFile(t)

	err := fl.Send(FORMAT_NUMBER, 1)
	assert.ErrorIs(err, ErrFileOperation)

	_, err = fl.Open("out.txt")
	assert.NoError(err)
	assert.NoError(fl.Send(FORMAT_NUMBER, 987))
	assert.NoError(fl.Send(FORMAT_HEX, 0xff))
	assert.NoError(fl.Send(FORMAT_RAW, '\n'))
	assert.Equal(int64(6), fl.Length)
	assert.NoError(fl.Close())

	data, err := os.ReadFile(filepath.Join(root, "out.txt"))
	assert.NoError(err)
	assert.Equal("987FF\n", string(data))
}

func TestFile_PathOperations(t *testing.T) {
	assert := assert.New(t)

	fl, root := newTestFile(t)
	assert.NoError(os.WriteFile(filepath.Join(root, "five.txt"), []byte("12345"), 0o644))

	assert.True(fl.Exists("five.txt"))
	assert.False(fl.Exists("missing.txt"))
	assert.False(fl.Exists("nodir/missing.txt"))

	size, err := fl.Size("five.txt")
	assert.NoError(err)
	assert.Equal(uint64(5), size)

	_, err = fl.Size("missing.txt")
	assert.ErrorIs(err, fs.ErrNotExist)

	assert.NoError(fl.Delete("five.txt"))
	assert.False(fl.Exists("five.txt"))

	err = fl.Delete("five.txt")
	assert.ErrorIs(err, fs.ErrNotExist)

	_, err = fl.Open("nodir/file.txt")
	assert.ErrorIs(err, fs.ErrNotExist)
	assert.False(fl.IsOpen())
}

func TestFile_NoFilesystem(t *testing.T) {
	assert := assert.New(t)

	fl := &File{}
	_, err := fl.Open("x")
	assert.ErrorIs(err, ErrFilesystem)
	assert.False(fl.Exists("x"))
}

func TestFile_Host(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	name := filepath.Join(root, "abs.txt")
	fl := &File{Filesystem: Host{}}

	atEnd, err := fl.Open(name)
	assert.NoError(err)
	assert.True(atEnd)
	assert.NoError(fl.Send(FORMAT_NUMBER, 42))
	assert.NoError(fl.Close())

	size, err := fl.Size(name)
	assert.NoError(err)
	assert.Equal(uint64(2), size)
	assert.True(fl.Exists(name))

	_, err = fl.Open(filepath.Join(root, "nodir", "abs.txt"))
	assert.ErrorIs(err, fs.ErrNotExist)

	assert.NoError(fl.Delete(name))
	assert.False(fl.Exists(name))
}
