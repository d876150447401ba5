package io

import (
	"errors"
	"io"
	"os"
)

// File is the single open file channel.
// At most one file is open at a time. Reads and writes share one cursor.
type File struct {
	Filesystem Filesystem // Filesystem the file channel operates on.

	Name   string // Name of the open file.
	Offset int64  // Cursor offset in the open file.
	Length int64  // Length of the open file.

	handle Handle
}

var _ Channel = (*File)(nil)

// IsOpen returns true if a file is open.
func (fl *File) IsOpen() bool {
	return fl.handle != nil
}

// AtEnd returns true if the cursor is at the end of the open file.
func (fl *File) AtEnd() bool {
	return fl.Offset >= fl.Length
}

// Rewind closes any open file.
func (fl *File) Rewind() {
	if fl.handle != nil {
		fl.handle.Close()
	}
	fl.handle = nil
	fl.Name = ""
	fl.Offset = 0
	fl.Length = 0
}

// Open opens or creates a file for reading and writing.
// Returns true in atEnd if the file is empty.
func (fl *File) Open(name string) (atEnd bool, err error) {
	if fl.handle != nil {
		err = errors.Join(ErrFileOperation, ErrFileOpen)
		return
	}

	if fl.Filesystem == nil {
		err = errors.Join(ErrFileOperation, ErrFilesystem)
		return
	}

	handle, err := fl.Filesystem.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return
	}

	info, err := handle.Stat()
	if err != nil {
		handle.Close()
		return
	}

	fl.handle = handle
	fl.Name = name
	fl.Offset = 0
	fl.Length = info.Size()

	atEnd = fl.AtEnd()
	return
}

// Close closes the open file.
func (fl *File) Close() (err error) {
	if fl.handle == nil {
		err = errors.Join(ErrFileOperation, ErrFileClosed)
		return
	}

	err = fl.handle.Close()
	fl.handle = nil
	fl.Name = ""
	fl.Offset = 0
	fl.Length = 0

	return
}

// Receive reads the byte at the cursor, and advances the cursor.
func (fl *File) Receive() (value byte, err error) {
	if fl.handle == nil {
		err = errors.Join(ErrFileOperation, ErrFileClosed)
		return
	}

	if fl.AtEnd() {
		err = errors.Join(ErrFileOperation, ErrFileEnd)
		return
	}

	var one [1]byte
	_, err = io.ReadFull(fl.handle, one[:])
	if err != nil {
		return
	}

	value = one[0]
	fl.Offset++

	return
}

// Send writes the formatted value at the cursor, and advances the cursor.
func (fl *File) Send(format Format, value uint64) (err error) {
	if fl.handle == nil {
		err = errors.Join(ErrFileOperation, ErrFileClosed)
		return
	}

	var scratch [20]byte
	data, err := AppendAs(scratch[:0], format, value)
	if err != nil {
		return
	}

	n, err := fl.handle.Write(data)
	fl.Offset += int64(n)
	fl.Length = max(fl.Length, fl.Offset)

	return
}

// Delete removes a file.
func (fl *File) Delete(name string) (err error) {
	if fl.Filesystem == nil {
		err = errors.Join(ErrFileOperation, ErrFilesystem)
		return
	}

	err = fl.Filesystem.Remove(name)
	return
}

// Exists returns true if the named file exists.
// Any failure to locate the file reports false.
func (fl *File) Exists(name string) (exists bool) {
	if fl.Filesystem == nil {
		return
	}

	info, err := fl.Filesystem.Stat(name)
	if err != nil {
		return
	}

	exists = !info.IsDir()
	return
}

// Size returns the length of the named file.
func (fl *File) Size(name string) (size uint64, err error) {
	if fl.Filesystem == nil {
		err = errors.Join(ErrFileOperation, ErrFilesystem)
		return
	}

	info, err := fl.Filesystem.Stat(name)
	if err != nil {
		return
	}

	size = uint64(info.Size())
	return
}
