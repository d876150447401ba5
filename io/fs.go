package io

import (
	"io"
	"io/fs"
	"os"
)

// Handle is an open file on a Filesystem.
type Handle interface {
	io.ReadWriteCloser
	Stat() (fs.FileInfo, error)
}

// Filesystem defines the file operations available to the file channel.
// Paths are slash separated and relative to the filesystem root.
type Filesystem interface {
	// OpenFile opens a file, with os.OpenFile flag semantics.
	OpenFile(name string, flag int, perm fs.FileMode) (file Handle, err error)
	// Remove deletes a file.
	Remove(name string) (err error)
	// Stat returns the file information.
	Stat(name string) (info fs.FileInfo, err error)
}

// Host is a Filesystem over host paths, absolute or relative to the
// working directory.
type Host struct{}

var _ Filesystem = Host{}

// OpenFile opens a host file.
func (Host) OpenFile(name string, flag int, perm fs.FileMode) (file Handle, err error) {
	osfile, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return
	}

	file = osfile
	return
}

// Remove deletes a host file.
func (Host) Remove(name string) error {
	return os.Remove(name)
}

// Stat returns the file information of a host file.
func (Host) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Dir is a Filesystem confined to a host directory.
// Paths that escape the directory fail.
type Dir struct {
	Root *os.Root
}

var _ Filesystem = (*Dir)(nil)

// OpenDir opens a host directory as a Filesystem.
func OpenDir(path string) (dir *Dir, err error) {
	root, err := os.OpenRoot(path)
	if err != nil {
		return
	}

	dir = &Dir{Root: root}
	return
}

// Close releases the host directory.
func (dir *Dir) Close() error {
	return dir.Root.Close()
}

// OpenFile opens a file within the directory.
func (dir *Dir) OpenFile(name string, flag int, perm fs.FileMode) (file Handle, err error) {
	osfile, err := dir.Root.OpenFile(name, flag, perm)
	if err != nil {
		return
	}

	file = osfile
	return
}

// Remove deletes a file within the directory.
func (dir *Dir) Remove(name string) error {
	return dir.Root.Remove(name)
}

// Stat returns the file information of a file within the directory.
func (dir *Dir) Stat(name string) (fs.FileInfo, error) {
	return dir.Root.Stat(name)
}
