package io

import (
	"errors"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrConsoleEnd    = errors.New(f("console input exhausted"))
	ErrFileOperation = errors.New(f("file operation invalid"))
	ErrFileOpen      = errors.New(f("file already open"))
	ErrFileClosed    = errors.New(f("no file open"))
	ErrFileEnd       = errors.New(f("read past end of file"))
	ErrFilesystem    = errors.New(f("no filesystem attached"))
)

// ErrFormat is an unknown channel format.
type ErrFormat Format

func (err ErrFormat) Error() string {
	return f("format %d unknown", int(err))
}
