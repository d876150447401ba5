package io

import (
	"errors"
	"io"
	"iter"
	"maps"
)

// CONSOLE_READ_RETRIES bounds the empty reads tolerated from Input.
const CONSOLE_READ_RETRIES = 100

// Console provides sequential byte I/O with the outside world.
// It wraps an io.Reader for input and an io.Writer for output.
// A nil Output discards everything written, a nil Input is always empty.
type Console struct {
	Input  io.Reader
	Output io.Writer
	Echo   bool // If set, bytes received are echoed to Output.
}

var _ Channel = (*Console)(nil)

// Defines returns an iter of defines for the channel.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind is not possible on a console.
func (con *Console) Rewind() {
}

// Receive reads the next input byte.
// Returns ErrConsoleEnd once the input is exhausted.
func (con *Console) Receive() (value byte, err error) {
	if con.Input == nil {
		err = ErrConsoleEnd
		return
	}

	var one [1]byte
	for retry := 0; ; retry++ {
		if retry == CONSOLE_READ_RETRIES {
			err = io.ErrNoProgress
			return
		}
		var n int
		n, err = con.Input.Read(one[:])
		if n == 1 {
			err = nil
			break
		}
		if errors.Is(err, io.EOF) {
			err = ErrConsoleEnd
			return
		}
		if err != nil {
			return
		}
	}

	value = one[0]

	if con.Echo && con.Output != nil {
		_, err = con.Output.Write(one[:])
	}

	return
}

// Send writes the formatted value to the output.
func (con *Console) Send(format Format, value uint64) (err error) {
	out := con.Output
	if out == nil {
		out = io.Discard
	}

	err = WriteAs(out, format, value)
	return
}
