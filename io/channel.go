// Package io provides the I/O channels of the virtual processor.
// It includes the console (sequential byte input and output), the single
// open file channel, the text formats used to send values to a channel,
// and the sandboxed filesystem the file channel operates on.
package io

// Channel defines the interface for the console and file channels.
// Channels operate at the byte level.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads the next byte from the channel.
	Receive() (value byte, err error)
	// Send writes a value to the channel in the requested format.
	Send(format Format, value uint64) error
}
