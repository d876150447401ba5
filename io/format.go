package io

import (
	"fmt"
	"io"
	"strconv"
)

//go:generate go tool stringer -linecomment -type=Format

// Format is the text representation of a value sent to a channel.
type Format int

const (
	FORMAT_NUMBER = Format(0) // number
	FORMAT_BYTE   = Format(1) // byte
	FORMAT_HEX    = Format(2) // hex
	FORMAT_RAW    = Format(3) // raw

	FORMAT_SIGNED_NUMBER = Format(4) // signed-number
	FORMAT_SIGNED_BYTE   = Format(5) // signed-byte
)

// AppendAs appends the formatted value to buf.
//   - FORMAT_NUMBER: unsigned decimal of the full 64-bit value.
//   - FORMAT_BYTE: unsigned decimal of the low byte.
//   - FORMAT_HEX: two digit uppercase hex of the low byte.
//   - FORMAT_RAW: the low byte, verbatim.
//   - FORMAT_SIGNED_NUMBER: two's complement decimal of the full value.
//   - FORMAT_SIGNED_BYTE: two's complement decimal of the low byte.
func AppendAs(buf []byte, format Format, value uint64) (out []byte, err error) {
	switch format {
	case FORMAT_NUMBER:
		out = strconv.AppendUint(buf, value, 10)
	case FORMAT_BYTE:
		out = strconv.AppendUint(buf, value&0xff, 10)
	case FORMAT_HEX:
		out = fmt.Appendf(buf, "%02X", uint8(value))
	case FORMAT_RAW:
		out = append(buf, byte(value))
	case FORMAT_SIGNED_NUMBER:
		out = strconv.AppendInt(buf, int64(value), 10)
	case FORMAT_SIGNED_BYTE:
		out = strconv.AppendInt(buf, int64(int8(value)), 10)
	default:
		err = ErrFormat(format)
	}

	return
}

// WriteAs writes the formatted value to w.
func WriteAs(w io.Writer, format Format, value uint64) (err error) {
	var scratch [20]byte
	data, err := AppendAs(scratch[:0], format, value)
	if err != nil {
		return
	}

	_, err = w.Write(data)
	return
}
