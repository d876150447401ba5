package memory

import (
	"errors"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	ErrRange = errors.New(f("memory access out of range"))
	ErrSize  = errors.New(f("memory access width invalid"))
)

// ErrAccess is an access to a span of memory outside of the memory bounds.
type ErrAccess struct {
	Address uint64
	Size    uint64
}

func (err ErrAccess) Error() string {
	return f("memory access 0x%x+%d out of range", err.Address, err.Size)
}

func (err ErrAccess) Is(target error) bool {
	return target == ErrRange
}

// ErrWidth is an unsupported access width.
type ErrWidth int

func (err ErrWidth) Error() string {
	return f("memory access width %d invalid", int(err))
}

func (err ErrWidth) Is(target error) bool {
	return target == ErrSize
}
