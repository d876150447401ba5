package emulator

import (
	"errors"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint64
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("address 0x%x: %v", err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
