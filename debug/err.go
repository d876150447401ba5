package debug

import (
	"errors"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	ErrAddress = errors.New(f("address out of range"))
)

// ErrCondition is an invalid breakpoint condition.
type ErrCondition string

func (err ErrCondition) Error() string {
	return f("condition %q invalid", string(err))
}
