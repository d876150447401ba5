package cpu

import (
	"errors"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrReadOnlyRegister = errors.New(f("register is read-only"))
	ErrDivideByZero     = errors.New(f("divide by zero"))
	ErrProgramLoaded    = errors.New(f("program already loaded"))
	ErrProgramSize      = errors.New(f("program does not fit in memory"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrOperandShape    = errors.New(f("operand shape invalid"))
	ErrOperand1        = errors.New(f("operand 1"))
	ErrOperand2        = errors.New(f("operand 2"))
	ErrOperand3        = errors.New(f("operand 3"))
)

var _err_operand = [...]error{ErrOperand1, ErrOperand2, ErrOperand3}

// ErrOpcode is the opcode of a failing instruction.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%x %v", Opcode(eo).Bytes(), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrRegisterByte is an invalid register encoding.
type ErrRegisterByte byte

func (err ErrRegisterByte) Error() string {
	return f("register byte 0x%02x invalid", byte(err))
}

func (err ErrRegisterByte) Is(target error) bool {
	return target == ErrRegisterInvalid
}

// ErrRegisterName is an unknown register name.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("register '%v' unknown", string(err))
}

func (err ErrRegisterName) Is(target error) bool {
	return target == ErrRegisterInvalid
}
