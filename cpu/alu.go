package cpu

import "math"

//go:generate go tool stringer -linecomment -type=AluOp

// AluOp is an ALU operation.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_REM = AluOp(4)  // rem
	ALU_OP_SHL = AluOp(5)  // shl
	ALU_OP_SHR = AluOp(6)  // shr
	ALU_OP_AND = AluOp(7)  // and
	ALU_OP_OR  = AluOp(8)  // or
	ALU_OP_XOR = AluOp(9)  // xor
	ALU_OP_NOT = AluOp(10) // not

	ALU_OP_SDIV = AluOp(11) // sdiv
	ALU_OP_SREM = AluOp(12) // srem
	ALU_OP_SAR  = AluOp(13) // sar
	ALU_OP_NEG  = AluOp(14) // neg
	ALU_OP_SEXT = AluOp(15) // sext
)

// flagsOf returns the Zero and Sign flags of a result.
func flagsOf(result uint64) (flags Flags) {
	if result == 0 {
		flags |= FLAG_ZERO
	}
	if result>>63 != 0 {
		flags |= FLAG_SIGN
	}
	return
}

// SignExtend widens the low width bytes of value to 64 bits.
func SignExtend(value uint64, width int) uint64 {
	if width <= 0 || width >= 8 {
		return value
	}
	shift := 64 - 8*uint(width)
	return uint64(int64(value<<shift) >> shift)
}

// Alu performs an ALU operation on a and b.
// Returns the result, the computed flags, and the mask of flags the
// operation affects. Flags outside of 'affected' must be left alone.
//
// The signed operations treat a and b as two's complement. For
// ALU_OP_SEXT, b is the width in bytes of a.
func Alu(op AluOp, a uint64, b uint64) (result uint64, flags Flags, affected Flags, err error) {
	affected = FLAG_ARITH

	switch op {
	case ALU_OP_ADD:
		result = a + b
		flags = flagsOf(result)
		if result < a {
			flags |= FLAG_CARRY
		}
		if ((a^result)&(b^result))>>63 != 0 {
			flags |= FLAG_OVERFLOW
		}
	case ALU_OP_SUB:
		result = a - b
		flags = flagsOf(result)
		if a < b {
			flags |= FLAG_CARRY
		}
		if ((a^b)&(a^result))>>63 != 0 {
			flags |= FLAG_OVERFLOW
		}
	case ALU_OP_MUL:
		result = a * b
		flags = flagsOf(result)
		if b != 0 && result < a {
			flags |= FLAG_CARRY
		}
	case ALU_OP_DIV:
		if b == 0 {
			err = ErrDivideByZero
			affected = 0
			return
		}
		result = a / b
		flags = flagsOf(result)
	case ALU_OP_REM:
		if b == 0 {
			err = ErrDivideByZero
			affected = 0
			return
		}
		result = a % b
		flags = flagsOf(result)
	case ALU_OP_SHL:
		switch {
		case b == 0:
			result = a
			affected = 0
		case b >= 64:
			result = 0
			flags = flagsOf(result)
			if a != 0 {
				flags |= FLAG_CARRY
			}
		default:
			result = a << b
			flags = flagsOf(result)
			if a>>(64-b) != 0 {
				flags |= FLAG_CARRY
			}
		}
	case ALU_OP_SHR:
		switch {
		case b == 0:
			result = a
			affected = 0
		case b >= 64:
			result = 0
			flags = flagsOf(result)
			if a != 0 {
				flags |= FLAG_CARRY
			}
		default:
			result = a >> b
			flags = flagsOf(result)
			if a&((uint64(1)<<b)-1) != 0 {
				flags |= FLAG_CARRY
			}
		}
	case ALU_OP_AND:
		result = a & b
		flags = flagsOf(result)
	case ALU_OP_OR:
		result = a | b
		flags = flagsOf(result)
	case ALU_OP_XOR:
		result = a ^ b
		flags = flagsOf(result)
	case ALU_OP_NOT:
		result = ^a
		flags = flagsOf(result)
	case ALU_OP_SDIV:
		if b == 0 {
			err = ErrDivideByZero
			affected = 0
			return
		}
		result = uint64(int64(a) / int64(b))
		flags = flagsOf(result)
		if a == 1<<63 && b == math.MaxUint64 {
			flags |= FLAG_OVERFLOW
		}
	case ALU_OP_SREM:
		if b == 0 {
			err = ErrDivideByZero
			affected = 0
			return
		}
		result = uint64(int64(a) % int64(b))
		flags = flagsOf(result)
	case ALU_OP_SAR:
		// Carry is set when any bit shifted out differs from the sign.
		fill := uint64(int64(a) >> 63)
		mask := uint64(math.MaxUint64)
		if b < 64 {
			mask = (uint64(1) << b) - 1
		}
		result = uint64(int64(a) >> min(b, 63))
		flags = flagsOf(result)
		if (a^fill)&mask != 0 {
			flags |= FLAG_CARRY
		}
	case ALU_OP_NEG:
		result = -a
		flags = flagsOf(result)
		if a == 1<<63 {
			flags |= FLAG_OVERFLOW
		}
	case ALU_OP_SEXT:
		result = SignExtend(a, int(b))
		flags = flagsOf(result)
	default:
		err = ErrOpcodeInvalid
		affected = 0
	}

	return
}
