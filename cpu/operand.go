package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/ezrec/vproc/memory"
)

// Pointer operand byte encoding.
const (
	PTR_REG_MASK      = 0x0f // Base register.
	PTR_WIDTH_MASK    = 0x30 // Read width selector.
	PTR_WIDTH_DEFAULT = 0x00 // Instruction width.
	PTR_WIDTH_BYTE    = 0x10 // 1 byte.
	PTR_WIDTH_WORD    = 0x20 // 2 bytes.
	PTR_WIDTH_DWORD   = 0x30 // 4 bytes.
	PTR_DISP_CONST    = 0x40 // 8 byte displacement follows.
	PTR_DISP_REG      = 0x80 // Displacement register byte follows.
)

// LITERAL_SIZE is the encoded size of literals and addresses.
const LITERAL_SIZE = 8

// Operand is a decoded instruction operand.
type Operand struct {
	Shape    Shape
	Register Register // Register, or pointer base register.
	Value    uint64   // Literal, address, or pointer constant displacement.
	Width    int      // Pointer read width, 0 for the instruction width.
	Index    Register // Pointer displacement register.
	Mode     byte     // Pointer PTR_DISP_* bits.
}

// Reg makes a register operand.
func Reg(reg Register) Operand {
	return Operand{Shape: SHAPE_REG, Register: reg}
}

// Lit makes a literal operand.
func Lit(value uint64) Operand {
	return Operand{Shape: SHAPE_LIT, Value: value}
}

// Adr makes an address operand.
func Adr(addr uint64) Operand {
	return Operand{Shape: SHAPE_ADR, Value: addr}
}

// Ptr makes a pointer operand through a register.
func Ptr(reg Register) Operand {
	return Operand{Shape: SHAPE_PTR, Register: reg}
}

// Sized sets the read width of a pointer operand.
func (op Operand) Sized(width int) Operand {
	op.Width = width
	return op
}

// Offset adds a constant displacement to a pointer operand.
func (op Operand) Offset(disp int64) Operand {
	op.Mode |= PTR_DISP_CONST
	op.Value = uint64(disp)
	return op
}

// Indexed adds a register displacement to a pointer operand.
func (op Operand) Indexed(reg Register) Operand {
	op.Mode |= PTR_DISP_REG
	op.Index = reg
	return op
}

// Len is the encoded length of the operand, in bytes.
func (op Operand) Len() (size uint64) {
	switch op.Shape {
	case SHAPE_REG:
		size = 1
	case SHAPE_LIT, SHAPE_ADR:
		size = LITERAL_SIZE
	case SHAPE_PTR:
		size = 1
		if op.Mode&PTR_DISP_CONST != 0 {
			size += LITERAL_SIZE
		}
		if op.Mode&PTR_DISP_REG != 0 {
			size++
		}
	}
	return
}

// Append the encoded operand to buf.
func (op Operand) Append(buf []byte) []byte {
	switch op.Shape {
	case SHAPE_REG:
		buf = append(buf, byte(op.Register))
	case SHAPE_LIT, SHAPE_ADR:
		buf = binary.LittleEndian.AppendUint64(buf, op.Value)
	case SHAPE_PTR:
		mode := byte(op.Register)&PTR_REG_MASK | op.Mode&(PTR_DISP_CONST|PTR_DISP_REG)
		switch op.Width {
		case memory.WIDTH_BYTE:
			mode |= PTR_WIDTH_BYTE
		case memory.WIDTH_WORD:
			mode |= PTR_WIDTH_WORD
		case memory.WIDTH_DWORD:
			mode |= PTR_WIDTH_DWORD
		}
		buf = append(buf, mode)
		if op.Mode&PTR_DISP_CONST != 0 {
			buf = binary.LittleEndian.AppendUint64(buf, op.Value)
		}
		if op.Mode&PTR_DISP_REG != 0 {
			buf = append(buf, byte(op.Index))
		}
	}
	return buf
}

func (op Operand) String() (text string) {
	switch op.Shape {
	case SHAPE_REG:
		text = op.Register.String()
	case SHAPE_LIT:
		text = fmt.Sprintf("%d", op.Value)
	case SHAPE_ADR:
		text = fmt.Sprintf(":0x%x", op.Value)
	case SHAPE_PTR:
		switch op.Width {
		case memory.WIDTH_BYTE:
			text = "B"
		case memory.WIDTH_WORD:
			text = "W"
		case memory.WIDTH_DWORD:
			text = "D"
		}
		text += "*" + op.Register.String()
		switch op.Mode & (PTR_DISP_CONST | PTR_DISP_REG) {
		case PTR_DISP_CONST:
			text += fmt.Sprintf("[%+d]", int64(op.Value))
		case PTR_DISP_REG:
			text += fmt.Sprintf("[%v]", op.Index)
		case PTR_DISP_CONST | PTR_DISP_REG:
			text += fmt.Sprintf("[%v%+d]", op.Index, int64(op.Value))
		}
	default:
		text = "?"
	}
	return
}

// Encode an instruction.
func Encode(opcode Opcode, operands ...Operand) (code []byte) {
	code = append(code, opcode.Bytes()...)
	for _, op := range operands {
		code = op.Append(code)
	}
	return
}

func decodeRegister(value byte) (reg Register, err error) {
	reg = Register(value)
	if !reg.Valid() {
		err = ErrRegisterByte(value)
	}
	return
}

// decodeOperand decodes an operand of the given shape at addr.
func decodeOperand(mem *memory.Memory, shape Shape, addr uint64) (op Operand, next uint64, err error) {
	op.Shape = shape
	next = addr

	switch shape {
	case SHAPE_REG:
		var value uint8
		value, err = mem.Read8(next)
		if err != nil {
			return
		}
		op.Register, err = decodeRegister(value)
		if err != nil {
			return
		}
		next++
	case SHAPE_LIT, SHAPE_ADR:
		op.Value, err = mem.Read64(next)
		if err != nil {
			return
		}
		next += LITERAL_SIZE
	case SHAPE_PTR:
		var mode uint8
		mode, err = mem.Read8(next)
		if err != nil {
			return
		}
		next++
		op.Register = Register(mode & PTR_REG_MASK)
		op.Mode = mode & (PTR_DISP_CONST | PTR_DISP_REG)
		switch mode & PTR_WIDTH_MASK {
		case PTR_WIDTH_BYTE:
			op.Width = memory.WIDTH_BYTE
		case PTR_WIDTH_WORD:
			op.Width = memory.WIDTH_WORD
		case PTR_WIDTH_DWORD:
			op.Width = memory.WIDTH_DWORD
		}
		if mode&PTR_DISP_CONST != 0 {
			op.Value, err = mem.Read64(next)
			if err != nil {
				return
			}
			next += LITERAL_SIZE
		}
		if mode&PTR_DISP_REG != 0 {
			var value uint8
			value, err = mem.Read8(next)
			if err != nil {
				return
			}
			op.Index, err = decodeRegister(value)
			if err != nil {
				return
			}
			next++
		}
	default:
		err = ErrOperandShape
	}

	return
}

// address returns the memory address referred to by an adr or ptr operand.
func (cpu *Cpu) address(op Operand) (addr uint64, err error) {
	switch op.Shape {
	case SHAPE_ADR:
		addr = op.Value
	case SHAPE_PTR:
		addr = cpu.Register[op.Register]
		if op.Mode&PTR_DISP_CONST != 0 {
			addr += op.Value
		}
		if op.Mode&PTR_DISP_REG != 0 {
			addr += cpu.Register[op.Index]
		}
	default:
		err = ErrOperandShape
	}
	return
}

// value reads an operand, zero extended to 64 bits.
// Memory operands read width bytes, unless a pointer selects its own width.
func (cpu *Cpu) value(op Operand, width int) (value uint64, err error) {
	switch op.Shape {
	case SHAPE_REG:
		value = cpu.Register[op.Register]
	case SHAPE_LIT:
		value = op.Value
	case SHAPE_ADR, SHAPE_PTR:
		var addr uint64
		addr, err = cpu.address(op)
		if err != nil {
			return
		}
		if op.Width != 0 {
			width = op.Width
		}
		value, err = cpu.Memory.Read(addr, width)
	default:
		err = ErrOperandShape
	}
	return
}

// store writes the low width bytes of value to an operand.
// Register destinations receive the zero extended value.
func (cpu *Cpu) store(op Operand, width int, value uint64) (err error) {
	switch op.Shape {
	case SHAPE_REG:
		if width < memory.WIDTH_QWORD {
			value &= (uint64(1) << (8 * width)) - 1
		}
		err = cpu.setRegister(op.Register, value)
	case SHAPE_ADR, SHAPE_PTR:
		var addr uint64
		addr, err = cpu.address(op)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(addr, width, value)
	default:
		err = ErrOperandShape
	}
	return
}
