package cpu

import (
	"errors"

	"github.com/ezrec/vproc/io"
	"github.com/ezrec/vproc/memory"
)

func execNop(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	return
}

func execJump(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	target, err := cpu.address(ops[0])
	if err != nil {
		return
	}

	if ins.Condition.Test(cpu.Flags()) {
		cpu.next = target
	}

	return
}

func execAlu(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	dest := ops[0].Register
	if !ins.Discard && dest == REG_RPO {
		err = errors.Join(ErrOperand1, ErrReadOnlyRegister)
		return
	}

	a := cpu.Register[dest]
	b := ins.Implied
	if len(ops) > 1 {
		b, err = cpu.value(ops[1], ins.Width)
		if err != nil {
			err = errors.Join(ErrOperand2, err)
			return
		}
	}

	result, flags, affected, err := Alu(ins.AluOp, a, b)
	if err != nil {
		return
	}

	if !ins.Discard {
		cpu.Register[dest] = result
	}
	cpu.setFlags(flags, affected)

	return
}

// Remainder operation of each division.
var _remainder_op = map[AluOp]AluOp{
	ALU_OP_DIV:  ALU_OP_REM,
	ALU_OP_SDIV: ALU_OP_SREM,
}

func execDivideRemainder(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	for n := range 2 {
		if ops[n].Register == REG_RPO {
			err = errors.Join(_err_operand[n], ErrReadOnlyRegister)
			return
		}
	}

	a := cpu.Register[ops[0].Register]
	b, err := cpu.value(ops[2], ins.Width)
	if err != nil {
		err = errors.Join(ErrOperand3, err)
		return
	}

	quotient, flags, affected, err := Alu(ins.AluOp, a, b)
	if err != nil {
		return
	}
	remainder, _, _, err := Alu(_remainder_op[ins.AluOp], a, b)
	if err != nil {
		return
	}

	cpu.Register[ops[0].Register] = quotient
	cpu.Register[ops[1].Register] = remainder
	cpu.setFlags(flags, affected)

	return
}

func execRandom(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	value := cpu.Random.Uint64()

	err = cpu.setRegister(ops[0].Register, value)
	if err != nil {
		return
	}

	cpu.setFlags(flagsOf(value), FLAG_ZERO|FLAG_SIGN)
	return
}

func execMove(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	if ops[0].Shape == SHAPE_REG && ops[0].Register == REG_RPO {
		err = errors.Join(ErrOperand1, ErrReadOnlyRegister)
		return
	}

	value, err := cpu.value(ops[1], ins.Width)
	if err != nil {
		err = errors.Join(ErrOperand2, err)
		return
	}

	width := ins.Width
	if ins.Signed {
		value = SignExtend(value, width)
		width = memory.WIDTH_QWORD
	}

	err = cpu.store(ops[0], width, value)
	if err != nil {
		err = errors.Join(ErrOperand1, err)
		return
	}

	return
}

func execPush(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	value, err := cpu.value(ops[0], ins.Width)
	if err != nil {
		return
	}

	err = cpu.Push(value)
	return
}

func execPop(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	dest := ops[0].Register
	if dest == REG_RPO {
		err = ErrReadOnlyRegister
		return
	}

	value, err := cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[dest] = value
	cpu.Register[REG_RSO] += memory.WIDTH_QWORD

	return
}

func execCall(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	target, err := cpu.address(ops[0])
	if err != nil {
		return
	}

	var frame uint64
	if len(ops) > 1 {
		frame, err = cpu.value(ops[1], ins.Width)
		if err != nil {
			err = errors.Join(ErrOperand2, err)
			return
		}
	}

	err = cpu.call(target, cpu.next)
	if err != nil {
		return
	}

	if len(ops) > 1 {
		cpu.Register[REG_RFP] = frame
	}

	return
}

func execReturn(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	var result uint64
	if len(ops) > 0 {
		result, err = cpu.value(ops[0], ins.Width)
		if err != nil {
			return
		}
	}

	err = cpu.ret()
	if err != nil {
		return
	}

	if len(ops) > 0 {
		cpu.Register[REG_RRV] = result
	}

	return
}

// channel returns the I/O channel of a target.
func (cpu *Cpu) channel(target Target) (ch io.Channel) {
	switch target {
	case TARGET_FILE:
		ch = cpu.File
	default:
		ch = cpu.Console
	}
	return
}

func execWrite(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	value, err := cpu.value(ops[0], ins.Width)
	if err != nil {
		return
	}

	err = cpu.channel(ins.Target).Send(ins.Format, value)
	return
}

func execRead(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	dest := ops[0].Register
	if dest == REG_RPO {
		err = ErrReadOnlyRegister
		return
	}

	value, err := cpu.channel(ins.Target).Receive()
	if err != nil {
		return
	}

	cpu.Register[dest] = uint64(value)

	if ins.Target == TARGET_FILE && cpu.File.AtEnd() {
		cpu.setFlags(FLAG_FILE_END, FLAG_FILE_END)
	}

	return
}

// path reads the null terminated path referred to by an operand.
func (cpu *Cpu) path(op Operand) (path string, err error) {
	addr, err := cpu.address(op)
	if err != nil {
		return
	}

	path, err = cpu.Memory.CString(addr)
	return
}

func execFileOpen(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	path, err := cpu.path(ops[0])
	if err != nil {
		return
	}

	atEnd, err := cpu.File.Open(path)
	if err != nil {
		return
	}

	if atEnd {
		cpu.setFlags(FLAG_FILE_END, FLAG_FILE_END)
	} else {
		cpu.setFlags(0, FLAG_FILE_END)
	}

	return
}

func execFileClose(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	return cpu.File.Close()
}

func execFileDelete(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	path, err := cpu.path(ops[0])
	if err != nil {
		return
	}

	err = cpu.File.Delete(path)
	return
}

func execFileExists(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	dest := ops[0].Register
	if dest == REG_RPO {
		err = errors.Join(ErrOperand1, ErrReadOnlyRegister)
		return
	}

	path, err := cpu.path(ops[1])
	if err != nil {
		err = errors.Join(ErrOperand2, err)
		return
	}

	var exists uint64
	if cpu.File.Exists(path) {
		exists = 1
	}

	cpu.Register[dest] = exists

	return
}

func execFileSize(cpu *Cpu, ins *Instruction, ops []Operand) (err error) {
	dest := ops[0].Register
	if dest == REG_RPO {
		err = errors.Join(ErrOperand1, ErrReadOnlyRegister)
		return
	}

	path, err := cpu.path(ops[1])
	if err != nil {
		err = errors.Join(ErrOperand2, err)
		return
	}

	size, err := cpu.File.Size(path)
	if err != nil {
		return
	}

	cpu.Register[dest] = size

	return
}
