package cpu

import (
	"github.com/ezrec/vproc/memory"
)

// The stack lives in memory, growing toward address 0 from the top of
// memory. rso addresses the most recently pushed qword.

// CALL_FRAME_SIZE is the size of the pair pushed by a call.
const CALL_FRAME_SIZE = 2 * memory.WIDTH_QWORD

// Push a qword onto the stack.
func (cpu *Cpu) Push(value uint64) (err error) {
	sp := cpu.Register[REG_RSO] - memory.WIDTH_QWORD

	err = cpu.Memory.Write64(sp, value)
	if err != nil {
		return
	}

	cpu.Register[REG_RSO] = sp
	return
}

// Peek at the qword on the top of the stack.
func (cpu *Cpu) Peek() (value uint64, err error) {
	return cpu.Memory.Read64(cpu.Register[REG_RSO])
}

// Pop a qword from the stack.
func (cpu *Cpu) Pop() (value uint64, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[REG_RSO] += memory.WIDTH_QWORD
	return
}

// call pushes the call frame pair: the return address, then the stack
// pointer as it was before the call. Execution continues at target.
func (cpu *Cpu) call(target uint64, ret uint64) (err error) {
	old := cpu.Register[REG_RSO]

	_, err = cpu.Memory.Span(old-CALL_FRAME_SIZE, CALL_FRAME_SIZE)
	if err != nil {
		return
	}

	err = cpu.Memory.Write64(old-memory.WIDTH_QWORD, ret)
	if err != nil {
		return
	}

	err = cpu.Memory.Write64(old-CALL_FRAME_SIZE, old)
	if err != nil {
		return
	}

	cpu.Register[REG_RSO] = old - CALL_FRAME_SIZE
	cpu.next = target

	return
}

// frame reads the call frame pair at the top of the stack.
func (cpu *Cpu) frame() (base uint64, ret uint64, err error) {
	sp := cpu.Register[REG_RSO]

	base, err = cpu.Memory.Read64(sp)
	if err != nil {
		return
	}

	ret, err = cpu.Memory.Read64(sp + memory.WIDTH_QWORD)
	return
}

// ret pops the call frame pair. The saved stack pointer goes to rsb and
// execution continues at the return address.
func (cpu *Cpu) ret() (err error) {
	base, ret, err := cpu.frame()
	if err != nil {
		return
	}

	cpu.Register[REG_RSB] = base
	cpu.Register[REG_RSO] += CALL_FRAME_SIZE
	cpu.next = ret

	return
}
