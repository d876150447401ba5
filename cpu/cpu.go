package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/vproc/internal"
	"github.com/ezrec/vproc/io"
	"github.com/ezrec/vproc/memory"
)

var _cpu_defines = map[string]string{}

func init() {
	for n := range REGISTER_COUNT {
		reg := Register(n)
		_cpu_defines["REG_"+reg.String()] = fmt.Sprintf("%d", n)
	}
	for _, entry := range _flag_names {
		_cpu_defines["FLAG_"+entry.Name] = fmt.Sprintf("0x%x", uint64(entry.Flag))
	}
}

// Cpu is the simulation context of the virtual processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   *memory.Memory         // Main memory.
	Register [REGISTER_COUNT]uint64 // Register bank.
	Random   Random                 // Source for RNG.
	Console  *io.Console            // Console channel.
	File     *io.File               // File channel.

	Ticks int // Instructions executed.

	loaded bool   // Set once a program is loaded.
	next   uint64 // Program counter after the current instruction.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size uint64) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:  memory.NewMemory(size),
		Random:  NewRandom(rand.Uint64()),
		Console: &io.Console{},
		File:    &io.File{Filesystem: io.Host{}},
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines),
		cpu.Memory.Defines(),
	)
}

// Close releases the open file, if any.
func (cpu *Cpu) Close() (err error) {
	if cpu.File.IsOpen() {
		err = cpu.File.Close()
	}
	return
}

// Flags returns the status flags.
func (cpu *Cpu) Flags() Flags {
	return Flags(cpu.Register[REG_RSF])
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint64 {
	return cpu.Register[REG_RPO]
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		reg := Register(n)
		var extra string
		switch reg {
		case REG_RSF:
			extra = " " + Flags(val).String()
		}
		text += fmt.Sprintf("% 5s: %08X_%08X%v\n", reg, val>>32, val&0xffffffff, extra)
	}

	return
}

// Reset the CPU state.
// - Clears the memory and registers.
// - Sets the stack pointer and frame base to the top of memory.
// - Closes any open file.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Register[REG_RSO] = cpu.Memory.Size()
	cpu.Register[REG_RSB] = cpu.Memory.Size()
	cpu.File.Rewind()
	cpu.Console.Rewind()
	cpu.Ticks = 0
	cpu.loaded = false
}

// LoadProgram copies the program image into memory at the program counter.
func (cpu *Cpu) LoadProgram(program []byte) (err error) {
	if cpu.loaded {
		err = ErrProgramLoaded
		return
	}

	pc := cpu.Register[REG_RPO]
	size := uint64(len(program))
	if size > cpu.Memory.Size() || pc > cpu.Memory.Size()-size {
		err = ErrProgramSize
		return
	}

	err = cpu.Memory.Load(pc, program)
	if err != nil {
		return
	}

	cpu.loaded = true

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%x", size, pc)
	}

	return
}

// setRegister writes a register on behalf of an instruction.
func (cpu *Cpu) setRegister(reg Register, value uint64) (err error) {
	if reg == REG_RPO {
		err = ErrReadOnlyRegister
		return
	}

	cpu.Register[reg] = value
	return
}

// setFlags replaces the affected flags.
func (cpu *Cpu) setFlags(flags Flags, affected Flags) {
	cpu.Register[REG_RSF] = uint64(cpu.Flags()&^affected | flags&affected)
}

// Decode the instruction at addr.
// Returns the instruction, its operands, and the address following it.
func (cpu *Cpu) Decode(addr uint64) (ins *Instruction, operands []Operand, next uint64, err error) {
	ins, operands, _, next, err = cpu.decode(addr)
	return
}

// decode also returns the address following the opcode bytes, which is
// valid even when decoding fails.
func (cpu *Cpu) decode(addr uint64) (ins *Instruction, operands []Operand, body uint64, next uint64, err error) {
	body = addr
	code, err := cpu.Memory.Read8(body)
	if err != nil {
		return
	}
	body++

	opcode := Opcode(code)
	if opcode == OP_EXTENSION {
		var ext, low uint8
		ext, err = cpu.Memory.Read8(body)
		if err == nil {
			low, err = cpu.Memory.Read8(body + 1)
		}
		if err != nil {
			err = errors.Join(ErrOpcode(OP_EXTENSION), err)
			return
		}
		body += 2
		opcode = Opcode(ext)<<8 | Opcode(low)
	}

	next = body

	ins = opcode.Instruction()
	if ins == nil {
		err = errors.Join(ErrOpcode(opcode), ErrOpcodeInvalid)
		return
	}

	operands = make([]Operand, len(ins.Shapes))
	for n, shape := range ins.Shapes {
		operands[n], next, err = decodeOperand(cpu.Memory, shape, next)
		if err != nil {
			err = errors.Join(ErrOpcode(opcode), _err_operand[n], err)
			return
		}
	}

	return
}

// Step executes a single instruction.
// Returns true in halted if the instruction was HLT. The program counter
// is not advanced past a HLT. On error, the program counter is left past
// the opcode bytes of the failing instruction.
func (cpu *Cpu) Step() (halted bool, err error) {
	pc := cpu.Register[REG_RPO]

	ins, operands, body, next, err := cpu.decode(pc)
	if err != nil {
		if body > pc {
			cpu.Register[REG_RPO] = body
		}
		return
	}

	if cpu.Verbose {
		log.Printf("%016x: %v", pc, Disassemble(ins, operands))
	}

	cpu.Ticks++
	cpu.Register[REG_RPO] = body
	cpu.next = next

	if ins.Opcode == OP_HLT {
		cpu.Register[REG_RPO] = pc
		halted = true
		return
	}

	err = ins.exec(cpu, ins, operands)
	if err != nil {
		err = errors.Join(ErrOpcode(ins.Opcode), err)
		return
	}

	cpu.Register[REG_RPO] = cpu.next

	return
}

// Execute runs the processor.
// If run is false, a single instruction is executed; otherwise
// instructions execute until HLT or an error.
func (cpu *Cpu) Execute(run bool) (halted bool, err error) {
	for {
		halted, err = cpu.Step()
		if halted || err != nil || !run {
			return
		}
	}
}
