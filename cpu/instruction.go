package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/vproc/io"
	"github.com/ezrec/vproc/memory"
)

//go:generate go tool stringer -linecomment -type=Condition

// Condition is the flag test of a conditional jump.
// The base conditions compare as unsigned, the COND_S* conditions as
// two's complement.
type Condition int

const (
	COND_ALWAYS = Condition(0) // always
	COND_EQ     = Condition(1) // eq
	COND_NE     = Condition(2) // ne
	COND_LT     = Condition(3) // lt
	COND_LE     = Condition(4) // le
	COND_GT     = Condition(5) // gt
	COND_GE     = Condition(6) // ge

	COND_SLT      = Condition(7)  // slt
	COND_SLE      = Condition(8)  // sle
	COND_SGT      = Condition(9)  // sgt
	COND_SGE      = Condition(10) // sge
	COND_SIGN     = Condition(11) // sign
	COND_NOSIGN   = Condition(12) // nosign
	COND_OVERFLOW = Condition(13) // overflow
	COND_NOFLOW   = Condition(14) // noflow
)

// Test the condition against the flags.
func (cond Condition) Test(flags Flags) (ok bool) {
	zero := flags&FLAG_ZERO != 0
	carry := flags&FLAG_CARRY != 0
	sign := flags&FLAG_SIGN != 0
	overflow := flags&FLAG_OVERFLOW != 0

	switch cond {
	case COND_ALWAYS:
		ok = true
	case COND_EQ:
		ok = zero
	case COND_NE:
		ok = !zero
	case COND_LT:
		ok = carry
	case COND_LE:
		ok = carry || zero
	case COND_GT:
		ok = !carry && !zero
	case COND_GE:
		ok = !carry
	case COND_SLT:
		ok = sign != overflow
	case COND_SLE:
		ok = zero || sign != overflow
	case COND_SGT:
		ok = !zero && sign == overflow
	case COND_SGE:
		ok = sign == overflow
	case COND_SIGN:
		ok = sign
	case COND_NOSIGN:
		ok = !sign
	case COND_OVERFLOW:
		ok = overflow
	case COND_NOFLOW:
		ok = !overflow
	}
	return
}

//go:generate go tool stringer -linecomment -type=Target

// Target is the channel of an I/O instruction.
type Target int

const (
	TARGET_CONSOLE = Target(0) // console
	TARGET_FILE    = Target(1) // file
)

type execFunc func(cpu *Cpu, ins *Instruction, ops []Operand) error

// Instruction is the definition of an opcode.
type Instruction struct {
	Opcode   Opcode
	Mnemonic string
	Shapes   []Shape // Operand shapes, in encoding order.
	Width    int     // Data width of memory operands.

	AluOp     AluOp     // ALU operation of arithmetic and logic.
	Implied   uint64    // Implied second operand of single operand ALU forms.
	Discard   bool      // ALU result is discarded, only flags are kept.
	Condition Condition // Condition of jumps.
	Format    io.Format // Format of channel writes.
	Target    Target    // Channel of writes.
	Signed    bool      // Moves sign extend into registers.

	exec execFunc
}

// Len returns the encoded length of the instruction with its operands.
func (ins *Instruction) Len(ops []Operand) (size uint64) {
	size = uint64(len(ins.Opcode.Bytes()))
	for _, op := range ops {
		size += op.Len()
	}
	return
}

// Disassemble an instruction and its operands.
func Disassemble(ins *Instruction, ops []Operand) string {
	if len(ops) == 0 {
		return ins.Mnemonic
	}

	args := make([]string, len(ops))
	for n, op := range ops {
		args[n] = op.String()
	}

	return ins.Mnemonic + " " + strings.Join(args, ", ")
}

var _instruction_table [EXTENSION_COUNT][256]*Instruction

func define(ins Instruction) {
	table := &_instruction_table[ins.Opcode.Extension()]
	if table[byte(ins.Opcode)] != nil {
		panic(fmt.Sprintf("opcode 0x%x defined twice", ins.Opcode.Bytes()))
	}
	if ins.Width == 0 {
		ins.Width = memory.WIDTH_QWORD
	}
	table[byte(ins.Opcode)] = &ins
}

var _source_shapes = [...]Shape{SHAPE_REG, SHAPE_LIT, SHAPE_ADR, SHAPE_PTR}

func defineJumps(base Opcode, mnemonic string, cond Condition) {
	define(Instruction{Opcode: base, Mnemonic: mnemonic, Shapes: []Shape{SHAPE_ADR}, Condition: cond, exec: execJump})
	define(Instruction{Opcode: base + 1, Mnemonic: mnemonic, Shapes: []Shape{SHAPE_PTR}, Condition: cond, exec: execJump})
}

func defineAlu(base Opcode, mnemonic string, op AluOp, discard bool) {
	for n, shape := range _source_shapes {
		define(Instruction{
			Opcode:   base + Opcode(n),
			Mnemonic: mnemonic,
			Shapes:   []Shape{SHAPE_REG, shape},
			AluOp:    op,
			Discard:  discard,
			exec:     execAlu,
		})
	}
}

func defineDivideRemainder(base Opcode, mnemonic string, op AluOp) {
	for n, shape := range _source_shapes {
		define(Instruction{
			Opcode:   base + Opcode(n),
			Mnemonic: mnemonic,
			Shapes:   []Shape{SHAPE_REG, SHAPE_REG, shape},
			AluOp:    op,
			exec:     execDivideRemainder,
		})
	}
}

// defineSignedMoves defines the register destination forms only.
func defineSignedMoves(base Opcode, mnemonic string, width int) {
	for n, shape := range _source_shapes {
		define(Instruction{
			Opcode:   base + Opcode(n),
			Mnemonic: mnemonic,
			Shapes:   []Shape{SHAPE_REG, shape},
			Width:    width,
			Signed:   true,
			exec:     execMove,
		})
	}
}

func defineMoves(base Opcode, mnemonic string, width int) {
	forms := [8][2]Shape{
		{SHAPE_REG, SHAPE_REG},
		{SHAPE_REG, SHAPE_LIT},
		{SHAPE_REG, SHAPE_ADR},
		{SHAPE_REG, SHAPE_PTR},
		{SHAPE_ADR, SHAPE_REG},
		{SHAPE_ADR, SHAPE_LIT},
		{SHAPE_PTR, SHAPE_REG},
		{SHAPE_PTR, SHAPE_LIT},
	}
	for n, form := range forms {
		define(Instruction{
			Opcode:   base + Opcode(n),
			Mnemonic: mnemonic,
			Shapes:   []Shape{form[0], form[1]},
			Width:    width,
			exec:     execMove,
		})
	}
}

func defineWrites(base Opcode, mnemonic string, target Target, format io.Format) {
	width := memory.WIDTH_BYTE
	if format == io.FORMAT_NUMBER || format == io.FORMAT_SIGNED_NUMBER {
		width = memory.WIDTH_QWORD
	}
	for n, shape := range _source_shapes {
		define(Instruction{
			Opcode:   base + Opcode(n),
			Mnemonic: mnemonic,
			Shapes:   []Shape{shape},
			Width:    width,
			Format:   format,
			Target:   target,
			exec:     execWrite,
		})
	}
}

func init() {
	define(Instruction{Opcode: OP_HLT, Mnemonic: "HLT", exec: execNop})
	define(Instruction{Opcode: OP_NOP, Mnemonic: "NOP", exec: execNop})
	defineJumps(OP_JMP_A, "JMP", COND_ALWAYS)
	defineJumps(OP_JEQ_A, "JEQ", COND_EQ)
	defineJumps(OP_JNE_A, "JNE", COND_NE)
	defineJumps(OP_JLT_A, "JLT", COND_LT)
	defineJumps(OP_JLE_A, "JLE", COND_LE)
	defineJumps(OP_JGT_A, "JGT", COND_GT)
	defineJumps(OP_JGE_A, "JGE", COND_GE)

	defineAlu(OP_ADD_RR, "ADD", ALU_OP_ADD, false)
	define(Instruction{Opcode: OP_ICR_R, Mnemonic: "ICR", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_ADD, Implied: 1, exec: execAlu})
	defineAlu(OP_SUB_RR, "SUB", ALU_OP_SUB, false)
	define(Instruction{Opcode: OP_DCR_R, Mnemonic: "DCR", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_SUB, Implied: 1, exec: execAlu})
	defineAlu(OP_MUL_RR, "MUL", ALU_OP_MUL, false)
	defineAlu(OP_DIV_RR, "DIV", ALU_OP_DIV, false)
	defineDivideRemainder(OP_DVR_RRR, "DVR", ALU_OP_DIV)
	defineAlu(OP_REM_RR, "REM", ALU_OP_REM, false)
	defineAlu(OP_SHL_RR, "SHL", ALU_OP_SHL, false)
	defineAlu(OP_SHR_RR, "SHR", ALU_OP_SHR, false)

	defineAlu(OP_AND_RR, "AND", ALU_OP_AND, false)
	defineAlu(OP_ORR_RR, "ORR", ALU_OP_OR, false)
	defineAlu(OP_XOR_RR, "XOR", ALU_OP_XOR, false)
	define(Instruction{Opcode: OP_NOT_R, Mnemonic: "NOT", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_NOT, exec: execAlu})
	define(Instruction{Opcode: OP_RNG_R, Mnemonic: "RNG", Shapes: []Shape{SHAPE_REG}, exec: execRandom})
	defineAlu(OP_TST_RR, "TST", ALU_OP_AND, true)
	defineAlu(OP_CMP_RR, "CMP", ALU_OP_SUB, true)

	defineMoves(OP_MVB_RR, "MVB", memory.WIDTH_BYTE)
	defineMoves(OP_MVW_RR, "MVW", memory.WIDTH_WORD)
	defineMoves(OP_MVD_RR, "MVD", memory.WIDTH_DWORD)
	defineMoves(OP_MVQ_RR, "MVQ", memory.WIDTH_QWORD)

	for n, shape := range _source_shapes {
		define(Instruction{Opcode: OP_PSH_R + Opcode(n), Mnemonic: "PSH", Shapes: []Shape{shape}, exec: execPush})
	}
	define(Instruction{Opcode: OP_POP_R, Mnemonic: "POP", Shapes: []Shape{SHAPE_REG}, exec: execPop})

	define(Instruction{Opcode: OP_CAL_A, Mnemonic: "CAL", Shapes: []Shape{SHAPE_ADR}, exec: execCall})
	define(Instruction{Opcode: OP_CAL_P, Mnemonic: "CAL", Shapes: []Shape{SHAPE_PTR}, exec: execCall})
	for n, shape := range _source_shapes {
		define(Instruction{Opcode: OP_CAL_AR + Opcode(n), Mnemonic: "CAL", Shapes: []Shape{SHAPE_ADR, shape}, exec: execCall})
		define(Instruction{Opcode: OP_CAL_PR + Opcode(n), Mnemonic: "CAL", Shapes: []Shape{SHAPE_PTR, shape}, exec: execCall})
	}
	define(Instruction{Opcode: OP_RET, Mnemonic: "RET", exec: execReturn})
	for n, shape := range _source_shapes {
		define(Instruction{Opcode: OP_RET_R + Opcode(n), Mnemonic: "RET", Shapes: []Shape{shape}, exec: execReturn})
	}

	defineWrites(OP_WCN_R, "WCN", TARGET_CONSOLE, io.FORMAT_NUMBER)
	defineWrites(OP_WCB_R, "WCB", TARGET_CONSOLE, io.FORMAT_BYTE)
	defineWrites(OP_WCX_R, "WCX", TARGET_CONSOLE, io.FORMAT_HEX)
	defineWrites(OP_WCC_R, "WCC", TARGET_CONSOLE, io.FORMAT_RAW)
	defineWrites(OP_WFN_R, "WFN", TARGET_FILE, io.FORMAT_NUMBER)
	defineWrites(OP_WFB_R, "WFB", TARGET_FILE, io.FORMAT_BYTE)
	defineWrites(OP_WFX_R, "WFX", TARGET_FILE, io.FORMAT_HEX)
	defineWrites(OP_WFC_R, "WFC", TARGET_FILE, io.FORMAT_RAW)

	define(Instruction{Opcode: OP_OFL_A, Mnemonic: "OFL", Shapes: []Shape{SHAPE_ADR}, exec: execFileOpen})
	define(Instruction{Opcode: OP_OFL_P, Mnemonic: "OFL", Shapes: []Shape{SHAPE_PTR}, exec: execFileOpen})
	define(Instruction{Opcode: OP_CFL, Mnemonic: "CFL", exec: execFileClose})
	define(Instruction{Opcode: OP_DFL_A, Mnemonic: "DFL", Shapes: []Shape{SHAPE_ADR}, exec: execFileDelete})
	define(Instruction{Opcode: OP_DFL_P, Mnemonic: "DFL", Shapes: []Shape{SHAPE_PTR}, exec: execFileDelete})
	define(Instruction{Opcode: OP_FEX_RA, Mnemonic: "FEX", Shapes: []Shape{SHAPE_REG, SHAPE_ADR}, exec: execFileExists})
	define(Instruction{Opcode: OP_FEX_RP, Mnemonic: "FEX", Shapes: []Shape{SHAPE_REG, SHAPE_PTR}, exec: execFileExists})
	define(Instruction{Opcode: OP_FSZ_RA, Mnemonic: "FSZ", Shapes: []Shape{SHAPE_REG, SHAPE_ADR}, exec: execFileSize})
	define(Instruction{Opcode: OP_FSZ_RP, Mnemonic: "FSZ", Shapes: []Shape{SHAPE_REG, SHAPE_PTR}, exec: execFileSize})
	define(Instruction{Opcode: OP_RCC_R, Mnemonic: "RCC", Shapes: []Shape{SHAPE_REG}, Target: TARGET_CONSOLE, exec: execRead})
	define(Instruction{Opcode: OP_RFC_R, Mnemonic: "RFC", Shapes: []Shape{SHAPE_REG}, Target: TARGET_FILE, exec: execRead})

	defineJumps(OP_SIGN_JLT_A, "SIGN_JLT", COND_SLT)
	defineJumps(OP_SIGN_JLE_A, "SIGN_JLE", COND_SLE)
	defineJumps(OP_SIGN_JGT_A, "SIGN_JGT", COND_SGT)
	defineJumps(OP_SIGN_JGE_A, "SIGN_JGE", COND_SGE)
	defineJumps(OP_SIGN_JSI_A, "SIGN_JSI", COND_SIGN)
	defineJumps(OP_SIGN_JNS_A, "SIGN_JNS", COND_NOSIGN)
	defineJumps(OP_SIGN_JOV_A, "SIGN_JOV", COND_OVERFLOW)
	defineJumps(OP_SIGN_JNO_A, "SIGN_JNO", COND_NOFLOW)

	defineAlu(OP_SIGN_DIV_RR, "SIGN_DIV", ALU_OP_SDIV, false)
	defineDivideRemainder(OP_SIGN_DVR_RRR, "SIGN_DVR", ALU_OP_SDIV)
	defineAlu(OP_SIGN_REM_RR, "SIGN_REM", ALU_OP_SREM, false)
	defineAlu(OP_SIGN_SHR_RR, "SIGN_SHR", ALU_OP_SAR, false)

	defineSignedMoves(OP_SIGN_MVB_RR, "SIGN_MVB", memory.WIDTH_BYTE)
	defineSignedMoves(OP_SIGN_MVW_RR, "SIGN_MVW", memory.WIDTH_WORD)
	defineSignedMoves(OP_SIGN_MVD_RR, "SIGN_MVD", memory.WIDTH_DWORD)

	defineWrites(OP_SIGN_WCN_R, "SIGN_WCN", TARGET_CONSOLE, io.FORMAT_SIGNED_NUMBER)
	defineWrites(OP_SIGN_WCB_R, "SIGN_WCB", TARGET_CONSOLE, io.FORMAT_SIGNED_BYTE)
	defineWrites(OP_SIGN_WFN_R, "SIGN_WFN", TARGET_FILE, io.FORMAT_SIGNED_NUMBER)
	defineWrites(OP_SIGN_WFB_R, "SIGN_WFB", TARGET_FILE, io.FORMAT_SIGNED_BYTE)

	define(Instruction{Opcode: OP_SIGN_EXB_R, Mnemonic: "SIGN_EXB", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_SEXT, Implied: memory.WIDTH_BYTE, exec: execAlu})
	define(Instruction{Opcode: OP_SIGN_EXW_R, Mnemonic: "SIGN_EXW", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_SEXT, Implied: memory.WIDTH_WORD, exec: execAlu})
	define(Instruction{Opcode: OP_SIGN_EXD_R, Mnemonic: "SIGN_EXD", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_SEXT, Implied: memory.WIDTH_DWORD, exec: execAlu})
	define(Instruction{Opcode: OP_SIGN_NEG_R, Mnemonic: "SIGN_NEG", Shapes: []Shape{SHAPE_REG}, AluOp: ALU_OP_NEG, exec: execAlu})
}
