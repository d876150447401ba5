// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package debug

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/vproc/cpu"
)

//go:generate go tool stringer -linecomment -type=Stop

// Stop is the reason execution paused.
type Stop int

const (
	STOP_STEP       = Stop(iota) // step
	STOP_HALT                    // halt
	STOP_BREAKPOINT              // breakpoint
	STOP_RETURN                  // return
)

// Breakpoint stops execution when a register holds a value.
type Breakpoint struct {
	Register cpu.Register
	Value    uint64
}

func (bp Breakpoint) String() string {
	return fmt.Sprintf("%v==0x%x", bp.Register, bp.Value)
}

// Hit returns true if the register holds the value.
func (bp Breakpoint) Hit(cp *cpu.Cpu) bool {
	return cp.Register[bp.Register] == bp.Value
}

// Debugger controls execution of a processor.
type Debugger struct {
	Verbose bool // Set to log breakpoint hits.

	Cpu         *cpu.Cpu     // Processor under control.
	Breakpoints []Breakpoint // Register breakpoints.
	Conditions  []*Condition // Expression breakpoints.

	Hit string // Last breakpoint hit.

	// Tick executes one instruction, returning true once halted.
	// If nil, the processor is stepped directly.
	Tick func() (halted bool, err error)
}

// NewDebugger attaches a debugger to a processor.
func NewDebugger(cp *cpu.Cpu) (dbg *Debugger) {
	dbg = &Debugger{
		Cpu: cp,
	}

	return
}

// Add a breakpoint.
// Text of the form "reg==value" is a register breakpoint, anything else
// is compiled as a condition.
func (dbg *Debugger) Add(text string) (err error) {
	left, right, found := strings.Cut(text, "==")
	if found {
		reg, rerr := cpu.ParseRegister(strings.TrimSpace(left))
		value, verr := strconv.ParseUint(strings.TrimSpace(right), 0, 64)
		if rerr == nil && verr == nil {
			dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{Register: reg, Value: value})
			return
		}
	}

	cond, err := NewCondition(text)
	if err != nil {
		return
	}

	dbg.Conditions = append(dbg.Conditions, cond)
	return
}

// Clear removes all breakpoints.
func (dbg *Debugger) Clear() {
	dbg.Breakpoints = nil
	dbg.Conditions = nil
	dbg.Hit = ""
}

// Check returns the first breakpoint satisfied by the processor state.
func (dbg *Debugger) Check() (hit string, err error) {
	for _, bp := range dbg.Breakpoints {
		if bp.Hit(dbg.Cpu) {
			hit = bp.String()
			return
		}
	}

	for _, cond := range dbg.Conditions {
		var ok bool
		ok, err = cond.Eval(dbg.Cpu)
		if err != nil {
			return
		}
		if ok {
			hit = cond.String()
			return
		}
	}

	return
}

// Step executes a single instruction.
func (dbg *Debugger) Step() (stop Stop, err error) {
	var halted bool
	if dbg.Tick != nil {
		halted, err = dbg.Tick()
	} else {
		halted, err = dbg.Cpu.Execute(false)
	}
	if err != nil {
		return
	}

	if halted {
		stop = STOP_HALT
		return
	}

	stop = STOP_STEP
	return
}

// run steps until HLT, an error, a breakpoint, or until() reports true
// for the instruction just executed.
func (dbg *Debugger) run(ctx context.Context, until func(ins *cpu.Instruction) bool, reached Stop) (stop Stop, err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		ins, _, _, _ := dbg.Cpu.Decode(dbg.Cpu.Pc())

		stop, err = dbg.Step()
		if err != nil || stop == STOP_HALT {
			return
		}

		if until != nil && until(ins) {
			stop = reached
			return
		}

		var hit string
		hit, err = dbg.Check()
		if err != nil {
			return
		}
		if len(hit) != 0 {
			if dbg.Verbose {
				log.Printf("debug: %016x: breakpoint %v", dbg.Cpu.Pc(), hit)
			}
			dbg.Hit = hit
			stop = STOP_BREAKPOINT
			return
		}
	}
}

// Continue runs until HLT or a breakpoint.
func (dbg *Debugger) Continue(ctx context.Context) (stop Stop, err error) {
	return dbg.run(ctx, nil, STOP_STEP)
}

// Over steps one instruction, treating a call and everything it runs as
// a single step.
func (dbg *Debugger) Over(ctx context.Context) (stop Stop, err error) {
	ins, _, next, err := dbg.Cpu.Decode(dbg.Cpu.Pc())
	if err != nil || ins.Mnemonic != "CAL" {
		return dbg.Step()
	}

	sp := dbg.Cpu.Register[cpu.REG_SP]
	return dbg.run(ctx, func(*cpu.Instruction) bool {
		return dbg.Cpu.Pc() == next && dbg.Cpu.Register[cpu.REG_SP] >= sp
	}, STOP_STEP)
}

// Return runs until a return leaves the current call frame.
func (dbg *Debugger) Return(ctx context.Context) (stop Stop, err error) {
	sp := dbg.Cpu.Register[cpu.REG_SP]
	return dbg.run(ctx, func(ins *cpu.Instruction) bool {
		return ins.Mnemonic == "RET" && dbg.Cpu.Register[cpu.REG_SP] > sp
	}, STOP_RETURN)
}

// State returns the next instruction and the register bank as text.
func (dbg *Debugger) State() (text string) {
	pc := dbg.Cpu.Pc()
	ins, ops, _, err := dbg.Cpu.Decode(pc)
	if err != nil {
		text = fmt.Sprintf("%016x: %v\n", pc, err)
	} else {
		text = fmt.Sprintf("%016x: %v\n", pc, cpu.Disassemble(ins, ops))
	}

	text += dbg.Cpu.String()
	return
}
