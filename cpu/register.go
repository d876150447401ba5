package cpu

import (
	"fmt"
	"strings"
)

// Register is the index of a register, as encoded in the instruction stream.
type Register byte

const (
	REG_RPO = Register(0)  // rpo
	REG_RSO = Register(1)  // rso
	REG_RSB = Register(2)  // rsb
	REG_RSF = Register(3)  // rsf
	REG_RRV = Register(4)  // rrv
	REG_RFP = Register(5)  // rfp
	REG_RG0 = Register(6)  // rg0
	REG_RG1 = Register(7)  // rg1
	REG_RG2 = Register(8)  // rg2
	REG_RG3 = Register(9)  // rg3
	REG_RG4 = Register(10) // rg4
	REG_RG5 = Register(11) // rg5
	REG_RG6 = Register(12) // rg6
	REG_RG7 = Register(13) // rg7
	REG_RG8 = Register(14) // rg8
	REG_RG9 = Register(15) // rg9

	REGISTER_COUNT = 16
)

// Aliases by role.
const (
	REG_PC           = REG_RPO // Program counter.
	REG_SP           = REG_RSO // Stack pointer.
	REG_FRAME_BASE   = REG_RSB // Restored by return.
	REG_FLAGS        = REG_RSF // Status flags.
	REG_RETURN_VALUE = REG_RRV // Set by extended return.
	REG_FRAME_PTR    = REG_RFP // Set by extended call.
)

var _register_names = [REGISTER_COUNT]string{
	"rpo", "rso", "rsb", "rsf", "rrv", "rfp",
	"rg0", "rg1", "rg2", "rg3", "rg4", "rg5", "rg6", "rg7", "rg8", "rg9",
}

func (reg Register) String() string {
	if int(reg) >= len(_register_names) {
		return fmt.Sprintf("Register(%d)", int(reg))
	}
	return _register_names[reg]
}

// Valid returns true if the register exists.
func (reg Register) Valid() bool {
	return int(reg) < REGISTER_COUNT
}

// ParseRegister returns the register for a name.
func ParseRegister(name string) (reg Register, err error) {
	name = strings.ToLower(name)
	for n, regname := range _register_names {
		if regname == name {
			reg = Register(n)
			return
		}
	}

	err = ErrRegisterName(name)
	return
}

// Flags is the set of status flags held in the rsf register.
type Flags uint64

const (
	FLAG_ZERO     = Flags(1 << 0) // Zero
	FLAG_CARRY    = Flags(1 << 1) // Carry
	FLAG_FILE_END = Flags(1 << 2) // FileEnd
	FLAG_SIGN     = Flags(1 << 3) // Sign
	FLAG_OVERFLOW = Flags(1 << 4) // Overflow

	// Flags computed by arithmetic.
	FLAG_ARITH = FLAG_ZERO | FLAG_CARRY | FLAG_SIGN | FLAG_OVERFLOW
)

var _flag_names = []struct {
	Flag Flags
	Name string
}{
	{FLAG_ZERO, "Zero"},
	{FLAG_CARRY, "Carry"},
	{FLAG_FILE_END, "FileEnd"},
	{FLAG_SIGN, "Sign"},
	{FLAG_OVERFLOW, "Overflow"},
}

// Has returns true if all of the flags in mask are set.
func (fl Flags) Has(mask Flags) bool {
	return fl&mask == mask
}

func (fl Flags) String() string {
	var names []string
	rest := fl
	for _, entry := range _flag_names {
		if fl&entry.Flag != 0 {
			names = append(names, entry.Name)
			rest &^= entry.Flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint64(rest)))
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}
