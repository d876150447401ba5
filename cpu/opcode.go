package cpu

import (
	"fmt"
	"strings"
)

// Opcode identifies an instruction. The low byte is the opcode byte and
// the high byte is the Extension set, encoded after an OP_EXTENSION prefix.
// Operand suffixes: R register, L literal, A address, P pointer.
type Opcode uint16

// Extension is an instruction set selected by the OP_EXTENSION prefix.
type Extension byte

const (
	EXTENSION_BASE   = Extension(0x00) // Base set, also reachable unprefixed.
	EXTENSION_SIGNED = Extension(0x01) // Signed arithmetic and jumps.
	EXTENSION_COUNT  = 2
)

// Control
const (
	OP_HLT   = Opcode(0x00) // HLT
	OP_NOP   = Opcode(0x01) // NOP
	OP_JMP_A = Opcode(0x02) // JMP adr
	OP_JMP_P = Opcode(0x03) // JMP ptr
	OP_JEQ_A = Opcode(0x04) // JEQ adr
	OP_JEQ_P = Opcode(0x05) // JEQ ptr
	OP_JNE_A = Opcode(0x06) // JNE adr
	OP_JNE_P = Opcode(0x07) // JNE ptr
	OP_JLT_A = Opcode(0x08) // JLT adr
	OP_JLT_P = Opcode(0x09) // JLT ptr
	OP_JLE_A = Opcode(0x0A) // JLE adr
	OP_JLE_P = Opcode(0x0B) // JLE ptr
	OP_JGT_A = Opcode(0x0C) // JGT adr
	OP_JGT_P = Opcode(0x0D) // JGT ptr
	OP_JGE_A = Opcode(0x0E) // JGE adr
	OP_JGE_P = Opcode(0x0F) // JGE ptr
)

// Arithmetic
const (
	OP_ADD_RR  = Opcode(0x10)
	OP_ADD_RL  = Opcode(0x11)
	OP_ADD_RA  = Opcode(0x12)
	OP_ADD_RP  = Opcode(0x13)
	OP_ICR_R   = Opcode(0x14)
	OP_SUB_RR  = Opcode(0x20)
	OP_SUB_RL  = Opcode(0x21)
	OP_SUB_RA  = Opcode(0x22)
	OP_SUB_RP  = Opcode(0x23)
	OP_DCR_R   = Opcode(0x24)
	OP_MUL_RR  = Opcode(0x30)
	OP_MUL_RL  = Opcode(0x31)
	OP_MUL_RA  = Opcode(0x32)
	OP_MUL_RP  = Opcode(0x33)
	OP_DIV_RR  = Opcode(0x40)
	OP_DIV_RL  = Opcode(0x41)
	OP_DIV_RA  = Opcode(0x42)
	OP_DIV_RP  = Opcode(0x43)
	OP_DVR_RRR = Opcode(0x44)
	OP_DVR_RRL = Opcode(0x45)
	OP_DVR_RRA = Opcode(0x46)
	OP_DVR_RRP = Opcode(0x47)
	OP_REM_RR  = Opcode(0x48)
	OP_REM_RL  = Opcode(0x49)
	OP_REM_RA  = Opcode(0x4A)
	OP_REM_RP  = Opcode(0x4B)
	OP_SHL_RR  = Opcode(0x50)
	OP_SHL_RL  = Opcode(0x51)
	OP_SHL_RA  = Opcode(0x52)
	OP_SHL_RP  = Opcode(0x53)
	OP_SHR_RR  = Opcode(0x54)
	OP_SHR_RL  = Opcode(0x55)
	OP_SHR_RA  = Opcode(0x56)
	OP_SHR_RP  = Opcode(0x57)
)

// Logic and comparison
const (
	OP_AND_RR = Opcode(0x60)
	OP_AND_RL = Opcode(0x61)
	OP_AND_RA = Opcode(0x62)
	OP_AND_RP = Opcode(0x63)
	OP_ORR_RR = Opcode(0x64)
	OP_ORR_RL = Opcode(0x65)
	OP_ORR_RA = Opcode(0x66)
	OP_ORR_RP = Opcode(0x67)
	OP_XOR_RR = Opcode(0x68)
	OP_XOR_RL = Opcode(0x69)
	OP_XOR_RA = Opcode(0x6A)
	OP_XOR_RP = Opcode(0x6B)
	OP_NOT_R  = Opcode(0x6C)
	OP_RNG_R  = Opcode(0x6D)
	OP_TST_RR = Opcode(0x70)
	OP_TST_RL = Opcode(0x71)
	OP_TST_RA = Opcode(0x72)
	OP_TST_RP = Opcode(0x73)
	OP_CMP_RR = Opcode(0x74)
	OP_CMP_RL = Opcode(0x75)
	OP_CMP_RA = Opcode(0x76)
	OP_CMP_RP = Opcode(0x77)
)

// Moves. Each width has the same eight forms.
const (
	OP_MVB_RR = Opcode(0x80)
	OP_MVB_RL = Opcode(0x81)
	OP_MVB_RA = Opcode(0x82)
	OP_MVB_RP = Opcode(0x83)
	OP_MVB_AR = Opcode(0x84)
	OP_MVB_AL = Opcode(0x85)
	OP_MVB_PR = Opcode(0x86)
	OP_MVB_PL = Opcode(0x87)
	OP_MVW_RR = Opcode(0x88)
	OP_MVW_RL = Opcode(0x89)
	OP_MVW_RA = Opcode(0x8A)
	OP_MVW_RP = Opcode(0x8B)
	OP_MVW_AR = Opcode(0x8C)
	OP_MVW_AL = Opcode(0x8D)
	OP_MVW_PR = Opcode(0x8E)
	OP_MVW_PL = Opcode(0x8F)
	OP_MVD_RR = Opcode(0x90)
	OP_MVD_RL = Opcode(0x91)
	OP_MVD_RA = Opcode(0x92)
	OP_MVD_RP = Opcode(0x93)
	OP_MVD_AR = Opcode(0x94)
	OP_MVD_AL = Opcode(0x95)
	OP_MVD_PR = Opcode(0x96)
	OP_MVD_PL = Opcode(0x97)
	OP_MVQ_RR = Opcode(0x98)
	OP_MVQ_RL = Opcode(0x99)
	OP_MVQ_RA = Opcode(0x9A)
	OP_MVQ_RP = Opcode(0x9B)
	OP_MVQ_AR = Opcode(0x9C)
	OP_MVQ_AL = Opcode(0x9D)
	OP_MVQ_PR = Opcode(0x9E)
	OP_MVQ_PL = Opcode(0x9F)
)

// Stack, call and return
const (
	OP_PSH_R  = Opcode(0xA0)
	OP_PSH_L  = Opcode(0xA1)
	OP_PSH_A  = Opcode(0xA2)
	OP_PSH_P  = Opcode(0xA3)
	OP_POP_R  = Opcode(0xA4)
	OP_CAL_A  = Opcode(0xB0)
	OP_CAL_P  = Opcode(0xB1)
	OP_CAL_AR = Opcode(0xB2)
	OP_CAL_AL = Opcode(0xB3)
	OP_CAL_AA = Opcode(0xB4)
	OP_CAL_AP = Opcode(0xB5)
	OP_CAL_PR = Opcode(0xB6)
	OP_CAL_PL = Opcode(0xB7)
	OP_CAL_PA = Opcode(0xB8)
	OP_CAL_PP = Opcode(0xB9)
	OP_RET    = Opcode(0xBA)
	OP_RET_R  = Opcode(0xBB)
	OP_RET_L  = Opcode(0xBC)
	OP_RET_A  = Opcode(0xBD)
	OP_RET_P  = Opcode(0xBE)
)

// Console and file output. The low two bits select the operand shape.
const (
	OP_WCN_R = Opcode(0xC0)
	OP_WCN_L = Opcode(0xC1)
	OP_WCN_A = Opcode(0xC2)
	OP_WCN_P = Opcode(0xC3)
	OP_WCB_R = Opcode(0xC4)
	OP_WCB_L = Opcode(0xC5)
	OP_WCB_A = Opcode(0xC6)
	OP_WCB_P = Opcode(0xC7)
	OP_WCX_R = Opcode(0xC8)
	OP_WCX_L = Opcode(0xC9)
	OP_WCX_A = Opcode(0xCA)
	OP_WCX_P = Opcode(0xCB)
	OP_WCC_R = Opcode(0xCC)
	OP_WCC_L = Opcode(0xCD)
	OP_WCC_A = Opcode(0xCE)
	OP_WCC_P = Opcode(0xCF)
	OP_WFN_R = Opcode(0xD0)
	OP_WFN_L = Opcode(0xD1)
	OP_WFN_A = Opcode(0xD2)
	OP_WFN_P = Opcode(0xD3)
	OP_WFB_R = Opcode(0xD4)
	OP_WFB_L = Opcode(0xD5)
	OP_WFB_A = Opcode(0xD6)
	OP_WFB_P = Opcode(0xD7)
	OP_WFX_R = Opcode(0xD8)
	OP_WFX_L = Opcode(0xD9)
	OP_WFX_A = Opcode(0xDA)
	OP_WFX_P = Opcode(0xDB)
	OP_WFC_R = Opcode(0xDC)
	OP_WFC_L = Opcode(0xDD)
	OP_WFC_A = Opcode(0xDE)
	OP_WFC_P = Opcode(0xDF)
)

// File management and input
const (
	OP_OFL_A  = Opcode(0xE0)
	OP_OFL_P  = Opcode(0xE1)
	OP_CFL    = Opcode(0xE2)
	OP_DFL_A  = Opcode(0xE3)
	OP_DFL_P  = Opcode(0xE4)
	OP_FEX_RA = Opcode(0xE5)
	OP_FEX_RP = Opcode(0xE6)
	OP_FSZ_RA = Opcode(0xE7)
	OP_FSZ_RP = Opcode(0xE8)
	OP_RCC_R  = Opcode(0xF0)
	OP_RFC_R  = Opcode(0xF1)

	OP_EXTENSION = Opcode(0xFF) // Extension set prefix.
)

// Signed extension set
const (
	OP_SIGN_JLT_A   = Opcode(0x0100)
	OP_SIGN_JLT_P   = Opcode(0x0101)
	OP_SIGN_JLE_A   = Opcode(0x0102)
	OP_SIGN_JLE_P   = Opcode(0x0103)
	OP_SIGN_JGT_A   = Opcode(0x0104)
	OP_SIGN_JGT_P   = Opcode(0x0105)
	OP_SIGN_JGE_A   = Opcode(0x0106)
	OP_SIGN_JGE_P   = Opcode(0x0107)
	OP_SIGN_JSI_A   = Opcode(0x0108)
	OP_SIGN_JSI_P   = Opcode(0x0109)
	OP_SIGN_JNS_A   = Opcode(0x010A)
	OP_SIGN_JNS_P   = Opcode(0x010B)
	OP_SIGN_JOV_A   = Opcode(0x010C)
	OP_SIGN_JOV_P   = Opcode(0x010D)
	OP_SIGN_JNO_A   = Opcode(0x010E)
	OP_SIGN_JNO_P   = Opcode(0x010F)
	OP_SIGN_DIV_RR  = Opcode(0x0110)
	OP_SIGN_DIV_RL  = Opcode(0x0111)
	OP_SIGN_DIV_RA  = Opcode(0x0112)
	OP_SIGN_DIV_RP  = Opcode(0x0113)
	OP_SIGN_DVR_RRR = Opcode(0x0114)
	OP_SIGN_DVR_RRL = Opcode(0x0115)
	OP_SIGN_DVR_RRA = Opcode(0x0116)
	OP_SIGN_DVR_RRP = Opcode(0x0117)
	OP_SIGN_REM_RR  = Opcode(0x0118)
	OP_SIGN_REM_RL  = Opcode(0x0119)
	OP_SIGN_REM_RA  = Opcode(0x011A)
	OP_SIGN_REM_RP  = Opcode(0x011B)
	OP_SIGN_SHR_RR  = Opcode(0x0120)
	OP_SIGN_SHR_RL  = Opcode(0x0121)
	OP_SIGN_SHR_RA  = Opcode(0x0122)
	OP_SIGN_SHR_RP  = Opcode(0x0123)
	OP_SIGN_MVB_RR  = Opcode(0x0130)
	OP_SIGN_MVB_RL  = Opcode(0x0131)
	OP_SIGN_MVB_RA  = Opcode(0x0132)
	OP_SIGN_MVB_RP  = Opcode(0x0133)
	OP_SIGN_MVW_RR  = Opcode(0x0134)
	OP_SIGN_MVW_RL  = Opcode(0x0135)
	OP_SIGN_MVW_RA  = Opcode(0x0136)
	OP_SIGN_MVW_RP  = Opcode(0x0137)
	OP_SIGN_MVD_RR  = Opcode(0x0140)
	OP_SIGN_MVD_RL  = Opcode(0x0141)
	OP_SIGN_MVD_RA  = Opcode(0x0142)
	OP_SIGN_MVD_RP  = Opcode(0x0143)
	OP_SIGN_WCN_R   = Opcode(0x0150)
	OP_SIGN_WCN_L   = Opcode(0x0151)
	OP_SIGN_WCN_A   = Opcode(0x0152)
	OP_SIGN_WCN_P   = Opcode(0x0153)
	OP_SIGN_WCB_R   = Opcode(0x0154)
	OP_SIGN_WCB_L   = Opcode(0x0155)
	OP_SIGN_WCB_A   = Opcode(0x0156)
	OP_SIGN_WCB_P   = Opcode(0x0157)
	OP_SIGN_WFN_R   = Opcode(0x0160)
	OP_SIGN_WFN_L   = Opcode(0x0161)
	OP_SIGN_WFN_A   = Opcode(0x0162)
	OP_SIGN_WFN_P   = Opcode(0x0163)
	OP_SIGN_WFB_R   = Opcode(0x0164)
	OP_SIGN_WFB_L   = Opcode(0x0165)
	OP_SIGN_WFB_A   = Opcode(0x0166)
	OP_SIGN_WFB_P   = Opcode(0x0167)
	OP_SIGN_EXB_R   = Opcode(0x0170)
	OP_SIGN_EXW_R   = Opcode(0x0171)
	OP_SIGN_EXD_R   = Opcode(0x0172)
	OP_SIGN_NEG_R   = Opcode(0x0180)
)

//go:generate go tool stringer -linecomment -type=Shape

// Shape is the addressing mode of an operand.
type Shape int

const (
	SHAPE_REG = Shape(0) // reg
	SHAPE_LIT = Shape(1) // lit
	SHAPE_ADR = Shape(2) // adr
	SHAPE_PTR = Shape(3) // ptr
)

// Extension set of the opcode.
func (op Opcode) Extension() Extension {
	return Extension(op >> 8)
}

// Bytes returns the encoding of the opcode, with any extension prefix.
func (op Opcode) Bytes() []byte {
	if op.Extension() == EXTENSION_BASE {
		return []byte{byte(op)}
	}
	return []byte{byte(OP_EXTENSION), byte(op.Extension()), byte(op)}
}

// Instruction returns the instruction definition for the opcode, or nil.
func (op Opcode) Instruction() *Instruction {
	ext := op.Extension()
	if ext >= EXTENSION_COUNT {
		return nil
	}
	return _instruction_table[ext][byte(op)]
}

// Mnemonic of the opcode.
func (op Opcode) Mnemonic() (mnemonic string) {
	ins := op.Instruction()
	if ins == nil {
		return "???"
	}
	return ins.Mnemonic
}

func (op Opcode) String() string {
	ins := op.Instruction()
	if ins == nil {
		return fmt.Sprintf("Opcode(0x%x)", op.Bytes())
	}

	if len(ins.Shapes) == 0 {
		return ins.Mnemonic
	}

	shapes := make([]string, len(ins.Shapes))
	for n, shape := range ins.Shapes {
		shapes[n] = shape.String()
	}

	return ins.Mnemonic + " " + strings.Join(shapes, ", ")
}
