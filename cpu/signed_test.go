package cpu

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigned_Encoding(t *testing.T) {
	assert := assert.New(t)

	code := Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8))
	assert.Equal([]byte{0xff, 0x01, 0x10, byte(REG_RG7), byte(REG_RG8)}, code)
	assert.Equal(EXTENSION_SIGNED, OP_SIGN_DIV_RR.Extension())
	assert.Equal(EXTENSION_BASE, OP_DIV_RR.Extension())

	// The base set may also be reached through the prefix.
	cpu := newTestCpu(t, []byte{0xff, 0x00, byte(OP_ICR_R), byte(REG_RG0)})
	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.Equal(uint64(1), cpu.Register[REG_RG0])
	assert.Equal(uint64(4), cpu.Pc())
}

func TestSigned_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		code  []byte
		rg7   uint64
		rg8   uint64
		flags Flags // Initial flags
		want  uint64
		rg9   uint64
		final Flags
	}){
		{"div", Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8)), 9876543, 3456789, FLAG_FILE_END, 2, 0, FLAG_FILE_END},
		{"div zero", Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8)), 0, 987654321, 0, 0, 0, FLAG_ZERO},
		{"div by one", Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8)), maxUint64, 1, 0, maxUint64, 0, FLAG_SIGN},
		{"div by minus one", Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8)), 1, maxUint64, 0, maxUint64, 0, FLAG_SIGN},
		{"div lit", Encode(OP_SIGN_DIV_RL, Reg(REG_RG7), Lit(neg(-3))), 9876543, 0, 0, neg(-3292181), 0, FLAG_SIGN},
		{"dvr", Encode(OP_SIGN_DVR_RRR, Reg(REG_RG7), Reg(REG_RG9), Reg(REG_RG8)), 9876543, 3456789, FLAG_FILE_END, 2, 2962965, FLAG_FILE_END},
		{"dvr negative", Encode(OP_SIGN_DVR_RRR, Reg(REG_RG7), Reg(REG_RG9), Reg(REG_RG8)), neg(-6), 5, 0, maxUint64, maxUint64, FLAG_SIGN},
		{"rem", Encode(OP_SIGN_REM_RR, Reg(REG_RG7), Reg(REG_RG8)), 9876543, 3456789, FLAG_FILE_END, 2962965, 0, FLAG_FILE_END},
		{"rem negative", Encode(OP_SIGN_REM_RR, Reg(REG_RG7), Reg(REG_RG8)), neg(-6), 5, 0, maxUint64, 0, FLAG_SIGN},
		{"shr", Encode(OP_SIGN_SHR_RR, Reg(REG_RG7), Reg(REG_RG8)), 0b101000101000000, 6, FLAG_FILE_END, 0b101000101, 0, FLAG_FILE_END},
		{"shr fill", Encode(OP_SIGN_SHR_RR, Reg(REG_RG7), Reg(REG_RG8)), minInt64, 63, 0, maxUint64, 0, FLAG_SIGN | FLAG_CARRY},
		{"shr past width", Encode(OP_SIGN_SHR_RR, Reg(REG_RG7), Reg(REG_RG8)), maxUint64, 65, 0, maxUint64, 0, FLAG_SIGN},
		{"shr by zero", Encode(OP_SIGN_SHR_RL, Reg(REG_RG7), Lit(0)), 17997888522041065068, 0, FLAG_CARRY, 17997888522041065068, 0, FLAG_SIGN},
		{"exb", Encode(OP_SIGN_EXB_R, Reg(REG_RG7)), 0xd3, 0, 0, neg(-45), 0, FLAG_SIGN},
		{"exb truncates", Encode(OP_SIGN_EXB_R, Reg(REG_RG7)), 123456789, 0, 0, 21, 0, 0},
		{"exw", Encode(OP_SIGN_EXW_R, Reg(REG_RG7)), 0x8000, 0, 0, neg(-32768), 0, FLAG_SIGN},
		{"exd", Encode(OP_SIGN_EXD_R, Reg(REG_RG7)), 0xf8a432eb, 0, 0, neg(-123456789), 0, FLAG_SIGN},
		{"exd zero", Encode(OP_SIGN_EXD_R, Reg(REG_RG7)), 0x100000000, 0, 0, 0, 0, FLAG_ZERO},
		{"neg", Encode(OP_SIGN_NEG_R, Reg(REG_RG7)), neg(-123456789), 0, 0, 123456789, 0, 0},
		{"neg positive", Encode(OP_SIGN_NEG_R, Reg(REG_RG7)), 987654321, 0, 0, neg(-987654321), 0, FLAG_SIGN},
		{"neg zero", Encode(OP_SIGN_NEG_R, Reg(REG_RG7)), 0, 0, 0, 0, 0, FLAG_ZERO},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.code)
		cpu.Register[REG_RG7] = entry.rg7
		cpu.Register[REG_RG8] = entry.rg8
		cpu.Register[REG_RSF] = uint64(entry.flags)

		_, err := cpu.Execute(false)
		assert.NoError(err, entry.name)
		assert.Equal(entry.want, cpu.Register[REG_RG7], entry.name)
		assert.Equal(entry.rg9, cpu.Register[REG_RG9], entry.name)
		assert.Equal(entry.rg8, cpu.Register[REG_RG8], entry.name)
		assert.Equal(entry.final, cpu.Flags(), "%v: %v", entry.name, cpu.Flags())
		assert.Equal(uint64(len(entry.code)), cpu.Pc(), entry.name)
	}
}

func TestSigned_Errors(t *testing.T) {
	assert := assert.New(t)

	zeros := [][]byte{
		Encode(OP_SIGN_DIV_RR, Reg(REG_RG7), Reg(REG_RG8)),
		Encode(OP_SIGN_DVR_RRR, Reg(REG_RG7), Reg(REG_RG9), Reg(REG_RG8)),
		Encode(OP_SIGN_REM_RL, Reg(REG_RG7), Lit(0)),
	}
	for _, code := range zeros {
		cpu := newTestCpu(t, code)
		cpu.Register[REG_RG7] = 9876543210
		cpu.Register[REG_RSF] = uint64(FLAG_SIGN)
		_, err := cpu.Execute(false)
		assert.ErrorIs(err, ErrDivideByZero, "%x", code)
		assert.Equal(uint64(9876543210), cpu.Register[REG_RG7], "%x", code)
		assert.Equal(FLAG_SIGN, cpu.Flags(), "%x", code)
		assert.Equal(uint64(3), cpu.Pc(), "%x", code)
	}

	writes := [][]byte{
		Encode(OP_SIGN_DIV_RR, Reg(REG_RPO), Reg(REG_RG8)),
		Encode(OP_SIGN_DVR_RRR, Reg(REG_RPO), Reg(REG_RG9), Reg(REG_RG8)),
		Encode(OP_SIGN_DVR_RRR, Reg(REG_RG9), Reg(REG_RPO), Reg(REG_RG8)),
		Encode(OP_SIGN_REM_RR, Reg(REG_RPO), Reg(REG_RG8)),
		Encode(OP_SIGN_SHR_RR, Reg(REG_RPO), Reg(REG_RG8)),
		Encode(OP_SIGN_MVB_RR, Reg(REG_RPO), Reg(REG_RG8)),
		Encode(OP_SIGN_MVD_RL, Reg(REG_RPO), Lit(1)),
		Encode(OP_SIGN_EXB_R, Reg(REG_RPO)),
		Encode(OP_SIGN_NEG_R, Reg(REG_RPO)),
	}
	for _, code := range writes {
		cpu := newTestCpu(t, code)
		cpu.Register[REG_RG8] = 552
		_, err := cpu.Execute(false)
		assert.ErrorIs(err, ErrReadOnlyRegister, "%x", code)
		assert.Equal(uint64(3), cpu.Pc(), "%x", code)
	}
}

func TestSigned_Moves(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code []byte
		want uint64
	}){
		{"mvb max", Encode(OP_SIGN_MVB_RR, Reg(REG_RG7), Reg(REG_RG8)), maxUint64},
		{"mvb pattern", Encode(OP_SIGN_MVB_RL, Reg(REG_RG7), Lit(0b101010101010)), 0xffffffffffffffaa},
		{"mvb positive", Encode(OP_SIGN_MVB_RL, Reg(REG_RG7), Lit(0x17f)), 0x7f},
		{"mvb tail", Encode(OP_SIGN_MVB_RL, Reg(REG_RG7), Lit(maxInt64-1)), maxUint64 - 1},
		{"mvw adr", Encode(OP_SIGN_MVW_RA, Reg(REG_RG7), Adr(0x200)), 0xffffffffffff8001},
		{"mvd ptr", Encode(OP_SIGN_MVD_RP, Reg(REG_RG7), Ptr(REG_RG9)), 0xffffffff80018001},
		{"mvd positive", Encode(OP_SIGN_MVD_RL, Reg(REG_RG7), Lit(0x1234567890)), 0x34567890},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.code)
		cpu.Register[REG_RG7] = 0x1234
		cpu.Register[REG_RG8] = 0xff
		cpu.Register[REG_RG9] = 0x200
		cpu.Memory.Write32(0x200, 0x80018001)
		cpu.Register[REG_RSF] = uint64(0x1f)

		_, err := cpu.Execute(false)
		assert.NoError(err, entry.name)
		assert.Equal(entry.want, cpu.Register[REG_RG7], "%v: %x", entry.name, cpu.Register[REG_RG7])
		assert.Equal(Flags(0x1f), cpu.Flags(), entry.name)
		assert.Equal(uint64(len(entry.code)), cpu.Pc(), entry.name)
	}
}

func TestSigned_Writes(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		Encode(OP_SIGN_WCN_R, Reg(REG_RG7)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_SIGN_WCN_L, Lit(maxUint64)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_SIGN_WCB_R, Reg(REG_RG7)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_SIGN_WCB_A, Adr(0x200)),
		Encode(OP_HLT),
	)
	out := &bytes.Buffer{}
	cpu.Console.Output = out
	cpu.Register[REG_RG7] = 1234567890
	cpu.Memory.Data[0x200] = 0x7f
	cpu.Register[REG_RSF] = uint64(0x1f)

	halted, err := cpu.Execute(true)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal("1234567890 -1 -46 127", out.String())
	assert.Equal(Flags(0x1f), cpu.Flags())

	cpu, root := newTestFileCpu(t,
		Encode(OP_OFL_A, Adr(0x200)),
		Encode(OP_SIGN_WFN_R, Reg(REG_RG7)),
		Encode(OP_SIGN_WFB_L, Lit(1234567890)),
		Encode(OP_SIGN_WFB_P, Ptr(REG_RG8)),
		Encode(OP_CFL),
		Encode(OP_HLT),
	)
	copy(cpu.Memory.Data[0x200:], "out.txt\x00")
	cpu.Memory.Data[0x300] = 0x05
	cpu.Register[REG_RG7] = maxUint64
	cpu.Register[REG_RG8] = 0x300

	halted, err = cpu.Execute(true)
	assert.NoError(err)
	assert.True(halted)

	data, err := os.ReadFile(filepath.Join(root, "out.txt"))
	assert.NoError(err)
	assert.Equal("-1-465", string(data))
}
