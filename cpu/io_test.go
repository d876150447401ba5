package cpu

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vproc/io"
)

func newTestFileCpu(t *testing.T, code ...[]byte) (cpu *Cpu, root string) {
	cpu = newTestCpu(t, code...)

	root = t.TempDir()
	dir, err := io.OpenDir(root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cpu.Close()
		dir.Close()
	})

	cpu.File.Filesystem = dir
	return
}

func TestIo_ConsoleWrite(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		Encode(OP_WCN_R, Reg(REG_RG0)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_WCB_A, Adr(0x200)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_WCX_P, Ptr(REG_RG1)),
		Encode(OP_WCC_L, Lit(' ')),
		Encode(OP_WCN_L, Lit(0xffffffffffffffff)),
		Encode(OP_WCC_R, Reg(REG_RG2)),
		Encode(OP_HLT),
	)
	out := &bytes.Buffer{}
	cpu.Console.Output = out
	cpu.Register[REG_RG0] = 1234567
	cpu.Register[REG_RG1] = 0x201
	cpu.Register[REG_RG2] = 0x30a
	cpu.Memory.Data[0x200] = 0xfe
	cpu.Memory.Data[0x201] = 0x0b
	cpu.Register[REG_RSF] = uint64(FLAG_ZERO | FLAG_OVERFLOW)

	halted, err := cpu.Execute(true)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal("1234567 254 0B 18446744073709551615\n", out.String())
	assert.Equal(FLAG_ZERO|FLAG_OVERFLOW, cpu.Flags())
}

func TestIo_ConsoleUtf8(t *testing.T) {
	assert := assert.New(t)

	var code [][]byte
	for _, b := range []byte("Ω≈ç") {
		code = append(code, Encode(OP_WCC_L, Lit(uint64(b))))
	}
	code = append(code, Encode(OP_HLT))

	cpu := newTestCpu(t, code...)
	out := &bytes.Buffer{}
	cpu.Console.Output = out

	_, err := cpu.Execute(true)
	assert.NoError(err)
	assert.Equal("Ω≈ç", out.String())
}

func TestIo_ConsoleRead(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		Encode(OP_RCC_R, Reg(REG_RG0)),
		Encode(OP_RCC_R, Reg(REG_RG1)),
	)
	cpu.Console.Input = strings.NewReader("A")
	cpu.Register[REG_RG1] = 77

	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.Equal(uint64('A'), cpu.Register[REG_RG0])

	_, err = cpu.Execute(false)
	assert.ErrorIs(err, io.ErrConsoleEnd)
	assert.Equal(uint64(77), cpu.Register[REG_RG1])
}

func TestIo_FileLifecycle(t *testing.T) {
	assert := assert.New(t)

	// 0x000: OFL :0x200
	// 0x009: WFN 1234
	// 0x012: WFC '\n'
	// 0x01b: CFL
	// 0x01c: FSZ rg0, :0x200
	// 0x026: FEX rg1, *rg9
	// 0x029: DFL :0x200
	// 0x032: FEX rg2, :0x200
	// 0x03c: HLT
	cpu, root := newTestFileCpu(t,
		Encode(OP_OFL_A, Adr(0x200)),
		Encode(OP_WFN_L, Lit(1234)),
		Encode(OP_WFC_L, Lit('\n')),
		Encode(OP_CFL),
		Encode(OP_FSZ_RA, Reg(REG_RG0), Adr(0x200)),
		Encode(OP_FEX_RP, Reg(REG_RG1), Ptr(REG_RG9)),
		Encode(OP_DFL_A, Adr(0x200)),
		Encode(OP_FEX_RA, Reg(REG_RG2), Adr(0x200)),
		Encode(OP_HLT),
	)
	cpu.Memory.Load(0x200, []byte("out.txt\x00"))
	cpu.Register[REG_RG9] = 0x200
	cpu.Register[REG_RG2] = 99

	// Open a new, empty file.
	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.True(cpu.Flags().Has(FLAG_FILE_END))
	assert.FileExists(filepath.Join(root, "out.txt"))

	// Write and close.
	for range 3 {
		_, err = cpu.Execute(false)
		assert.NoError(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "out.txt"))
	assert.NoError(err)
	assert.Equal("1234\n", string(data))

	halted, err := cpu.Execute(true)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal(uint64(5), cpu.Register[REG_RG0])
	assert.Equal(uint64(1), cpu.Register[REG_RG1])
	assert.Equal(uint64(0), cpu.Register[REG_RG2])
	assert.NoFileExists(filepath.Join(root, "out.txt"))
}

func TestIo_FileRead(t *testing.T) {
	assert := assert.New(t)

	cpu, root := newTestFileCpu(t,
		Encode(OP_OFL_P, Ptr(REG_RG9)),
		Encode(OP_RFC_R, Reg(REG_RG0)),
		Encode(OP_RFC_R, Reg(REG_RG1)),
	)
	assert.NoError(os.WriteFile(filepath.Join(root, "one.bin"), []byte{0x7f}, 0o644))
	cpu.Memory.Load(0x200, []byte("one.bin\x00"))
	cpu.Register[REG_RG9] = 0x200
	cpu.Register[REG_RSF] = uint64(FLAG_FILE_END | FLAG_CARRY)

	// Non-empty file clears FileEnd.
	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.Equal(FLAG_CARRY, cpu.Flags())

	// Reading the only byte sets FileEnd.
	_, err = cpu.Execute(false)
	assert.NoError(err)
	assert.Equal(uint64(0x7f), cpu.Register[REG_RG0])
	assert.Equal(FLAG_CARRY|FLAG_FILE_END, cpu.Flags())

	// Reading past the end fails.
	_, err = cpu.Execute(false)
	assert.ErrorIs(err, io.ErrFileOperation)
	assert.Equal(uint64(0), cpu.Register[REG_RG1])
}

func TestIo_FileErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code []byte
		err  error
	}){
		{"close none", Encode(OP_CFL), io.ErrFileOperation},
		{"write none", Encode(OP_WFN_R, Reg(REG_RG0)), io.ErrFileOperation},
		{"read none", Encode(OP_RFC_R, Reg(REG_RG0)), io.ErrFileOperation},
		{"open missing dir", Encode(OP_OFL_A, Adr(0x300)), fs.ErrNotExist},
		{"size missing", Encode(OP_FSZ_RA, Reg(REG_RG0), Adr(0x200)), fs.ErrNotExist},
		{"delete missing", Encode(OP_DFL_A, Adr(0x200)), fs.ErrNotExist},
	}

	for _, entry := range table {
		cpu, _ := newTestFileCpu(t, entry.code)
		cpu.Memory.Load(0x200, []byte("missing.txt\x00"))
		cpu.Memory.Load(0x300, []byte("nodir/file.txt\x00"))

		_, err := cpu.Execute(false)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(uint64(1), cpu.Pc(), entry.name)
	}

	// Exists never fails.
	cpu, _ := newTestFileCpu(t, Encode(OP_FEX_RA, Reg(REG_RG0), Adr(0x300)))
	cpu.Memory.Load(0x300, []byte("nodir/file.txt\x00"))
	cpu.Register[REG_RG0] = 5
	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.Equal(uint64(0), cpu.Register[REG_RG0])

	// Only one file may be open.
	cpu, _ = newTestFileCpu(t, Encode(OP_OFL_A, Adr(0x200)), Encode(OP_OFL_A, Adr(0x200)))
	cpu.Memory.Load(0x200, []byte("a.txt\x00"))
	_, err = cpu.Execute(false)
	assert.NoError(err)
	_, err = cpu.Execute(false)
	assert.ErrorIs(err, io.ErrFileOperation)
}

func TestIo_HostFile(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	name := filepath.Join(root, "new.txt")
	missing := filepath.Join(root, "nodir", "new.txt")

	cpu := newTestCpu(t,
		Encode(OP_OFL_A, Adr(0x200)),
		Encode(OP_WFC_L, Lit('x')),
		Encode(OP_CFL),
		Encode(OP_OFL_A, Adr(0x300)),
	)
	cpu.Memory.Load(0x200, append([]byte(name), 0))
	cpu.Memory.Load(0x300, append([]byte(missing), 0))

	for range 3 {
		_, err := cpu.Execute(false)
		assert.NoError(err)
	}
	data, err := os.ReadFile(name)
	assert.NoError(err)
	assert.Equal("x", string(data))

	_, err = cpu.Execute(false)
	assert.ErrorIs(err, fs.ErrNotExist)
	assert.NoFileExists(missing)
}

var errCloseFailed = errors.New("close failed")

type failingHandle struct {
	*os.File
}

func (fh failingHandle) Close() error {
	fh.File.Close()
	return errCloseFailed
}

type failingFilesystem struct {
	io.Host
}

func (ff failingFilesystem) OpenFile(name string, flag int, perm fs.FileMode) (file io.Handle, err error) {
	osfile, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return
	}

	file = failingHandle{osfile}
	return
}

func TestIo_Close(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, Encode(OP_OFL_A, Adr(0x200)))
	assert.NoError(cpu.Close())

	cpu.Memory.Load(0x200, append([]byte(filepath.Join(t.TempDir(), "a.txt")), 0))
	cpu.File.Filesystem = failingFilesystem{}

	_, err := cpu.Execute(false)
	assert.NoError(err)
	assert.True(cpu.File.IsOpen())

	err = cpu.Close()
	assert.ErrorIs(err, errCloseFailed)
	assert.False(cpu.File.IsOpen())
	assert.NoError(cpu.Close())
}
