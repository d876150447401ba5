// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"context"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/vproc/cpu"
	"github.com/ezrec/vproc/debug"
	"github.com/ezrec/vproc/image"
	"github.com/ezrec/vproc/internal"
)

const (
	MEMORY_SIZE = 2046 // Default memory size.
)

var _emulator_defines = map[string]string{
	"IMAGE_VERSION": image.VERSION.String(),
}

// Emulator state. CPU + console + file channel + loaded image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Image    *image.Image // Currently loaded image.

	MaxTicks int // If non-zero, Run stops with ErrTickLimit after this many instructions.
}

// NewEmulator creates a new emulator with the given memory size.
func NewEmulator(size uint64) (emu *Emulator) {
	emu = &Emulator{
		Cpu:   cpu.NewCpu(size),
		Image: &image.Image{Version: image.VERSION},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Console.Defines(),
	)
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	err = emu.Cpu.Close()

	return
}

// LoadImage reads a program and resets the emulator to run it.
// Data starting with image.MAGIC is parsed as an executable image, and
// anything else is loaded as a raw program. Use LoadRaw for a raw
// program whose first bytes happen to match the magic.
func (emu *Emulator) LoadImage(r goio.Reader) (err error) {
	data, err := goio.ReadAll(r)
	if err != nil {
		return
	}

	img := &image.Image{Version: image.VERSION, Program: data}
	if image.IsImage(data) {
		err = img.Unmarshal(bytes.NewReader(data))
		if err != nil {
			return
		}
	}

	err = emu.load(img)
	return
}

// LoadRaw reads a raw program, loaded at address 0 with no header
// detection, and resets the emulator to run it.
func (emu *Emulator) LoadRaw(r goio.Reader) (err error) {
	data, err := goio.ReadAll(r)
	if err != nil {
		return
	}

	err = emu.load(&image.Image{Version: image.VERSION, Program: data})
	return
}

func (emu *Emulator) load(img *image.Image) (err error) {
	if emu.Verbose {
		log.Printf("emulator: image %v, features 0x%x, entry 0x%x, %d bytes",
			img.Version, uint64(img.Features), img.EntryPoint, len(img.Program))
	}

	emu.Image = img

	err = emu.Reset()
	return
}

// Reset the processor and reload the current image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = false

	emu.Cpu.Reset()

	err = emu.Cpu.LoadProgram(emu.Image.Program)
	if err != nil {
		return
	}

	emu.Cpu.Register[cpu.REG_RPO] = emu.Image.EntryPoint

	emu.Cpu.Verbose = emu.Verbose

	return
}

// Tick executes a single instruction.
// Returns done once the program halts.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, Err: err}
		}
	}()

	done, err = emu.Cpu.Execute(false)
	return
}

// Debugger returns a debugger that steps the emulator through Tick.
func (emu *Emulator) Debugger() (dbg *debug.Debugger) {
	dbg = debug.NewDebugger(emu.Cpu)
	dbg.Verbose = emu.Verbose
	dbg.Tick = emu.Tick

	return
}

// Run ticks until the program halts, fails, runs out of ticks, or the
// context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
