// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ezrec/vproc/debug"
	"github.com/ezrec/vproc/emulator"
	"github.com/ezrec/vproc/io"
)

type breakpointList []string

func (bl *breakpointList) String() string {
	return strings.Join(*bl, ",")
}

func (bl *breakpointList) Set(value string) error {
	*bl = append(*bl, value)
	return nil
}

func main() {
	var input string
	var output string
	var memsize uint64
	var sandbox string
	var breakpoints breakpointList
	var maxTicks int
	var echo bool
	var raw bool
	var verbose bool

	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.Uint64Var(&memsize, "m", emulator.MEMORY_SIZE, "Memory size, in bytes")
	flag.StringVar(&sandbox, "d", "", "Confine file operations to this directory")
	flag.Var(&breakpoints, "b", "Breakpoint, 'reg==value' or a condition (repeatable)")
	flag.IntVar(&maxTicks, "t", 0, "Maximum instructions to execute, 0 for no limit")
	flag.BoolVar(&echo, "e", false, "Echo console input")
	flag.BoolVar(&raw, "r", false, "Load the program as raw bytes, never as an image")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected one program file, got: %v", os.Args[0], flag.Args())
	}
	program := flag.Arg(0)

	emu := emulator.NewEmulator(memsize)
	defer emu.Close()
	emu.Verbose = verbose
	emu.MaxTicks = maxTicks
	emu.Console.Echo = echo

	if sandbox != "" {
		dir, err := io.OpenDir(sandbox)
		if err != nil {
			log.Fatalf("%v: %v", sandbox, err)
		}
		defer dir.Close()
		emu.File.Filesystem = dir
	}

	if input == "-" {
		emu.Console.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Console.Input = inf
	}

	if output == "-" {
		emu.Console.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Console.Output = ouf
	}

	inf, err := os.Open(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
	if raw {
		err = emu.LoadRaw(inf)
	} else {
		err = emu.LoadImage(inf)
	}
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(breakpoints) == 0 {
		err = emu.Run(ctx)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		return
	}

	dbg := emu.Debugger()
	for _, bp := range breakpoints {
		err = dbg.Add(bp)
		if err != nil {
			log.Fatalf("-b %v: %v", bp, err)
		}
	}

	for {
		reason, err := dbg.Continue(ctx)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		if reason == debug.STOP_HALT {
			return
		}
		fmt.Fprintf(os.Stderr, "%v %v\n%v", reason, dbg.Hit, dbg.State())
	}
}
