// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package debug

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vproc/cpu"
	"github.com/ezrec/vproc/memory"
)

var _condition_flags = []struct {
	Flag cpu.Flags
	Name string
}{
	{cpu.FLAG_ZERO, "zero"},
	{cpu.FLAG_CARRY, "carry"},
	{cpu.FLAG_FILE_END, "file_end"},
	{cpu.FLAG_SIGN, "sign"},
	{cpu.FLAG_OVERFLOW, "overflow"},
}

// Condition is a starlark expression evaluated against the processor state.
type Condition struct {
	Expr string // Expression text.
}

// NewCondition checks the syntax of an expression.
func NewCondition(expr string) (cond *Condition, err error) {
	opts := syntax.FileOptions{}
	_, err = opts.ParseExpr("condition", expr, 0)
	if err != nil {
		err = errors.Join(ErrCondition(expr), err)
		return
	}

	cond = &Condition{Expr: expr}
	return
}

func (cond *Condition) String() string {
	return cond.Expr
}

// Eval returns the truth of the condition for the processor state.
func (cond *Condition) Eval(cp *cpu.Cpu) (ok bool, err error) {
	thread := starlark.Thread{Name: "condition"}
	opts := syntax.FileOptions{}
	prog := "rc=(" + cond.Expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "condition", prog, predeclared(cp))
	if err != nil {
		err = errors.Join(ErrCondition(cond.Expr), err)
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = ErrCondition(cond.Expr)
		return
	}

	ok = bool(rc.Truth())
	return
}

// predeclared names visible to a condition.
func predeclared(cp *cpu.Cpu) (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for n, value := range cp.Register {
		pred[cpu.Register(n).String()] = starlark.MakeUint64(value)
	}

	flags := cp.Flags()
	for _, entry := range _condition_flags {
		pred[entry.Name] = starlark.Bool(flags.Has(entry.Flag))
	}

	pred["ticks"] = starlark.MakeInt(cp.Ticks)
	pred["mem8"] = memoryBuiltin(cp, "mem8", memory.WIDTH_BYTE)
	pred["mem16"] = memoryBuiltin(cp, "mem16", memory.WIDTH_WORD)
	pred["mem32"] = memoryBuiltin(cp, "mem32", memory.WIDTH_DWORD)
	pred["mem64"] = memoryBuiltin(cp, "mem64", memory.WIDTH_QWORD)
	pred["cstr"] = starlark.NewBuiltin("cstr", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		addr, err := unpackAddress(b, args, kwargs)
		if err != nil {
			return
		}

		text, err := cp.Memory.CString(addr)
		if err != nil {
			return
		}

		value = starlark.String(text)
		return
	})

	return
}

func unpackAddress(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (addr uint64, err error) {
	var value starlark.Int
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return
	}

	addr, ok := value.Uint64()
	if !ok {
		err = ErrAddress
		return
	}

	return
}

func memoryBuiltin(cp *cpu.Cpu, name string, width int) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		addr, err := unpackAddress(b, args, kwargs)
		if err != nil {
			return
		}

		data, err := cp.Memory.Read(addr, width)
		if err != nil {
			return
		}

		value = starlark.MakeUint64(data)
		return
	})
}
