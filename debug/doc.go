// Package debug steps a processor under breakpoint control.
//
// Breakpoints are either a register compared against a value, written
// "rg0==5", or a starlark expression over the processor state, such as
// "rg0 > 3 and not zero". Conditions see every register by name, the
// flags as booleans, the tick count, and the memory builtins mem8, mem16,
// mem32, mem64 and cstr.
package debug
