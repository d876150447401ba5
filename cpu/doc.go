// Package cpu implements the virtual processor.
//
// The processor consists of sixteen 64-bit registers (rpo, rso, rsb, rsf,
// rrv, rfp and the general-purpose rg0-rg9), a flat little-endian memory,
// a stack growing down from the top of memory, and two I/O channels: the
// console and a single open file.
//
// Instructions are a single opcode byte followed by operands. The 0xFF
// prefix selects an extension set by the byte after it, and the set's
// opcode byte follows; set 0x01 holds the signed instructions. Each operand
// is a register byte, an 8-byte literal, an 8-byte address, or a pointer
// byte (register plus optional width selector and displacements).
package cpu
