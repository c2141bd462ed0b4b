// Package cpu implements the instruction-cycle model for the simulator.
//
// The machine consists of eight 32-bit general purpose registers (R0-R7),
// a word-addressable memory, a program counter, and per-stage control
// signals. Programs are ordered lines of instruction text; each line
// passes through an explicit fetch, decode, and execute stage, and the
// machine records which registers and memory words the last execute
// touched so a presenter can highlight them.
package cpu
