/*
   ppcpu CPU state and instruction encoding definitions.

   Copyright 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE.
*/

package cpu

import (
	"github.com/rcornwell/ppcpu/emu/bus"
	"github.com/rcornwell/ppcpu/emu/sreg"
)

// One decoded instruction. Instructions are 32 bits: a 6 bit opcode,
// three 3 bit register fields and a 16 bit immediate. Unused bits are
// ignored by the decoder.
type stepInfo struct {
	opcode uint8  // Bits 0-5
	rd     uint8  // Bits 7-9, destination register
	rs1    uint8  // Bits 10-12, first source register
	rs2    uint8  // Bits 13-15, second source register
	imm    uint16 // Bits 16-31, immediate
}

// CPU holds one core: eight general registers, the program counter in
// instruction units, the five ALU flags, and handles to the supervisor
// state and the bus everything else is reached through.
type CPU struct {
	reg   [8]uint16
	pc    uint16
	flags uint16

	sregs *sreg.Sregs
	bus   *bus.Bus
}

// ALU flag bits. Only the low five bits of the flag word are used.
const (
	FlagZ uint16 = 1 << 0 // Zero
	FlagC uint16 = 1 << 1 // Carry
	FlagN uint16 = 1 << 2 // Negative
	FlagO uint16 = 1 << 3 // Signed overflow
	FlagP uint16 = 1 << 4 // Even parity
)

// Opcodes.
const (
	OpNOP uint8 = 0x00
	OpMOV uint8 = 0x01
	OpLDD uint8 = 0x02
	OpLDO uint8 = 0x03
	OpLDI uint8 = 0x04
	OpSTD uint8 = 0x05
	OpSTO uint8 = 0x06
	OpADD uint8 = 0x07
	OpADI uint8 = 0x08
	OpADC uint8 = 0x09
	OpSUB uint8 = 0x0a
	OpSUC uint8 = 0x0b
	OpCMP uint8 = 0x0c
	OpCMI uint8 = 0x0d
	OpJMP uint8 = 0x0e
	OpJAL uint8 = 0x0f
	OpSRL uint8 = 0x10
	OpSRS uint8 = 0x11
	OpSYS uint8 = 0x12
	OpAND uint8 = 0x13
	OpORR uint8 = 0x14
	OpXOR uint8 = 0x15
	OpANI uint8 = 0x16
	OpORI uint8 = 0x17
	OpXOI uint8 = 0x18
	OpSHL uint8 = 0x19
	OpSHR uint8 = 0x1a
	OpCAI uint8 = 0x1b
	OpMUL uint8 = 0x1c
	OpDIV uint8 = 0x1d
	OpIRT uint8 = 0x1e
	OpLD8 uint8 = 0x1f
	OpLO8 uint8 = 0x20
	OpSD8 uint8 = 0x21
	OpSO8 uint8 = 0x22
	OpSLI uint8 = 0x23
	OpSRI uint8 = 0x24
	OpSAR uint8 = 0x25
	OpSAI uint8 = 0x26
	OpSEX uint8 = 0x27
	OpMOD uint8 = 0x2c
)

// One dispatch table entry: how to run the instruction and how to
// print it.
type operation struct {
	execute func(cpu *CPU, step *stepInfo)
	dis     func(step *stepInfo) string
}
