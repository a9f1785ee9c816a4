/*
   ppcpu control transfer and supervisor instructions.

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
	"fmt"
	"log/slog"

	"github.com/rcornwell/ppcpu/emu/sreg"
)

// Conditional jump predicates, indexed by the four bit condition code
// packed as (rs1<<3)|rd. Entries past jleu are unassigned.
var jmpConds = [16]struct {
	name string
	test func(flags uint16) bool
}{
	0x0: {"jmp", func(_ uint16) bool { return true }},
	0x1: {"jca", func(f uint16) bool { return (f & FlagC) != 0 }},
	0x2: {"jeq", func(f uint16) bool { return (f & FlagZ) != 0 }},
	0x3: {"jlt", func(f uint16) bool { return (f & FlagN) != 0 }},
	0x4: {"jgt", func(f uint16) bool { return (f & (FlagN | FlagZ)) == 0 }},
	0x5: {"jle", func(f uint16) bool { return (f & (FlagN | FlagZ)) != 0 }},
	0x6: {"jge", func(f uint16) bool { return (f & FlagN) == 0 }},
	0x7: {"jne", func(f uint16) bool { return (f & FlagZ) == 0 }},
	0x8: {"jovf", func(f uint16) bool { return (f & FlagO) != 0 }},
	0x9: {"jpar", func(f uint16) bool { return (f & FlagP) != 0 }},
	0xa: {"jgtu", func(f uint16) bool { return (f & (FlagC | FlagZ)) == 0 }},
	0xb: {"jgeu", func(f uint16) bool { return (f & FlagC) == 0 }},
	0xc: {"jleu", func(f uint16) bool { return (f & (FlagC | FlagZ)) != 0 }},
}

// Conditional jump. A taken jump loads PC from the immediate and
// swaps in the shadow JTR; a jump not taken falls through. Unknown
// condition codes fall through with a warning.
func (cpu *CPU) opJmp(step *stepInfo) {
	code := ((step.rs1 << 3) | step.rd) & 0xf
	cond := &jmpConds[code]
	if cond.test == nil {
		slog.Warn(fmt.Sprintf("cpu: unknown jump condition %x at pc %04x", code, cpu.pc))
		cpu.pc++
		return
	}
	if cond.test(cpu.flags) {
		cpu.pc = step.imm
		cpu.sregs.JtrTrig()
	} else {
		cpu.pc++
	}
}

// Jump and link: save the return address and branch. Always taken, so
// the JTR shadow swaps in.
func (cpu *CPU) opJal(step *stepInfo) {
	cpu.reg[step.rd] = cpu.pc + 1
	cpu.pc = step.imm
	cpu.sregs.JtrTrig()
}

// Read a supervisor register.
func (cpu *CPU) opSrl(step *stepInfo) {
	cpu.reg[step.rd] = cpu.sregs.Read(step.imm, cpu)
	cpu.pc++
}

// Write a supervisor register. A write to the PC register is a branch
// and supplies the next PC itself; everything else falls through.
func (cpu *CPU) opSrs(step *stepInfo) {
	cpu.sregs.Write(step.imm, cpu.reg[step.rs1], cpu)
	if step.imm != sreg.RegPC {
		cpu.pc++
	}
}

// Software trap: raise the SYS interrupt line. The dispatch at the end
// of the tick takes it from there.
func (cpu *CPU) opSys(_ *stepInfo) {
	cpu.sregs.AddInterrupt(sreg.IrqSys)
	cpu.pc++
}

// Interrupt return.
func (cpu *CPU) opIrt(_ *stepInfo) {
	cpu.pc = cpu.sregs.Irt()
}

// No operation.
func (cpu *CPU) opNop(_ *stepInfo) {
	cpu.pc++
}
