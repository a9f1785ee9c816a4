/*
   ppcpu fetch, decode and tick loop.

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

	"github.com/rcornwell/ppcpu/emu/bus"
	"github.com/rcornwell/ppcpu/emu/sreg"
)

/*
   The ppcpu is a 16 bit processor with eight general registers, a five
   bit ALU flag word and a supervisor register file holding privilege
   state, the interrupt machinery and two 16 entry page tables.

   Instructions are a fixed 32 bits, little endian on the wire:

      +--------+-+----+----+----+----------------+
      | opcode | | rd |rs1 |rs2 |      imm       |
      +--------+-+----+----+----+----------------+
       0      5 6 7  9 10 12 13 15 16          31

   The program counter steps in instruction units; a fetch reads two
   consecutive 16 bit bus words through the instruction MMU. All data
   access goes through the data MMU and the bus; the CPU never names a
   peripheral directly.
*/

// Create a CPU attached to the given bus and supervisor state.
func New(wb *bus.Bus, sregs *sreg.Sregs) *CPU {
	return &CPU{sregs: sregs, bus: wb}
}

// Register accessors for the debugger and the front panel. Register
// indices are three bits wide.
func (cpu *CPU) Reg(num uint8) uint16 {
	return cpu.reg[num&7]
}

func (cpu *CPU) SetReg(num uint8, value uint16) {
	cpu.reg[num&7] = value
}

func (cpu *CPU) PC() uint16 {
	return cpu.pc
}

func (cpu *CPU) SetPC(pc uint16) {
	cpu.pc = pc
}

func (cpu *CPU) Flags() uint16 {
	return cpu.flags
}

func (cpu *CPU) SetFlags(flags uint16) {
	cpu.flags = flags
}

// Sregs returns the supervisor register file this core runs with.
func (cpu *CPU) Sregs() *sreg.Sregs {
	return cpu.sregs
}

// Compute the bus address and byte select for a data access. Data
// addresses from the CPU are in byte units; the data MMU translates
// the word part and the low bit picks the byte lane.
func (cpu *CPU) dataAddr(cpuAddr uint16, word bool) (uint32, uint8) {
	wbAddr := cpu.sregs.DmmuTranslate(cpuAddr >> 1)
	sel := uint8(0b11)
	if !word {
		sel = 0b01 << (cpuAddr & 1)
	}
	return wbAddr, sel
}

// Read a word or byte through the data MMU. A byte read returns the
// selected byte right justified.
func (cpu *CPU) read(cpuAddr uint16, word bool) uint16 {
	wbAddr, sel := cpu.dataAddr(cpuAddr, word)
	value := cpu.bus.Read(wbAddr, sel)
	if !word {
		value = (value >> ((cpuAddr & 1) * 8)) & 0xff
	}
	return value
}

// Write a word or byte through the data MMU. Byte payloads travel
// right justified; the device places them in the selected lane.
func (cpu *CPU) write(cpuAddr uint16, word bool, data uint16) {
	wbAddr, sel := cpu.dataAddr(cpuAddr, word)
	cpu.bus.Write(wbAddr, sel, data)
}

// Fetch the 32 bit instruction at PC through the instruction MMU: two
// bus reads with full select, low word first.
func (cpu *CPU) fetch() uint32 {
	baseAddr := cpu.sregs.ImmuTranslate(cpu.pc << 1)
	lowPart := uint32(cpu.bus.Read(baseAddr, 0b11))
	highPart := uint32(cpu.bus.Read(baseAddr+1, 0b11))
	return (highPart << 16) | lowPart
}

// Extract the instruction fields. Unused bits are simply not looked at.
func decode(raw uint32) stepInfo {
	return stepInfo{
		opcode: uint8(raw & 0x3f),
		rd:     uint8((raw >> 7) & 7),
		rs1:    uint8((raw >> 10) & 7),
		rs2:    uint8((raw >> 13) & 7),
		imm:    uint16(raw >> 16),
	}
}

// Execute one decoded instruction. Unknown opcodes run as NOP so
// execution can continue.
func (cpu *CPU) execute(step *stepInfo) {
	op := &opTable[step.opcode]
	if op.execute == nil {
		slog.Warn(fmt.Sprintf("cpu: unknown opcode %02x at pc %04x", step.opcode, cpu.pc))
		cpu.pc++
		return
	}
	op.execute(cpu, step)
}

// One machine step: fetch, execute, then give the supervisor state a
// chance to divert into the interrupt vector. An instruction is atomic
// with respect to interrupt injection.
func (cpu *CPU) Tick() {
	step := decode(cpu.fetch())
	cpu.execute(&step)
	cpu.sregs.Interrupt(cpu)
}

// Disassemble one raw instruction word.
func Disassemble(raw uint32) string {
	step := decode(raw)
	op := &opTable[step.opcode]
	if op.dis == nil {
		return fmt.Sprintf("dw %08x", raw)
	}
	return op.dis(&step)
}
