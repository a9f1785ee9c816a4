/*
   ppcpu load and store instructions.

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

// Load word direct.
func (cpu *CPU) opLdd(step *stepInfo) {
	cpu.reg[step.rd] = cpu.read(step.imm, true)
	cpu.pc++
}

// Load word with register offset.
func (cpu *CPU) opLdo(step *stepInfo) {
	cpu.reg[step.rd] = cpu.read(step.imm+cpu.reg[step.rs1], true)
	cpu.pc++
}

// Store word direct.
func (cpu *CPU) opStd(step *stepInfo) {
	cpu.write(step.imm, true, cpu.reg[step.rs1])
	cpu.pc++
}

// Store word with register offset. The offset register is rs2; rs1
// carries the value.
func (cpu *CPU) opSto(step *stepInfo) {
	cpu.write(step.imm+cpu.reg[step.rs2], true, cpu.reg[step.rs1])
	cpu.pc++
}

// Load byte direct.
func (cpu *CPU) opLd8(step *stepInfo) {
	cpu.reg[step.rd] = cpu.read(step.imm, false)
	cpu.pc++
}

// Load byte with register offset.
func (cpu *CPU) opLo8(step *stepInfo) {
	cpu.reg[step.rd] = cpu.read(step.imm+cpu.reg[step.rs1], false)
	cpu.pc++
}

// Store byte direct.
func (cpu *CPU) opSd8(step *stepInfo) {
	cpu.write(step.imm, false, cpu.reg[step.rs1])
	cpu.pc++
}

// Store byte with register offset.
func (cpu *CPU) opSo8(step *stepInfo) {
	cpu.write(step.imm+cpu.reg[step.rs2], false, cpu.reg[step.rs1])
	cpu.pc++
}
