/*
   ppcpu arithmetic and logic instructions.

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
	"math/bits"
)

// Generate the ALU flags from a 32 bit computation. The extra width
// keeps the carry out of bit 15 visible in bit 16. Overflow follows the
// usual sign rule with the subtract input folded in.
func (cpu *CPU) setArithFlags(src1, src2, result uint32, sub bool) {
	var flags uint16

	if uint16(result) == 0 {
		flags |= FlagZ
	}
	if (result & 0x10000) != 0 {
		flags |= FlagC
	}
	if (result & 0x8000) != 0 {
		flags |= FlagN
	}
	subBit := uint32(0)
	if sub {
		subBit = 1
	}
	if (((src1>>15)^(src2>>15)^subBit^1)&((src1>>15)^(result>>15))&1) != 0 {
		flags |= FlagO
	}
	if (bits.OnesCount16(uint16(result)) & 1) == 0 {
		flags |= FlagP
	}
	cpu.flags = flags
}

// Register to register move.
func (cpu *CPU) opMov(step *stepInfo) {
	cpu.reg[step.rd] = cpu.reg[step.rs1]
	cpu.pc++
}

// Load immediate.
func (cpu *CPU) opLdi(step *stepInfo) {
	cpu.reg[step.rd] = step.imm
	cpu.pc++
}

// Add.
func (cpu *CPU) opAdd(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	result := src1 + src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Add immediate.
func (cpu *CPU) opAdi(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	result := src1 + src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Add with carry.
func (cpu *CPU) opAdc(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	carry := uint32(cpu.flags>>1) & 1
	result := src1 + src2 + carry
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Subtract.
func (cpu *CPU) opSub(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	result := src1 - src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, true)
	cpu.pc++
}

// Subtract with carry (borrow).
func (cpu *CPU) opSuc(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	carry := uint32(cpu.flags>>1) & 1
	result := src1 - src2 - carry
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, true)
	cpu.pc++
}

// Compare registers. Flags only, no destination.
func (cpu *CPU) opCmp(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	cpu.setArithFlags(src1, src2, src1-src2, true)
	cpu.pc++
}

// Compare with immediate.
func (cpu *CPU) opCmi(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	cpu.setArithFlags(src1, src2, src1-src2, true)
	cpu.pc++
}

// Test bits under mask. Flag generation is subtract style.
func (cpu *CPU) opCai(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	cpu.setArithFlags(src1, src2, src1&src2, true)
	cpu.pc++
}

// Logical and.
func (cpu *CPU) opAnd(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	result := src1 & src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Logical or.
func (cpu *CPU) opOrr(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	result := src1 | src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Logical exclusive or.
func (cpu *CPU) opXor(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(cpu.reg[step.rs2])
	result := src1 ^ src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// And immediate.
func (cpu *CPU) opAni(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	result := src1 & src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Or immediate.
func (cpu *CPU) opOri(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	result := src1 | src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Exclusive or immediate.
func (cpu *CPU) opXoi(step *stepInfo) {
	src1 := uint32(cpu.reg[step.rs1])
	src2 := uint32(step.imm)
	result := src1 ^ src2
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, src2, result, false)
	cpu.pc++
}

// Shift left by register or immediate amount.
func (cpu *CPU) shiftLeft(step *stepInfo, amount uint16) {
	src1 := uint32(cpu.reg[step.rs1])
	result := src1 << amount
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, uint32(amount), result, false)
	cpu.pc++
}

// Logical shift right.
func (cpu *CPU) shiftRight(step *stepInfo, amount uint16) {
	src1 := uint32(cpu.reg[step.rs1])
	result := src1 >> amount
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, uint32(amount), result, false)
	cpu.pc++
}

// Arithmetic shift right, sign extending.
func (cpu *CPU) shiftRightArith(step *stepInfo, amount uint16) {
	src1 := uint32(cpu.reg[step.rs1])
	result := uint32(uint16(int16(cpu.reg[step.rs1]) >> amount))
	cpu.reg[step.rd] = uint16(result)
	cpu.setArithFlags(src1, uint32(amount), result, false)
	cpu.pc++
}

func (cpu *CPU) opShl(step *stepInfo) {
	cpu.shiftLeft(step, cpu.reg[step.rs2])
}

func (cpu *CPU) opShr(step *stepInfo) {
	cpu.shiftRight(step, cpu.reg[step.rs2])
}

func (cpu *CPU) opSli(step *stepInfo) {
	cpu.shiftLeft(step, step.imm)
}

func (cpu *CPU) opSri(step *stepInfo) {
	cpu.shiftRight(step, step.imm)
}

func (cpu *CPU) opSar(step *stepInfo) {
	cpu.shiftRightArith(step, cpu.reg[step.rs2])
}

func (cpu *CPU) opSai(step *stepInfo) {
	cpu.shiftRightArith(step, step.imm)
}

// Sign extend the low byte of rs1.
func (cpu *CPU) opSex(step *stepInfo) {
	cpu.reg[step.rd] = uint16(int16(int8(uint8(cpu.reg[step.rs1]))))
	cpu.pc++
}

// Multiply, low 16 bits of the product. No flags.
func (cpu *CPU) opMul(step *stepInfo) {
	cpu.reg[step.rd] = uint16(uint32(cpu.reg[step.rs1]) * uint32(cpu.reg[step.rs2]))
	cpu.pc++
}

// Unsigned divide. Division by zero halts the emulation.
func (cpu *CPU) opDiv(step *stepInfo) {
	if cpu.reg[step.rs2] == 0 {
		panic(fmt.Sprintf("cpu: divide by zero at pc %04x", cpu.pc))
	}
	cpu.reg[step.rd] = cpu.reg[step.rs1] / cpu.reg[step.rs2]
	cpu.pc++
}

// Unsigned remainder. Division by zero halts the emulation.
func (cpu *CPU) opMod(step *stepInfo) {
	if cpu.reg[step.rs2] == 0 {
		panic(fmt.Sprintf("cpu: modulo by zero at pc %04x", cpu.pc))
	}
	cpu.reg[step.rd] = cpu.reg[step.rs1] % cpu.reg[step.rs2]
	cpu.pc++
}
