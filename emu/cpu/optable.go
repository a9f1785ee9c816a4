/*
   ppcpu opcode dispatch table.

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

import "fmt"

// Disassembly formatters for the handful of operand shapes.
func disRRR(name string) func(*stepInfo) string {
	return func(step *stepInfo) string {
		return fmt.Sprintf("%s r%d, r%d, r%d", name, step.rd, step.rs1, step.rs2)
	}
}

func disRRI(name string) func(*stepInfo) string {
	return func(step *stepInfo) string {
		return fmt.Sprintf("%s r%d, r%d, %d", name, step.rd, step.rs1, step.imm)
	}
}

func disRR(name string) func(*stepInfo) string {
	return func(step *stepInfo) string {
		return fmt.Sprintf("%s r%d, r%d", name, step.rd, step.rs1)
	}
}

func disBare(name string) func(*stepInfo) string {
	return func(_ *stepInfo) string {
		return name
	}
}

func disJmp(step *stepInfo) string {
	code := ((step.rs1 << 3) | step.rd) & 0xf
	name := jmpConds[code].name
	if name == "" {
		name = fmt.Sprintf("j?%x", code)
	}
	return fmt.Sprintf("%s 0x%02x", name, step.imm)
}

// Opcode dispatch table, indexed by the six bit opcode field. Entries
// left zero execute as NOP with a warning.
var opTable = [0x40]operation{
	OpNOP: {(*CPU).opNop, disBare("nop")},
	OpMOV: {(*CPU).opMov, disRR("mov")},
	OpLDD: {(*CPU).opLdd, func(s *stepInfo) string { return fmt.Sprintf("ldd r%d, %d", s.rd, s.imm) }},
	OpLDO: {(*CPU).opLdo, func(s *stepInfo) string { return fmt.Sprintf("ldo r%d, %d(r%d)", s.rd, s.imm, s.rs1) }},
	OpLDI: {(*CPU).opLdi, func(s *stepInfo) string { return fmt.Sprintf("ldi r%d, %d", s.rd, s.imm) }},
	OpSTD: {(*CPU).opStd, func(s *stepInfo) string { return fmt.Sprintf("std r%d, %d", s.rs1, s.imm) }},
	OpSTO: {(*CPU).opSto, func(s *stepInfo) string { return fmt.Sprintf("sto r%d, %d(r%d)", s.rs1, s.imm, s.rs2) }},
	OpADD: {(*CPU).opAdd, disRRR("add")},
	OpADI: {(*CPU).opAdi, disRRI("adi")},
	OpADC: {(*CPU).opAdc, disRRR("adc")},
	OpSUB: {(*CPU).opSub, disRRR("sub")},
	OpSUC: {(*CPU).opSuc, disRRR("suc")},
	OpCMP: {(*CPU).opCmp, func(s *stepInfo) string { return fmt.Sprintf("cmp r%d, r%d", s.rs1, s.rs2) }},
	OpCMI: {(*CPU).opCmi, func(s *stepInfo) string { return fmt.Sprintf("cmi r%d, %d", s.rs1, s.imm) }},
	OpJMP: {(*CPU).opJmp, disJmp},
	OpJAL: {(*CPU).opJal, func(s *stepInfo) string { return fmt.Sprintf("jal r%d, 0x%02x", s.rd, s.imm) }},
	OpSRL: {(*CPU).opSrl, func(s *stepInfo) string { return fmt.Sprintf("srl r%d, %#x", s.rd, s.imm) }},
	OpSRS: {(*CPU).opSrs, func(s *stepInfo) string { return fmt.Sprintf("srs r%d, %#x", s.rs1, s.imm) }},
	OpSYS: {(*CPU).opSys, disBare("sys")},
	OpAND: {(*CPU).opAnd, disRRR("and")},
	OpORR: {(*CPU).opOrr, disRRR("orr")},
	OpXOR: {(*CPU).opXor, disRRR("xor")},
	OpANI: {(*CPU).opAni, disRRI("ani")},
	OpORI: {(*CPU).opOri, disRRI("ori")},
	OpXOI: {(*CPU).opXoi, disRRI("xoi")},
	OpSHL: {(*CPU).opShl, disRRR("shl")},
	OpSHR: {(*CPU).opShr, disRRR("shr")},
	OpCAI: {(*CPU).opCai, func(s *stepInfo) string { return fmt.Sprintf("cai r%d, %d", s.rs1, s.imm) }},
	OpMUL: {(*CPU).opMul, disRRR("mul")},
	OpDIV: {(*CPU).opDiv, disRRR("div")},
	OpIRT: {(*CPU).opIrt, disBare("irt")},
	OpLD8: {(*CPU).opLd8, func(s *stepInfo) string { return fmt.Sprintf("ld8 r%d, %d", s.rd, s.imm) }},
	OpLO8: {(*CPU).opLo8, func(s *stepInfo) string { return fmt.Sprintf("lo8 r%d, %d(r%d)", s.rd, s.imm, s.rs1) }},
	OpSD8: {(*CPU).opSd8, func(s *stepInfo) string { return fmt.Sprintf("sd8 r%d, %d", s.rs1, s.imm) }},
	OpSO8: {(*CPU).opSo8, func(s *stepInfo) string { return fmt.Sprintf("so8 r%d, %d(r%d)", s.rs1, s.imm, s.rs2) }},
	OpSLI: {(*CPU).opSli, disRRI("sli")},
	OpSRI: {(*CPU).opSri, disRRI("sri")},
	OpSAR: {(*CPU).opSar, disRRR("sar")},
	OpSAI: {(*CPU).opSai, disRRI("sai")},
	OpSEX: {(*CPU).opSex, disRR("sex")},
	OpMOD: {(*CPU).opMod, disRRR("mod")},
}
