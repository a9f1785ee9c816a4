/*
   ppcpu supervisor register tests.

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

package sreg

import "testing"

// Minimal CPU state for driving the register file.
type fakeCPU struct {
	pc    uint16
	flags uint16
}

func (f *fakeCPU) PC() uint16            { return f.pc }
func (f *fakeCPU) SetPC(pc uint16)       { f.pc = pc }
func (f *fakeCPU) Flags() uint16         { return f.flags }
func (f *fakeCPU) SetFlags(flags uint16) { f.flags = flags }

func TestResetState(t *testing.T) {
	sr := New(3)
	cpu := &fakeCPU{}

	if got := sr.Read(RegPriv, cpu); got != PrivPriv {
		t.Errorf("reset PRIV not correct got: %04x expected: %04x", got, PrivPriv)
	}
	if got := sr.Read(RegJTR, cpu); got != JtrInstPg {
		t.Errorf("reset JTR not correct got: %04x expected: %04x", got, JtrInstPg)
	}
	if got := sr.Read(RegCPUID, cpu); got != 0xb033 {
		t.Errorf("CPUID not correct got: %04x expected: b033", got)
	}
	if got := sr.Read(RegCoreID, cpu); got != 3 {
		t.Errorf("COREID not correct got: %04x expected: 0003", got)
	}
	if got := sr.Read(RegIMMU, cpu); got != 0xffe {
		t.Errorf("reset IMMU[0] not correct got: %04x expected: 0ffe", got)
	}
	if got := sr.Read(RegIMMU+1, cpu); got != 0xfff {
		t.Errorf("reset IMMU[1] not correct got: %04x expected: 0fff", got)
	}
}

func TestPCAndFlags(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{pc: 0x123, flags: 0x15}

	if got := sr.Read(RegPC, cpu); got != 0x123 {
		t.Errorf("PC read not correct got: %04x expected: 0123", got)
	}
	sr.Write(RegPC, 0x456, cpu)
	if cpu.pc != 0x456 {
		t.Errorf("PC write not correct got: %04x expected: 0456", cpu.pc)
	}

	if got := sr.Read(RegAluFlags, cpu); got != 0x15 {
		t.Errorf("flags read not correct got: %04x expected: 0015", got)
	}
	sr.Write(RegAluFlags, 0xffff, cpu)
	if cpu.flags != 0x1f {
		t.Errorf("flags write should mask to 5 bits got: %04x", cpu.flags)
	}
}

// PRIV and JTR writes are dropped outside supervisor mode.
func TestPrivilegeGate(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	sr.Write(RegJTR, 0b101, cpu)
	sr.JtrTrig()
	if got := sr.Read(RegJTR, cpu); got != 0b101 {
		t.Errorf("JTR write in supervisor mode not correct got: %04x", got)
	}

	// Drop out of supervisor mode; further PRIV and JTR writes stick.
	sr.Write(RegPriv, 0, cpu)
	sr.Write(RegPriv, PrivPriv, cpu)
	if got := sr.Read(RegPriv, cpu); got != 0 {
		t.Errorf("PRIV write without PRIV should be ignored got: %04x", got)
	}
	sr.Write(RegJTR, 0b111, cpu)
	sr.JtrTrig()
	if got := sr.Read(RegJTR, cpu); got != 0b101 {
		t.Errorf("JTR write without PRIV should be ignored got: %04x", got)
	}
}

// JTR writes park in the shadow until a trigger.
func TestJtrShadow(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	sr.Write(RegJTR, 0, cpu)
	if got := sr.Read(RegJTR, cpu); got != JtrInstPg {
		t.Errorf("JTR should hold reset value before trigger got: %04x", got)
	}
	sr.JtrTrig()
	if got := sr.Read(RegJTR, cpu); got != 0 {
		t.Errorf("JTR after trigger not correct got: %04x expected: 0000", got)
	}
}

// With paging off every address passes through under the tag bit.
func TestImmuIdentity(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}
	sr.Write(RegJTR, 0, cpu)
	sr.JtrTrig()

	for _, addr := range []uint16{0, 1, 0x1234, 0x7ffe} {
		if got := sr.ImmuTranslate(addr); got != 0x800000|uint32(addr) {
			t.Errorf("identity translate of %04x not correct got: %06x", addr, got)
		}
	}
}

// Paged instruction translation: 4 bit page index over a 12 bit offset.
func TestImmuPaged(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	if got := sr.ImmuTranslate(0x0123); got != (0xffe<<12)|0x123 {
		t.Errorf("paged translate not correct got: %06x expected: %06x",
			got, uint32(0xffe<<12)|0x123)
	}

	sr.Write(RegIMMU+2, 0xabc, cpu)
	if got := sr.ImmuTranslate(0x2345); got != (0xabc<<12)|0x345 {
		t.Errorf("paged translate not correct got: %06x expected: %06x",
			got, uint32(0xabc<<12)|0x345)
	}

	// Entry values mask to 12 bits.
	sr.Write(RegIMMU+3, 0xffff, cpu)
	if got := sr.Read(RegIMMU+3, cpu); got != 0x0fff {
		t.Errorf("IMMU entry should mask to 12 bits got: %04x", got)
	}
}

// Data translation: identity tag with paging off, 4 bit index over an
// 11 bit offset with paging on, 13 bit entries.
func TestDmmuTranslate(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	if got := sr.DmmuTranslate(0x1234); got != 0x100000|0x1234 {
		t.Errorf("identity data translate not correct got: %06x", got)
	}

	sr.Write(RegPriv, PrivPriv|PrivDatPg, cpu)
	sr.Write(RegDMMU+2, 0x1abc, cpu)
	if got := sr.DmmuTranslate(0x1000 + 0x345); got != (0x1abc<<11)|0x345 {
		t.Errorf("paged data translate not correct got: %06x expected: %06x",
			got, uint32(0x1abc<<11)|0x345)
	}

	sr.Write(RegDMMU+4, 0xffff, cpu)
	if got := sr.Read(RegDMMU+4, cpu); got != 0x1fff {
		t.Errorf("DMMU entry should mask to 13 bits got: %04x", got)
	}
}

// DMMU writes must not land in the instruction table.
func TestMmuTablesSeparate(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	sr.Write(RegDMMU+5, 0x0777, cpu)
	if got := sr.Read(RegIMMU+5, cpu); got != 0 {
		t.Errorf("DMMU write leaked into IMMU got: %04x", got)
	}
	if got := sr.Read(RegDMMU+5, cpu); got != 0x0777 {
		t.Errorf("DMMU entry not correct got: %04x expected: 0777", got)
	}
}

// Entries past the table read as zero.
func TestUndefinedReadsZero(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}
	for _, addr := range []uint16{0x20, 0x99, RegIMMU + 16, RegDMMU + 16, 0x300} {
		if got := sr.Read(addr, cpu); got != 0 {
			t.Errorf("read of %04x not correct got: %04x expected: 0000", addr, got)
		}
	}
}

func TestInterruptEntryReturn(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{pc: 0x101}

	// Nothing pending, nothing happens.
	if sr.Interrupt(cpu) {
		t.Error("dispatch with nothing pending should do nothing")
	}

	// Pending but masked.
	sr.AddInterrupt(IrqSys)
	if sr.Interrupt(cpu) {
		t.Error("dispatch with interrupts masked should do nothing")
	}

	sr.Write(RegPriv, PrivPriv|PrivIrq, cpu)
	if !sr.Interrupt(cpu) {
		t.Error("dispatch should take the pending interrupt")
	}
	if cpu.pc != 0 {
		t.Errorf("vector pc not correct got: %04x expected: 0000", cpu.pc)
	}
	if got := sr.Read(RegIrqPC, cpu); got != 0x101 {
		t.Errorf("IRQ_PC not correct got: %04x expected: 0101", got)
	}
	if (sr.Read(RegPriv, cpu) & PrivIrq) != 0 {
		t.Error("entry should clear the IRQ enable")
	}
	if got := sr.Read(RegIrqFlags, cpu); got != IrqSys {
		t.Errorf("pending word should stay for the handler got: %04x", got)
	}

	// No reentry while masked.
	if sr.Interrupt(cpu) {
		t.Error("dispatch inside the handler should do nothing")
	}

	if got := sr.Irt(); got != 0x101 {
		t.Errorf("IRT return not correct got: %04x expected: 0101", got)
	}
	if (sr.Read(RegPriv, cpu) & PrivIrq) == 0 {
		t.Error("IRT should re-enable interrupts")
	}
}

// IC_INT_SET and IC_INT_RESET manipulate the pending word.
func TestIntSetReset(t *testing.T) {
	sr := New(0)
	cpu := &fakeCPU{}

	sr.Write(RegIntSet, IrqSys|IrqExt, cpu)
	if got := sr.Read(RegIrqFlags, cpu); got != (IrqSys | IrqExt) {
		t.Errorf("pending word not correct got: %04x expected: %04x", got, IrqSys|IrqExt)
	}
	sr.Write(RegIntReset, IrqSys, cpu)
	if got := sr.Read(RegIrqFlags, cpu); got != IrqExt {
		t.Errorf("pending word not correct got: %04x expected: %04x", got, IrqExt)
	}

	// The pending word itself is read only from the outside.
	sr.Write(RegIrqFlags, 0xffff, cpu)
	if got := sr.Read(RegIrqFlags, cpu); got != IrqExt {
		t.Errorf("IRQ_FL should not be directly writable got: %04x", got)
	}
}
