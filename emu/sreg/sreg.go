/*
   ppcpu - Supervisor registers and MMU.

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

// CPUState is the slice of processor state the supervisor registers
// reach into: the program counter and the live ALU flags.
type CPUState interface {
	PC() uint16
	SetPC(pc uint16)
	Flags() uint16
	SetFlags(flags uint16)
}

// Supervisor register indices.
const (
	RegPC          uint16 = 0  // Program counter
	RegPriv        uint16 = 1  // Privilege word
	RegJTR         uint16 = 2  // Jump trap register (buffered)
	RegIrqPC       uint16 = 3  // Saved PC for interrupt return
	RegAluFlags    uint16 = 4  // Live ALU flags
	RegIrqFlags    uint16 = 5  // Pending interrupt word
	RegScratch     uint16 = 6  // Scratch
	RegCPUID       uint16 = 7  // Constant CPU identifier
	RegCoreID      uint16 = 8  // Core number, set at construction
	RegIntSet      uint16 = 9  // Request interrupt bits
	RegIntReset    uint16 = 10 // Clear interrupt bits
	RegCoreDisable uint16 = 11 // Reserved, not modeled
	RegIMMU        uint16 = 0x100
	RegDMMU        uint16 = 0x200
)

// Privilege word bits.
const (
	PrivPriv  uint16 = 0b0001 // Supervisor mode
	PrivDatPg uint16 = 0b0010 // Data paging enabled
	PrivIrq   uint16 = 0b0100 // Interrupts enabled
)

// Jump trap register bits.
const (
	JtrInstPg uint16 = 0b001 // Instruction paging enabled
)

// Interrupt flag codes.
const (
	IrqSys uint16 = 0x0001 // Software trap (SYS)
	IrqExt uint16 = 0x0002 // Interrupt controller line
)

const (
	cpuID uint16 = 0xb033

	mmuSize = 16

	immuDisabledMask uint32 = 0x80_0000
	dmmuDisabledMask uint32 = 0x10_0000
)

// Sregs holds one core's supervisor state: privilege, the buffered
// jump trap register, interrupt state and both page tables.
type Sregs struct {
	priv     uint16
	jtr      uint16
	jtrBuff  uint16
	irqPC    uint16
	irqFlags uint16
	scratch  uint16

	immu [mmuSize]uint16
	dmmu [mmuSize]uint16

	coreID uint16
}

// Create supervisor state in its reset configuration: supervisor mode,
// instruction paging on with the boot ROM pages mapped at entry 0, data
// paging and interrupts off.
func New(coreID uint16) *Sregs {
	sr := &Sregs{
		priv:    PrivPriv,
		jtr:     JtrInstPg,
		jtrBuff: JtrInstPg,
		coreID:  coreID,
	}
	sr.immu[0] = 0xffe
	sr.immu[1] = 0xfff
	return sr
}

// Read a supervisor register. Undefined indices read as zero.
func (sr *Sregs) Read(addr uint16, cpu CPUState) uint16 {
	switch addr {
	case RegPC:
		return cpu.PC()
	case RegPriv:
		return sr.priv
	case RegJTR:
		return sr.jtr
	case RegIrqPC:
		return sr.irqPC
	case RegAluFlags:
		return cpu.Flags()
	case RegIrqFlags:
		return sr.irqFlags
	case RegScratch:
		return sr.scratch
	case RegCPUID:
		return cpuID
	case RegCoreID:
		return sr.coreID
	}
	if addr >= RegIMMU && addr < RegIMMU+mmuSize {
		return sr.immu[addr-RegIMMU]
	}
	if addr >= RegDMMU && addr < RegDMMU+mmuSize {
		return sr.dmmu[addr-RegDMMU]
	}
	return 0
}

// Write a supervisor register. PRIV and JTR are gated on the PRIV bit;
// a write without it is dropped, as the hardware gates it. JTR writes
// land in the shadow register and take effect at the next taken branch.
func (sr *Sregs) Write(addr uint16, data uint16, cpu CPUState) {
	switch addr {
	case RegPC:
		cpu.SetPC(data)
	case RegPriv:
		if (sr.priv & PrivPriv) != 0 {
			sr.priv = data
		}
	case RegJTR:
		if (sr.priv & PrivPriv) != 0 {
			sr.jtrBuff = data & 0b111
		}
	case RegIrqPC:
		sr.irqPC = data
	case RegAluFlags:
		cpu.SetFlags(data & 0x1f)
	case RegScratch:
		sr.scratch = data
	case RegIntSet:
		sr.AddInterrupt(data)
	case RegIntReset:
		sr.irqFlags &^= data
	}

	if addr >= RegIMMU && addr < RegIMMU+mmuSize {
		sr.immu[addr-RegIMMU] = data & 0x0fff
	}
	if addr >= RegDMMU && addr < RegDMMU+mmuSize {
		sr.dmmu[addr-RegDMMU] = data & 0x1fff
	}
}

// Copy the JTR shadow into the active register. Called on every taken
// control transfer so software can flip instruction paging together
// with the jump that lands in the newly mapped code.
func (sr *Sregs) JtrTrig() {
	sr.jtr = sr.jtrBuff
}

// Translate an instruction byte address to a bus address. With paging
// off the address passes through with the translation-disabled tag bit.
// The page index is the 4 bits above the 12 bit page offset.
func (sr *Sregs) ImmuTranslate(addr uint16) uint32 {
	if (sr.jtr & JtrInstPg) == 0 {
		return immuDisabledMask | uint32(addr)
	}
	offset := uint32(addr) & 0x0fff
	page := uint32(sr.immu[(addr>>12)&(mmuSize-1)])
	return (page << 12) | offset
}

// Translate a data word address to a bus address. The page index is
// the 4 bits above the 11 bit page offset.
func (sr *Sregs) DmmuTranslate(addr uint16) uint32 {
	if (sr.priv & PrivDatPg) == 0 {
		return dmmuDisabledMask | uint32(addr)
	}
	offset := uint32(addr) & 0x07ff
	page := uint32(sr.dmmu[(addr>>11)&(mmuSize-1)])
	return (page << 11) | offset
}

// OR an interrupt code into the pending word. The word stays set until
// the handler clears it through IC_INT_RESET.
func (sr *Sregs) AddInterrupt(mask uint16) {
	sr.irqFlags |= mask
}

// Pending returns the current interrupt word.
func (sr *Sregs) Pending() uint16 {
	return sr.irqFlags
}

// Dispatch a pending interrupt if any is raised and interrupts are
// enabled: the PC is saved for return, interrupts are masked and
// execution diverts to vector 0. Reports whether an entry happened.
func (sr *Sregs) Interrupt(cpu CPUState) bool {
	if sr.irqFlags == 0 || (sr.priv&PrivIrq) == 0 {
		return false
	}
	sr.irqPC = cpu.PC()
	cpu.SetPC(0)
	sr.priv &^= PrivIrq
	return true
}

// Interrupt return: re-enable interrupts and hand back the saved PC.
// The caller loads it into the program counter.
func (sr *Sregs) Irt() uint16 {
	sr.priv |= PrivIrq
	return sr.irqPC
}
