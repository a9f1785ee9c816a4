/*
   Core ppcpu machine assembly and run loop.

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

package core

import (
	"io"

	"github.com/rcornwell/ppcpu/emu/bus"
	"github.com/rcornwell/ppcpu/emu/cpu"
	"github.com/rcornwell/ppcpu/emu/irqc"
	"github.com/rcornwell/ppcpu/emu/memory"
	"github.com/rcornwell/ppcpu/emu/sd"
	"github.com/rcornwell/ppcpu/emu/sreg"
	"github.com/rcornwell/ppcpu/emu/timer"
	"github.com/rcornwell/ppcpu/emu/uart"
)

// Bus memory map.
const (
	uartStart  uint32 = 0x002000
	uartEnd    uint32 = 0x002002
	timerStart uint32 = 0x002008
	timerEnd   uint32 = 0x00200a
	irqcStart  uint32 = 0x00200c
	irqcEnd    uint32 = 0x00200e
	sdStart    uint32 = 0x002010
	sdEnd      uint32 = 0x002014
	ramStart   uint32 = 0x100000
	ramEnd     uint32 = 0xffdfff
	romStart   uint32 = 0xffe000

	// Load addresses of the two RAM images.
	progLoadAddr uint32 = 0x800000
	dataLoadAddr uint32 = 0x100800
)

// The boot ROM clears the jump trap register and jumps to 0; with
// instruction paging switched off by the jump, PC 0 then fetches from
// the identity mapped program image in RAM.
var bootROM = []uint16{
	0x0004, 0x0000, // ldi r0, 0
	0x0011, 0x0002, // srs r0, JTR
	0x000e, 0x0000, // jmp 0
}

// Configuration for one machine.
type Config struct {
	Prog    []byte        // Program image, loaded at 0x800000
	Data    []byte        // Data image, loaded at 0x100800
	SDImage io.ReadSeeker // SD card backing image, may be nil
	Console *uart.UART    // Serial console, may be nil
}

// Machine is one assembled system: CPU, supervisor state and every
// device hanging off the bus. The interrupt controller is reachable
// both through the bus and directly, so the run loop can poll it.
type Machine struct {
	cpu   *cpu.CPU
	sregs *sreg.Sregs
	wb    *bus.Bus
	ram   *memory.RAM
	irq   *irqc.Irqc
	timer *timer.Timer
}

// Build a machine and load the images. Devices are registered before
// the first tick and never removed.
func New(config Config) (*Machine, error) {
	machine := &Machine{wb: bus.New()}

	machine.ram = memory.NewRAM(ramEnd - ramStart + 1)
	machine.ram.LoadAt(progLoadAddr-ramStart, config.Prog)
	machine.ram.LoadAt(dataLoadAddr-ramStart, config.Data)
	if err := machine.wb.AddDevice(ramStart, ramEnd, machine.ram); err != nil {
		return nil, err
	}

	rom := memory.NewROM(bootROM)
	if err := machine.wb.AddDevice(romStart, romStart+uint32(len(bootROM))-1, rom); err != nil {
		return nil, err
	}

	machine.irq = irqc.New()
	if err := machine.wb.AddDevice(irqcStart, irqcEnd, machine.irq); err != nil {
		return nil, err
	}

	machine.timer = timer.New(machine.irq)
	if err := machine.wb.AddDevice(timerStart, timerEnd, machine.timer); err != nil {
		return nil, err
	}

	if config.Console != nil {
		if err := machine.wb.AddDevice(uartStart, uartEnd, config.Console); err != nil {
			return nil, err
		}
	}

	card := sd.New(config.SDImage)
	if err := machine.wb.AddDevice(sdStart, sdEnd, card); err != nil {
		return nil, err
	}

	machine.sregs = sreg.New(0)
	machine.cpu = cpu.New(machine.wb, machine.sregs)
	return machine, nil
}

// One machine step: advance the timer, feed any raised interrupt
// controller line to the CPU's external interrupt, then run one
// instruction.
func (machine *Machine) Step() {
	machine.timer.Tick()
	if machine.irq.Active() {
		machine.sregs.AddInterrupt(sreg.IrqExt)
	}
	machine.cpu.Tick()
}

// CPU gives the debugger access to the core.
func (machine *Machine) CPU() *cpu.CPU {
	return machine.cpu
}

// Sregs gives the debugger access to supervisor state.
func (machine *Machine) Sregs() *sreg.Sregs {
	return machine.sregs
}

// ReadWord reads one word from the bus for inspection.
func (machine *Machine) ReadWord(addr uint32) uint16 {
	return machine.wb.Read(addr, 0b11)
}

// FetchAt reads the 32 bit instruction at a PC value through the
// instruction MMU, for disassembly without executing.
func (machine *Machine) FetchAt(pc uint16) uint32 {
	base := machine.sregs.ImmuTranslate(pc << 1)
	low := uint32(machine.wb.Read(base, 0b11))
	high := uint32(machine.wb.Read(base+1, 0b11))
	return (high << 16) | low
}
