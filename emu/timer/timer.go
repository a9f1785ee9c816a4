/*
   ppcpu interval timer.

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

package timer

import "github.com/rcornwell/ppcpu/emu/irqc"

// Register offsets on the bus.
const (
	regCount   uint32 = 0 // Current count
	regCompare uint32 = 1 // Compare value
	regControl uint32 = 2 // Bit 0 run, bit 1 interrupt enable
)

const (
	ctlRun    uint16 = 0b01
	ctlIrqEnb uint16 = 0b10
)

// Timer counts machine ticks while running. When the count reaches the
// compare value it wraps to zero and, if enabled, raises its line on
// the interrupt controller.
type Timer struct {
	count   uint16
	compare uint16
	control uint16

	irq *irqc.Irqc
}

func New(irq *irqc.Irqc) *Timer {
	return &Timer{irq: irq}
}

func (timer *Timer) Read(addr uint32, _ uint8) uint16 {
	switch addr {
	case regCount:
		return timer.count
	case regCompare:
		return timer.compare
	case regControl:
		return timer.control
	}
	return 0
}

func (timer *Timer) Write(addr uint32, _ uint8, data uint16) {
	switch addr {
	case regCount:
		timer.count = data
	case regCompare:
		timer.compare = data
	case regControl:
		timer.control = data
	}
}

// Advance the timer by one machine tick.
func (timer *Timer) Tick() {
	if (timer.control & ctlRun) == 0 {
		return
	}
	timer.count++
	if timer.count == timer.compare {
		timer.count = 0
		if (timer.control & ctlIrqEnb) != 0 {
			timer.irq.Trigger(irqc.LineTimer)
		}
	}
}
