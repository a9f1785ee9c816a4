/*
   ppcpu external interrupt controller.

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

package irqc

// Interrupt lines devices can raise.
const (
	LineTimer uint16 = 0x0001
	LineUART  uint16 = 0x0002
)

// Irqc collects device interrupt lines behind a software controlled
// mask. It sits on the bus so the handler can inspect and clear lines,
// and is polled by the run loop to feed the CPU's external interrupt.
type Irqc struct {
	mask   uint16
	active uint16
}

func New() *Irqc {
	return &Irqc{}
}

// Offset 2 reads back the mask; any other offset reads the masked
// active lines.
func (ic *Irqc) Read(addr uint32, _ uint8) uint16 {
	if addr == 0b10 {
		return ic.mask
	}
	return ic.mask & ic.active
}

// Offset 1 clears active lines by mask, offset 2 sets the enable mask.
func (ic *Irqc) Write(addr uint32, _ uint8, data uint16) {
	switch addr {
	case 0b01:
		ic.active &^= data
	case 0b10:
		ic.mask = data
	}
}

// Raise an interrupt line. It stays active until the handler clears it.
func (ic *Irqc) Trigger(code uint16) {
	ic.active |= code
}

// Active reports whether any enabled line is raised.
func (ic *Irqc) Active() bool {
	return (ic.active & ic.mask) != 0
}
