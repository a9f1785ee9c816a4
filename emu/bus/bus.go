/*
   ppcpu - Wishbone style bus fabric.

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

package bus

import "fmt"

// Device is anything that can sit on the bus. Addresses handed to a
// device are offsets from the start of its assigned range. sel is a
// two bit byte select mask, bit 0 for the low byte, bit 1 for the high.
type Device interface {
	Read(addr uint32, sel uint8) uint16
	Write(addr uint32, sel uint8, data uint16)
}

type busEntry struct {
	begin  uint32
	end    uint32
	device Device
}

// Bus routes byte selected reads and writes to registered devices by
// address range. Ranges are inclusive on both ends and scanned in
// registration order.
type Bus struct {
	devices []busEntry
}

// Create an empty bus.
func New() *Bus {
	return &Bus{}
}

// Register a device over [begin, end]. Ranges on one bus must not
// overlap.
func (bus *Bus) AddDevice(begin uint32, end uint32, dev Device) error {
	if end < begin {
		return fmt.Errorf("bus: range end %06x before begin %06x", end, begin)
	}
	for _, entry := range bus.devices {
		if begin <= entry.end && end >= entry.begin {
			return fmt.Errorf("bus: range %06x-%06x overlaps %06x-%06x",
				begin, end, entry.begin, entry.end)
		}
	}
	bus.devices = append(bus.devices, busEntry{begin: begin, end: end, device: dev})
	return nil
}

func (bus *Bus) findDevice(addr uint32) *busEntry {
	for i := range bus.devices {
		entry := &bus.devices[i]
		if addr >= entry.begin && addr <= entry.end {
			return entry
		}
	}
	return nil
}

// Read one word from the device mapped at addr. Access to an unmapped
// address is fatal to the emulation.
func (bus *Bus) Read(addr uint32, sel uint8) uint16 {
	entry := bus.findDevice(addr)
	if entry == nil {
		panic(fmt.Sprintf("bus: read of unmapped address %06x", addr))
	}
	return entry.device.Read(addr-entry.begin, sel)
}

// Write one word to the device mapped at addr.
func (bus *Bus) Write(addr uint32, sel uint8, data uint16) {
	entry := bus.findDevice(addr)
	if entry == nil {
		panic(fmt.Sprintf("bus: write of unmapped address %06x", addr))
	}
	entry.device.Write(addr-entry.begin, sel, data)
}
