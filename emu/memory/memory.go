package memory

/*
 * ppcpu - RAM and ROM word stores.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import "fmt"

// RAM is a word addressed store with byte selectable writes. Reads
// always return the full word; byte extraction is the CPU's job.
type RAM struct {
	mem []uint16
}

// Create RAM holding size words.
func NewRAM(size uint32) *RAM {
	return &RAM{mem: make([]uint16, size)}
}

func (ram *RAM) Read(addr uint32, _ uint8) uint16 {
	return ram.mem[addr]
}

func (ram *RAM) Write(addr uint32, sel uint8, data uint16) {
	switch sel {
	case 0b00:
	case 0b01:
		ram.mem[addr] = (ram.mem[addr] & 0xff00) | (data & 0x00ff)
	case 0b10:
		ram.mem[addr] = (ram.mem[addr] & 0x00ff) | (data << 8)
	case 0b11:
		ram.mem[addr] = data
	default:
		panic(fmt.Sprintf("memory: unsupported select bits %02b", sel))
	}
}

// Bulk load a byte image starting at the given word offset. Bytes pair
// up little endian into words; an odd tail writes only the low byte of
// the last word.
func (ram *RAM) LoadAt(offset uint32, image []byte) {
	for i := 0; i < len(image); i += 2 {
		addr := offset + uint32(i/2)
		if i+1 < len(image) {
			ram.mem[addr] = uint16(image[i]) | uint16(image[i+1])<<8
		} else {
			ram.mem[addr] = (ram.mem[addr] & 0xff00) | uint16(image[i])
		}
	}
}

// ROM is a word addressed read only store. Writes are silently
// discarded, matching the hardware bus behavior.
type ROM struct {
	mem []uint16
}

func NewROM(content []uint16) *ROM {
	return &ROM{mem: content}
}

func (rom *ROM) Read(addr uint32, _ uint8) uint16 {
	return rom.mem[addr]
}

func (rom *ROM) Write(_ uint32, _ uint8, _ uint16) {
}
