package memory

/*
 * ppcpu - RAM and ROM tests.
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

import "testing"

func TestRAMByteSelect(t *testing.T) {
	ram := NewRAM(16)
	ram.Write(2, 0b11, 0x1234)

	// sel 00 leaves the word alone.
	ram.Write(2, 0b00, 0xffff)
	if got := ram.Read(2, 0b11); got != 0x1234 {
		t.Errorf("sel 00 changed memory got: %04x expected: 1234", got)
	}

	// Low byte replaced, high byte untouched. The payload travels
	// right justified and extra high bits must not leak through.
	ram.Write(2, 0b01, 0xffab)
	if got := ram.Read(2, 0b11); got != 0x12ab {
		t.Errorf("low byte write not correct got: %04x expected: 12ab", got)
	}

	// High byte replaced, low byte untouched.
	ram.Write(2, 0b10, 0x00cd)
	if got := ram.Read(2, 0b11); got != 0xcdab {
		t.Errorf("high byte write not correct got: %04x expected: cdab", got)
	}

	ram.Write(2, 0b11, 0x5678)
	if got := ram.Read(2, 0b11); got != 0x5678 {
		t.Errorf("word write not correct got: %04x expected: 5678", got)
	}
}

func TestRAMBadSelect(t *testing.T) {
	ram := NewRAM(16)
	defer func() {
		if recover() == nil {
			t.Error("select outside two bits should be fatal")
		}
	}()
	ram.Write(0, 0b100, 0)
}

// Image bytes pair up little endian into words.
func TestLoadAt(t *testing.T) {
	ram := NewRAM(16)
	ram.LoadAt(4, []byte{0x34, 0x12, 0x78, 0x56})
	if got := ram.Read(4, 0b11); got != 0x1234 {
		t.Errorf("LoadAt word 0 not correct got: %04x expected: 1234", got)
	}
	if got := ram.Read(5, 0b11); got != 0x5678 {
		t.Errorf("LoadAt word 1 not correct got: %04x expected: 5678", got)
	}
}

// An odd length image writes only the low byte of the last word.
func TestLoadAtOddTail(t *testing.T) {
	ram := NewRAM(16)
	ram.Write(3, 0b11, 0xeeee)
	ram.LoadAt(2, []byte{0x11, 0x22, 0x33})
	if got := ram.Read(2, 0b11); got != 0x2211 {
		t.Errorf("LoadAt word 0 not correct got: %04x expected: 2211", got)
	}
	if got := ram.Read(3, 0b11); got != 0xee33 {
		t.Errorf("LoadAt odd tail not correct got: %04x expected: ee33", got)
	}
}

func TestROM(t *testing.T) {
	rom := NewROM([]uint16{0xdead, 0xbeef})
	if got := rom.Read(0, 0b11); got != 0xdead {
		t.Errorf("ROM read not correct got: %04x expected: dead", got)
	}
	if got := rom.Read(1, 0b11); got != 0xbeef {
		t.Errorf("ROM read not correct got: %04x expected: beef", got)
	}

	// Writes fall on the floor.
	rom.Write(0, 0b11, 0x1234)
	if got := rom.Read(0, 0b11); got != 0xdead {
		t.Errorf("ROM write should be ignored got: %04x expected: dead", got)
	}
}
