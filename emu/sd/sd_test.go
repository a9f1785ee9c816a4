/*
   ppcpu SD card mock tests.

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

package sd

import (
	"bytes"
	"testing"
)

// Clock a 6 byte command out and collect n response bytes. Each MOSI
// write shifts one MISO byte; idle bytes keep the clock running.
func sendCmd(card *SD, cmd byte, arg uint32, crc byte) {
	card.Write(0, 0b11, uint16(cmd))
	card.Write(0, 0b11, uint16(arg>>24))
	card.Write(0, 0b11, uint16(arg>>16)&0xff)
	card.Write(0, 0b11, uint16(arg>>8)&0xff)
	card.Write(0, 0b11, uint16(arg)&0xff)
	card.Write(0, 0b11, uint16(crc))
}

func clockResponse(card *SD, n int) []byte {
	resp := make([]byte, n)
	for i := range resp {
		card.Write(0, 0b11, 0xff)
		resp[i] = byte(card.Read(1, 0b11))
	}
	return resp
}

func TestIdleBeforeCommand(t *testing.T) {
	card := New(nil)
	if got := card.Read(1, 0b11); got != 0xff {
		t.Errorf("idle response not correct got: %02x expected: ff", got)
	}
}

func TestResetSequence(t *testing.T) {
	card := New(nil)

	sendCmd(card, cmd0, 0, 0x95)
	if got := clockResponse(card, 1); got[0] != 0x01 {
		t.Errorf("CMD0 response not correct got: %02x expected: 01", got[0])
	}

	sendCmd(card, cmd8, 0x1aa, 0x87)
	resp := clockResponse(card, 5)
	if resp[0] != 0x01 || resp[3] != 0x01 {
		t.Errorf("CMD8 response not correct got: %v", resp)
	}
	if resp[4] != 0xaa {
		t.Errorf("CMD8 should echo the check pattern got: %02x expected: aa", resp[4])
	}

	sendCmd(card, cmd55, 0, 0xff)
	if got := clockResponse(card, 1); got[0] != 0x01 {
		t.Errorf("CMD55 response not correct got: %02x expected: 01", got[0])
	}
	sendCmd(card, acmd41, 0x40000000, 0xff)
	if got := clockResponse(card, 1); got[0] != 0x00 {
		t.Errorf("ACMD41 response not correct got: %02x expected: 00", got[0])
	}

	sendCmd(card, cmd58, 0, 0xff)
	resp = clockResponse(card, 5)
	if resp[0] != 0x00 || resp[1] != 0x80 || resp[2] != 0x10 {
		t.Errorf("CMD58 OCR not correct got: %v", resp)
	}

	sendCmd(card, cmd16, 512, 0xff)
	if got := clockResponse(card, 1); got[0] != 0x00 {
		t.Errorf("CMD16 response not correct got: %02x expected: 00", got[0])
	}
}

func TestReadBlock(t *testing.T) {
	image := make([]byte, 3*blockSize)
	for i := range image {
		image[i] = byte(i)
	}
	card := New(bytes.NewReader(image))

	sendCmd(card, cmd17, 1, 0xff)
	resp := clockResponse(card, 3+blockSize+2)
	if resp[0] != 0x00 || resp[1] != 0xff || resp[2] != 0xfe {
		t.Errorf("CMD17 header not correct got: %v", resp[:3])
	}
	data := resp[3 : 3+blockSize]
	for i := range data {
		if data[i] != byte(blockSize+i) {
			t.Errorf("block byte %d not correct got: %02x expected: %02x",
				i, data[i], byte(blockSize+i))
			break
		}
	}
}

// A card with no backing image answers block reads with zeros.
func TestReadBlockNoImage(t *testing.T) {
	card := New(nil)
	sendCmd(card, cmd17, 0, 0xff)
	resp := clockResponse(card, 3+blockSize+2)
	for i, b := range resp[3 : 3+blockSize] {
		if b != 0 {
			t.Errorf("empty card byte %d not correct got: %02x expected: 00", i, b)
			break
		}
	}
}
