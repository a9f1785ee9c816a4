/*
   ppcpu SD card mock, SPI mode.

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
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
)

// SPI command bytes the firmware boot path issues.
const (
	cmd0   uint8 = 0x40      // GO_IDLE_STATE
	cmd8   uint8 = 0x40 | 8  // SEND_IF_COND
	cmd16  uint8 = 0x40 | 16 // SET_BLOCKLEN
	cmd17  uint8 = 0x40 | 17 // READ_SINGLE_BLOCK
	cmd55  uint8 = 0x40 | 55 // APP_CMD prefix
	acmd41 uint8 = 0x40 | 41 // SD_SEND_OP_COND
	cmd58  uint8 = 0x40 | 58 // READ_OCR

	blockSize = 512
)

// SD is a minimal SPI mode SD card: just enough command decode to
// carry a firmware through reset, init and single block reads from the
// backing image. Offset 0 takes MOSI bytes, offset 1 hands out MISO.
type SD struct {
	image io.ReadSeeker

	commandBuf [6]byte
	response   []byte
	currResp   byte
}

// Create a card backed by the given image. A nil image behaves like an
// empty card; block reads return zeros.
func New(image io.ReadSeeker) *SD {
	card := &SD{image: image, currResp: 0xff}
	for i := range card.commandBuf {
		card.commandBuf[i] = 0xff
	}
	return card
}

func (card *SD) Read(addr uint32, _ uint8) uint16 {
	if addr != 1 {
		return 0
	}
	return uint16(card.currResp)
}

func (card *SD) Write(addr uint32, _ uint8, data uint16) {
	if addr != 0 {
		return
	}

	// Shift the byte into the command window and clock one response
	// byte out of the FIFO.
	copy(card.commandBuf[:], card.commandBuf[1:])
	card.commandBuf[len(card.commandBuf)-1] = byte(data)

	if len(card.response) > 0 {
		card.currResp = card.response[0]
		card.response = card.response[1:]
	} else {
		card.currResp = 0xff
	}

	if card.commandBuf[0] != 0xff {
		card.processCmd()
		for i := range card.commandBuf {
			card.commandBuf[i] = 0xff
		}
	}
}

func (card *SD) push(bytes ...byte) {
	card.response = append(card.response, bytes...)
}

func (card *SD) processCmd() {
	switch card.commandBuf[0] {
	case cmd0:
		card.push(0x01) // Idle state
	case cmd8:
		// Voltage accepted plus the echoed check pattern.
		card.push(0x01, 0x00, 0x00, 0x01, card.commandBuf[4])
	case cmd55:
		card.push(0x01)
	case acmd41:
		if card.commandBuf[1] == 0x40 { // HC argument
			card.push(0x00) // Out of idle
		}
	case cmd58:
		card.push(0x00, 0x80, 0x10, 0x00, 0x00) // OCR: HC, 3.3V
	case cmd16:
		if card.commandBuf[3] != 0x02 || card.commandBuf[4] != 0x00 {
			panic(fmt.Sprintf("sd: unsupported block size %02x%02x",
				card.commandBuf[3], card.commandBuf[4]))
		}
		card.push(0x00)
	case cmd17:
		card.readBlock()
	default:
		panic(fmt.Sprintf("sd: unsupported command %02x", card.commandBuf[0]))
	}
}

// Answer READ_SINGLE_BLOCK: status, wait, start token, 512 data bytes
// and a dummy CRC.
func (card *SD) readBlock() {
	card.push(0x00, 0xff, 0xfe)

	block := binary.BigEndian.Uint32(card.commandBuf[1:5])
	buf := make([]byte, blockSize)
	if card.image != nil {
		if _, err := card.image.Seek(int64(block)*blockSize, io.SeekStart); err == nil {
			if _, err := io.ReadFull(card.image, buf); err != nil {
				slog.Warn(fmt.Sprintf("sd: short read of block %d: %v", block, err))
			}
		}
	}
	card.push(buf...)
	card.push(0x00, 0x00) // CRC not implemented
}
