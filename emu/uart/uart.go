/*
   ppcpu UART over a host pseudo terminal.

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

package uart

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Register offsets on the bus.
const (
	statusAddr uint32 = 0 // Bit 0 RX ready, bit 1 TX ready
	rxAddr     uint32 = 1 // Read consumes one byte
	txAddr     uint32 = 2 // Write emits one byte
)

// UART bridges the guest serial port to a host pseudo terminal. A
// reader goroutine turns blocking master reads into a channel so the
// device register reads never stall the CPU; the core only ever sees
// synchronous bus access.
type UART struct {
	master    *os.File
	slaveName string

	rx chan byte

	lastRead    byte
	readPending bool
}

// Open a pseudo terminal pair and start the reader. The slave side
// name is logged so a host terminal can attach to it.
func New() (*UART, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("uart: open pty master: %w", err)
	}

	// Unlock the slave side and find its name.
	if err = unix.IoctlSetPointerInt(int(master.Fd()), unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, fmt.Errorf("uart: unlock pty: %w", err)
	}
	ptyNum, err := unix.IoctlGetInt(int(master.Fd()), unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("uart: pty number: %w", err)
	}

	uart := &UART{
		master:    master,
		slaveName: fmt.Sprintf("/dev/pts/%d", ptyNum),
		rx:        make(chan byte, 8),
	}

	go uart.reader()

	slog.Info("uart: serial console on " + uart.slaveName)
	return uart, nil
}

// SlaveName returns the host path of the guest's serial console.
func (uart *UART) SlaveName() string {
	return uart.slaveName
}

func (uart *UART) reader() {
	buf := make([]byte, 1)
	for {
		n, err := uart.master.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			uart.rx <- buf[0]
		}
	}
}

// Pull one byte from the reader channel if one is waiting. Peeking is
// not possible between register reads, so the byte parks in lastRead
// until the RX register consumes it.
func (uart *UART) poll() {
	if uart.readPending {
		return
	}
	select {
	case b := <-uart.rx:
		uart.lastRead = b
		uart.readPending = true
	default:
	}
}

func (uart *UART) Read(addr uint32, _ uint8) uint16 {
	switch addr {
	case statusAddr:
		uart.poll()
		status := uint16(0b10) // TX always ready
		if uart.readPending {
			status |= 0b01
		}
		return status
	case rxAddr:
		uart.poll()
		uart.readPending = false
		return uint16(uart.lastRead)
	}
	return 0
}

func (uart *UART) Write(addr uint32, _ uint8, data uint16) {
	if addr == txAddr {
		if _, err := uart.master.Write([]byte{byte(data)}); err != nil {
			slog.Warn("uart: tx write failed: " + err.Error())
		}
	}
}

// Close the host side of the terminal.
func (uart *UART) Close() {
	uart.master.Close()
}
