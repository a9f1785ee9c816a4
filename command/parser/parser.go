/*
   ppcpu debugger command parser.

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

package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcornwell/ppcpu/emu/core"
	"github.com/rcornwell/ppcpu/emu/cpu"
)

// Parser holds debugger session state: the machine under control and
// the PC breakpoints.
type Parser struct {
	machine     *core.Machine
	breakpoints map[uint16]bool
}

func New(machine *core.Machine) *Parser {
	return &Parser{
		machine:     machine,
		breakpoints: make(map[uint16]bool),
	}
}

var commands = []string{
	"step", "run", "break", "delete", "clear", "list",
	"regs", "sreg", "mem", "dis", "help", "quit",
}

// CompleteCmd returns candidate completions for the current line.
func (parser *Parser) CompleteCmd(line string) []string {
	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, strings.ToLower(line)) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// ProcessCommand runs one debugger command. Returns true when the
// session should end.
func (parser *Parser) ProcessCommand(line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	cmd := fields[0]
	args := fields[1:]

	switch {
	case strings.HasPrefix("step", cmd):
		return false, parser.step(args)
	case strings.HasPrefix("run", cmd) || cmd == "cont":
		return false, parser.run()
	case strings.HasPrefix("break", cmd):
		return false, parser.addBreak(args)
	case strings.HasPrefix("delete", cmd):
		return false, parser.deleteBreak(args)
	case cmd == "clear":
		parser.breakpoints = make(map[uint16]bool)
		return false, nil
	case strings.HasPrefix("list", cmd):
		parser.listBreaks()
		return false, nil
	case strings.HasPrefix("regs", cmd):
		parser.showRegs()
		return false, nil
	case cmd == "sreg":
		return false, parser.showSreg(args)
	case strings.HasPrefix("mem", cmd):
		return false, parser.showMem(args)
	case strings.HasPrefix("dis", cmd):
		return false, parser.disassemble(args)
	case strings.HasPrefix("help", cmd) || cmd == "?":
		parser.help()
		return false, nil
	case strings.HasPrefix("quit", cmd):
		return true, nil
	}
	return false, fmt.Errorf("unknown command: %s", cmd)
}

func parseNum(arg string) (uint32, error) {
	value, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", arg)
	}
	return uint32(value), nil
}

// Execute one or more single steps, showing the instruction about to
// run before each.
func (parser *Parser) step(args []string) error {
	count := uint32(1)
	if len(args) > 0 {
		var err error
		if count, err = parseNum(args[0]); err != nil {
			return err
		}
	}
	for i := uint32(0); i < count; i++ {
		pc := parser.machine.CPU().PC()
		fmt.Printf("%04x: %s\n", pc, cpu.Disassemble(parser.machine.FetchAt(pc)))
		parser.machine.Step()
	}
	parser.showRegs()
	return nil
}

// Free run until a breakpoint is hit.
func (parser *Parser) run() error {
	if len(parser.breakpoints) == 0 {
		fmt.Println("running with no breakpoints; the machine will not stop")
	}
	for {
		parser.machine.Step()
		if parser.breakpoints[parser.machine.CPU().PC()] {
			fmt.Printf("breakpoint at %04x\n", parser.machine.CPU().PC())
			parser.showRegs()
			return nil
		}
	}
}

func (parser *Parser) addBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("break needs a PC value")
	}
	pc, err := parseNum(args[0])
	if err != nil {
		return err
	}
	parser.breakpoints[uint16(pc)] = true
	return nil
}

func (parser *Parser) deleteBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete needs a PC value")
	}
	pc, err := parseNum(args[0])
	if err != nil {
		return err
	}
	delete(parser.breakpoints, uint16(pc))
	return nil
}

func (parser *Parser) listBreaks() {
	pcs := make([]int, 0, len(parser.breakpoints))
	for pc := range parser.breakpoints {
		pcs = append(pcs, int(pc))
	}
	sort.Ints(pcs)
	for _, pc := range pcs {
		fmt.Printf("  break %04x\n", pc)
	}
}

func (parser *Parser) showRegs() {
	machine := parser.machine
	for i := uint8(0); i < 8; i++ {
		fmt.Printf("r%d=%04x ", i, machine.CPU().Reg(i))
	}
	fmt.Printf("\npc=%04x flags=%02x\n", machine.CPU().PC(), machine.CPU().Flags())
}

func (parser *Parser) showSreg(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sreg needs an index")
	}
	idx, err := parseNum(args[0])
	if err != nil {
		return err
	}
	value := parser.machine.Sregs().Read(uint16(idx), parser.machine.CPU())
	fmt.Printf("sreg %#x = %04x\n", idx, value)
	return nil
}

func (parser *Parser) showMem(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("mem needs a bus address")
	}
	addr, err := parseNum(args[0])
	if err != nil {
		return err
	}
	count := uint32(8)
	if len(args) > 1 {
		if count, err = parseNum(args[1]); err != nil {
			return err
		}
	}
	for i := uint32(0); i < count; i++ {
		if i%8 == 0 {
			if i != 0 {
				fmt.Println()
			}
			fmt.Printf("%06x:", addr+i)
		}
		fmt.Printf(" %04x", parser.machine.ReadWord(addr+i))
	}
	fmt.Println()
	return nil
}

func (parser *Parser) disassemble(args []string) error {
	pc := parser.machine.CPU().PC()
	if len(args) > 0 {
		value, err := parseNum(args[0])
		if err != nil {
			return err
		}
		pc = uint16(value)
	}
	count := uint32(4)
	if len(args) > 1 {
		var err error
		if count, err = parseNum(args[1]); err != nil {
			return err
		}
	}
	for i := uint32(0); i < count; i++ {
		fmt.Printf("%04x: %s\n", pc, cpu.Disassemble(parser.machine.FetchAt(pc)))
		pc++
	}
	return nil
}

func (parser *Parser) help() {
	fmt.Println(`commands:
  step [n]        execute n instructions (default 1)
  run             run until a breakpoint
  break <pc>      set a PC breakpoint
  delete <pc>     remove a PC breakpoint
  clear           remove all breakpoints
  list            list breakpoints
  regs            show registers
  sreg <idx>      read a supervisor register
  mem <addr> [n]  dump bus words
  dis [pc] [n]    disassemble
  quit            leave the emulator`)
}
