// This file is part of swervemu.
//
// swervemu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// swervemu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with swervemu.  If not, see <https://www.gnu.org/licenses/>.

// Package monitor is an interactive memory monitor. It presents a
// small command language for inspecting and altering simulated memory
// from a terminal. Alterations use the poke primitives, the same path
// a debugger would use, so the write journal is left untouched.
package monitor

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hexadrune/swervemu/curated"
	"github.com/hexadrune/swervemu/memory"
)

const helpText = `r <addr> [b|h|w|d]          read value at address
w <addr> <value> [b|h|w|d]  poke value at address
b <addr> <count>            dump a block of memory
s <name>                    look up a symbol by name
f <addr>                    find the function covering an address
l                           list all symbols
h                           this help
q                           quit
addresses and values are hexadecimal. an address may also be a symbol name`

// Monitor is the interactive memory monitor. Use NewMonitor() to
// prepare a new instance.
type Monitor struct {
	mem  *memory.Memory
	term terminal
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(mem *memory.Memory) (*Monitor, error) {
	mon := &Monitor{mem: mem}
	if err := mon.term.initialise(os.Stdin, os.Stdout); err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}
	return mon, nil
}

// Run the monitor loop until the quit command or end of input.
func (mon *Monitor) Run() error {
	if err := mon.term.cbreakMode(); err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	defer mon.term.cleanUp()

	for {
		line, err := mon.term.readLine("> ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return curated.Errorf("monitor: %v", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "q":
			return nil
		case "h":
			mon.term.print("%s\n", helpText)
		case "r":
			mon.read(fields[1:])
		case "w":
			mon.write(fields[1:])
		case "b":
			mon.block(fields[1:])
		case "s":
			mon.symbol(fields[1:])
		case "f":
			mon.function(fields[1:])
		case "l":
			mon.mem.Symbols.Write(mon.term.output)
		default:
			mon.term.print("unknown command: %s (h for help)\n", fields[0])
		}
	}
}

// parseAddr converts an argument to an address. A token that does not
// parse as a number is tried as a symbol name.
func (mon *Monitor) parseAddr(s string) (uint64, bool) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err == nil {
		return addr, true
	}
	if sym, ok := mon.mem.Symbols.Find(s); ok {
		return sym.Addr, true
	}
	mon.term.print("bad address: %s\n", s)
	return 0, false
}

// accessSize converts an optional size suffix argument. Word is the
// default.
func (mon *Monitor) accessSize(fields []string, ix int) (uint64, bool) {
	if len(fields) <= ix {
		return 4, true
	}
	switch strings.ToLower(fields[ix]) {
	case "b":
		return 1, true
	case "h":
		return 2, true
	case "w":
		return 4, true
	case "d":
		return 8, true
	}
	mon.term.print("bad access size: %s (expecting b, h, w or d)\n", fields[ix])
	return 0, false
}

// peek assembles a little-endian value of the given size with no
// attribute checks.
func (mon *Monitor) peek(addr uint64, size uint64) (uint64, bool) {
	var v uint64
	for i := uint64(0); i < size; i++ {
		b, ok := mon.mem.ReadByteRaw(addr + i)
		if !ok {
			return 0, false
		}
		v |= uint64(b) << (i * 8)
	}
	return v, true
}

func (mon *Monitor) read(fields []string) {
	if len(fields) < 1 {
		mon.term.print("usage: r <addr> [b|h|w|d]\n")
		return
	}
	addr, ok := mon.parseAddr(fields[0])
	if !ok {
		return
	}
	size, ok := mon.accessSize(fields, 1)
	if !ok {
		return
	}
	v, ok := mon.peek(addr, size)
	if !ok {
		mon.term.print("address out of bounds: %#x\n", addr)
		return
	}
	mon.term.print("%#x: %#0*x\n", addr, int(size*2), v)
}

func (mon *Monitor) write(fields []string) {
	if len(fields) < 2 {
		mon.term.print("usage: w <addr> <value> [b|h|w|d]\n")
		return
	}
	addr, ok := mon.parseAddr(fields[0])
	if !ok {
		return
	}
	value, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 64)
	if err != nil {
		mon.term.print("bad value: %s\n", fields[1])
		return
	}
	size, ok := mon.accessSize(fields, 2)
	if !ok {
		return
	}

	switch size {
	case 1:
		ok = mon.mem.PokeByte(addr, uint8(value))
	case 2:
		ok = mon.mem.PokeHalfWord(addr, uint16(value))
	case 4:
		ok = mon.mem.PokeWord(addr, uint32(value))
	case 8:
		ok = mon.mem.PokeDoubleWord(addr, value)
	}
	if !ok {
		mon.term.print("poke failed at %#x\n", addr)
	}
}

func (mon *Monitor) block(fields []string) {
	if len(fields) < 2 {
		mon.term.print("usage: b <addr> <count>\n")
		return
	}
	addr, ok := mon.parseAddr(fields[0])
	if !ok {
		return
	}
	count, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 64)
	if err != nil {
		mon.term.print("bad count: %s\n", fields[1])
		return
	}

	for row := uint64(0); row < count; row += 16 {
		mon.term.print("%08x ", addr+row)

		s := strings.Builder{}
		for i := uint64(0); i < 16 && row+i < count; i++ {
			b, ok := mon.mem.ReadByteRaw(addr + row + i)
			if !ok {
				break
			}
			mon.term.print(" %02x", b)
			if b >= 32 && b < 127 {
				s.WriteByte(b)
			} else {
				s.WriteByte('.')
			}
		}

		mon.term.print("  %s\n", s.String())
	}
}

func (mon *Monitor) symbol(fields []string) {
	if len(fields) < 1 {
		mon.term.print("usage: s <name>\n")
		return
	}
	sym, ok := mon.mem.Symbols.Find(fields[0])
	if !ok {
		mon.term.print("no symbol: %s\n", fields[0])
		return
	}
	mon.term.print("%s: addr %#x size %#x\n", fields[0], sym.Addr, sym.Size)
}

func (mon *Monitor) function(fields []string) {
	if len(fields) < 1 {
		mon.term.print("usage: f <addr>\n")
		return
	}
	addr, ok := mon.parseAddr(fields[0])
	if !ok {
		return
	}
	name, sym, ok := mon.mem.Symbols.FindFunction(addr)
	if !ok {
		mon.term.print("no function covers %#x\n", addr)
		return
	}
	mon.term.print("%s: addr %#x size %#x\n", name, sym.Addr, sym.Size)
}
