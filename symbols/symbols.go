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

// Package symbols keeps the symbol table extracted from a loaded ELF
// file. Symbols are queried by name or, for functions, by the address
// range they cover.
package symbols

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Symbol is one entry in the table. Size is the extent of the symbol in
// bytes and may be zero.
type Symbol struct {
	Addr uint64
	Size uint64
}

// Table maps a symbol name to its address and size. It also keeps a
// sorted index of names for stable listings.
type Table struct {
	entries map[string]Symbol

	// sorted index of keys in entries
	idx []string
}

// NewTable is the preferred method of initialisation for the Table
// type.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]Symbol),
		idx:     make([]string, 0),
	}
}

// Add a symbol to the table. An existing symbol of the same name is
// replaced.
func (t *Table) Add(name string, addr uint64, size uint64) {
	if _, ok := t.entries[name]; !ok {
		i := sort.SearchStrings(t.idx, name)
		t.idx = append(t.idx, "")
		copy(t.idx[i+1:], t.idx[i:])
		t.idx[i] = name
	}
	t.entries[name] = Symbol{Addr: addr, Size: size}
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.idx)
}

// Find returns the symbol with the given name.
func (t *Table) Find(name string) (Symbol, bool) {
	sym, ok := t.entries[name]
	return sym, ok
}

// FindFunction returns the name and symbol whose address range contains
// the given address. If more than one symbol covers the address the
// smallest is preferred.
func (t *Table) FindFunction(addr uint64) (string, Symbol, bool) {
	bestName := ""
	var best Symbol
	found := false
	for _, name := range t.idx {
		sym := t.entries[name]
		if addr >= sym.Addr && addr < sym.Addr+sym.Size {
			if !found || sym.Size < best.Size {
				bestName = name
				best = sym
				found = true
			}
		}
	}
	return bestName, best, found
}

// Write the table to the given writer, one "name 0xaddr" pair per line,
// sorted by name.
func (t *Table) Write(output io.Writer) {
	for _, name := range t.idx {
		fmt.Fprintf(output, "%s 0x%x\n", name, t.entries[name].Addr)
	}
}

func (t Table) String() string {
	s := strings.Builder{}
	t.Write(&s)
	return s.String()
}
