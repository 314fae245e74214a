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

package loader

import (
	"debug/elf"

	"github.com/hexadrune/swervemu/curated"
)

// ElfFileAddressBounds returns the smallest and largest (exclusive)
// virtual addresses covered by the loadable segments of an ELF file.
// Only the segment headers are consulted.
func ElfFileAddressBounds(filename string) (uint64, uint64, error) {
	ef, err := elf.Open(filename)
	if err != nil {
		return 0, 0, curated.Errorf("elf: %v", err)
	}
	defer ef.Close()

	minBound := ^uint64(0)
	maxBound := uint64(0)
	validSegs := 0

	for _, prog := range ef.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		if prog.Vaddr < minBound {
			minBound = prog.Vaddr
		}
		if prog.Vaddr+prog.Filesz > maxBound {
			maxBound = prog.Vaddr + prog.Filesz
		}
		validSegs++
	}

	if validSegs == 0 {
		return 0, 0, curated.Errorf("elf: %s: no loadable segment", filename)
	}

	return minBound, maxBound, nil
}

// CheckElfFile reports the class and machine type of an ELF file. Only
// the file header is consulted.
func CheckElfFile(filename string) (is32 bool, is64 bool, isRiscv bool, err error) {
	ef, err := elf.Open(filename)
	if err != nil {
		return false, false, false, curated.Errorf("elf: %v", err)
	}
	defer ef.Close()

	is32 = ef.Class == elf.ELFCLASS32
	is64 = ef.Class == elf.ELFCLASS64
	isRiscv = ef.Machine == elf.EM_RISCV
	return is32, is64, isRiscv, nil
}

// IsSymbolInElfFile returns true if the named symbol appears in the
// symbol table of the ELF file as a function, object or untyped
// symbol.
func IsSymbolInElfFile(filename string, symbol string) (bool, error) {
	ef, err := elf.Open(filename)
	if err != nil {
		return false, curated.Errorf("elf: %v", err)
	}
	defer ef.Close()

	syms, err := ef.Symbols()
	if err != nil {
		return false, nil
	}

	for _, sym := range syms {
		if sym.Name != symbol {
			continue
		}
		switch elf.ST_TYPE(sym.Info) {
		case elf.STT_NOTYPE, elf.STT_FUNC, elf.STT_OBJECT:
			return true, nil
		}
	}
	return false, nil
}
