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
	"io"

	"github.com/hexadrune/swervemu/curated"
	"github.com/hexadrune/swervemu/logger"
	"github.com/hexadrune/swervemu/memory"
)

// LoadElfFile loads an ELF file into memory. The ELF class must match
// the given register width (32 or 64) and the file must be
// little-endian. A non-RISC-V machine type is logged but tolerated.
//
// Every loadable segment's file bytes are copied to the segment's
// virtual address, bypassing the write attribute but honouring memory
// mapped register write-masks. If the memory's unmapped-ELF check is on
// then a segment byte falling on an unmapped page is an error.
//
// The symbol table of the file is added to the memory's symbol table.
// On success the returned values are the program entry point and the
// exclusive upper bound of the highest written address.
func LoadElfFile(mem *memory.Memory, filename string, registerWidth uint) (uint64, uint64, error) {
	if registerWidth != 32 && registerWidth != 64 {
		return 0, 0, curated.Errorf("elf: unsupported register width: %d", registerWidth)
	}

	ef, err := elf.Open(filename)
	if err != nil {
		return 0, 0, curated.Errorf("elf: %v", err)
	}
	defer ef.Close()

	is32 := ef.Class == elf.ELFCLASS32
	is64 := ef.Class == elf.ELFCLASS64
	if !is32 && !is64 {
		return 0, 0, curated.Errorf("elf: %s: only 32 and 64-bit files are supported", filename)
	}
	if registerWidth == 32 && !is32 {
		return 0, 0, curated.Errorf("elf: %s: loading a 64-bit file in 32-bit mode", filename)
	}
	if registerWidth == 64 && !is64 {
		return 0, 0, curated.Errorf("elf: %s: loading a non-64-bit file in 64-bit mode", filename)
	}
	if ef.Data != elf.ELFDATA2LSB {
		return 0, 0, curated.Errorf("elf: %s: only little-endian files are supported", filename)
	}
	if ef.Machine != elf.EM_RISCV {
		logger.Logf("elf", "%s: not a risc-v file", filename)
	}

	var maxEnd uint64
	errors := 0
	overwrites := 0
	loadedSegs := 0

	for segIx, prog := range ef.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}

		vaddr := prog.Vaddr
		segData := make([]byte, prog.Filesz)
		if _, err := io.ReadFull(prog.Open(), segData); err != nil {
			return 0, 0, curated.Errorf("elf: %s: segment %d: %v", filename, segIx, err)
		}

		if vaddr+prog.Filesz > mem.Size() {
			logger.Logf("elf", "end of segment %d (%#x) is beyond end of simulated memory (%#x)",
				segIx, vaddr+prog.Filesz, mem.Size())
			if mem.CheckUnmappedElf() {
				errors++
				continue
			}
		}

		unmappedCount := 0
		for i, b := range segData {
			addr := vaddr + uint64(i)
			if prev, _ := mem.ReadByteRaw(addr); prev != 0 {
				overwrites++
			}
			if !mem.WriteByteNoAccessCheck(addr, b) {
				if unmappedCount == 0 {
					logger.Logf("elf", "failed to copy byte at address %#x: location is not mapped", addr)
				}
				unmappedCount++
				if mem.CheckUnmappedElf() {
					errors++
					break
				}
			}
		}

		loadedSegs++
		if vaddr+prog.Filesz > maxEnd {
			maxEnd = vaddr + prog.Filesz
		}
	}

	if loadedSegs == 0 {
		logger.Logf("elf", "%s: no loadable segment", filename)
		errors++
	}

	// copying segment bytes must not leave a residue in the write
	// journal
	mem.ClearAllLastWrite()

	addElfSymbols(mem, ef)

	if overwrites > 0 {
		logger.Logf("elf", "%s: overwrote previously loaded data changing %d or more bytes",
			filename, overwrites)
	}

	if errors > 0 {
		return 0, 0, curated.Errorf("elf: %d errors loading %s", errors, filename)
	}

	return ef.Entry, maxEnd, nil
}

// addElfSymbols collects every named function, object and untyped
// symbol of the file into the memory's symbol table.
func addElfSymbols(mem *memory.Memory, ef *elf.File) {
	syms, err := ef.Symbols()
	if err != nil {
		// a file with no symbol table is not an error
		return
	}

	for _, sym := range syms {
		if sym.Name == "" {
			continue
		}
		switch elf.ST_TYPE(sym.Info) {
		case elf.STT_NOTYPE, elf.STT_FUNC, elf.STT_OBJECT:
			mem.Symbols.Add(sym.Name, sym.Value, sym.Size)
		}
	}
}
