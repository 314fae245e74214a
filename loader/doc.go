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

// Package loader initialises simulated memory from program images.
//
// Two image formats are supported. Verilog-style hex files are a
// sequence of lines, each either an @address directive moving the
// write cursor or a run of byte values written from the cursor. ELF
// files are parsed with the standard debug/elf package; every loadable
// segment is copied to its virtual address and the symbol table is
// collected for later queries.
//
// The probe functions inspect an ELF file without touching memory.
// They are used to validate a file before a load is attempted.
package loader
