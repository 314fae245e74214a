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

// Package memory models the physical memory of a simulated SweRV-class
// RISC-V system.
//
// The address space is a single contiguous byte range partitioned into
// regions (256MB by default) and pages (4KB by default). Every page
// carries access attributes controlling read, write and instruction
// fetch. ICCM and DCCM areas and memory mapped register (PIC) areas are
// configured with the Define functions before execution begins;
// FinishCcmConfig completes the configuration.
//
// The access primitives (ReadWord, WriteWord, ReadInstWord and friends)
// are the funnel for every load, store and fetch of the execution
// engine. They return a success flag rather than an error; a failure is
// converted by the caller into the appropriate RISC-V exception.
//
// Memory mapped register pages are word-addressable only and every
// register word carries a write-mask restricting the bits software may
// alter. LR/SC reservations are tracked per hart, as is a record of
// each hart's most recent write for tracing and rollback.
//
// The Poke functions bypass the write attribute for use by debuggers
// and loaders. They are not recorded in the write journal.
package memory
