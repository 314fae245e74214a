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

package memory_test

import (
	"testing"

	"github.com/hexadrune/swervemu/memory"
	"github.com/hexadrune/swervemu/test"
)

// picBase is the start of the register area defined by newMmrMemory, at
// the bottom of the second region.
const picBase = uint64(0x8000)

func newMmrMemory() *memory.Memory {
	mem := memory.NewMemoryWithGeometry(64*1024, 4*1024, 32*1024, 1)
	if !mem.DefineMemMappedRegisterRegion(1, 0, 4*1024) {
		return nil
	}
	mem.FinishCcmConfig()
	return mem
}

func TestMemMappedRegisterAccess(t *testing.T) {
	mem := newMmrMemory()

	test.Equate(t, mem.IsAddrInMappedRegs(picBase), true)
	test.Equate(t, mem.IsDataAddrExternal(picBase), false)

	// aligned word access is the only access permitted
	test.ExpectSuccess(t, mem.WriteWord(0, picBase, 0xdeadbeef))
	w, ok := mem.ReadWord(picBase)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0xdeadbeef)

	_, ok = mem.ReadByte(picBase)
	test.ExpectFailure(t, ok)
	_, ok = mem.ReadHalfWord(picBase)
	test.ExpectFailure(t, ok)
	_, ok = mem.ReadDoubleWord(picBase)
	test.ExpectFailure(t, ok)

	test.ExpectFailure(t, mem.WriteByte(0, picBase, 0xff))
	test.ExpectFailure(t, mem.WriteHalfWord(0, picBase, 0xffff))
	test.ExpectFailure(t, mem.WriteDoubleWord(0, picBase, 1))

	// a misaligned word access fails
	test.ExpectFailure(t, mem.WriteWord(0, picBase+2, 1))
	_, ok = mem.ReadWord(picBase + 2)
	test.ExpectFailure(t, ok)
}

func TestWriteMask(t *testing.T) {
	mem := newMmrMemory()

	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(1, 0, 0, 0, 0x0000ffff), true)

	// a check-write reports the masked value without committing it
	v, ok := mem.CheckWriteWord(picBase, 0xdeadbeef)
	test.ExpectSuccess(t, ok)
	test.Equate(t, v, 0x0000beef)
	w, ok := mem.ReadWord(picBase)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0)

	// the write commits the masked value and records it in the
	// last-write record
	test.ExpectSuccess(t, mem.WriteWord(0, picBase, 0xdeadbeef))
	w, ok = mem.ReadWord(picBase)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0x0000beef)

	addr, value, size := mem.LastWriteNew(0)
	test.Equate(t, addr, picBase)
	test.Equate(t, value, uint64(0x0000beef))
	test.Equate(t, int(size), 4)

	// other registers on the page keep the implicit all-ones mask
	test.ExpectSuccess(t, mem.WriteWord(0, picBase+4, 0xdeadbeef))
	w, ok = mem.ReadWord(picBase + 4)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0xdeadbeef)

	// a poke is not filtered through the mask
	test.ExpectSuccess(t, mem.PokeWord(picBase, 0xffffffff))
	w, ok = mem.ReadWord(picBase)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0xffffffff)
}

func TestWriteMaskDefinition(t *testing.T) {
	mem := newMmrMemory()

	// area not defined for registers
	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(0, 0, 0, 0, 1), false)

	// area in the register region that was not defined for registers
	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(1, 0x1000, 0, 0, 1), false)

	// register area offset not word aligned
	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(1, 0, 2, 0, 1), false)

	// register index beyond the register pages
	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(1, 0, 0, 1024, 1), false)

	// last register of the page is fine
	test.Equate(t, mem.DefineMemoryMappedRegisterWriteMask(1, 0, 0, 1023, 1), true)
}

func TestResetMemoryMappedRegisters(t *testing.T) {
	mem := newMmrMemory()

	test.ExpectSuccess(t, mem.WriteWord(0, picBase, 0xdeadbeef))
	test.ExpectSuccess(t, mem.WriteWord(0, picBase+0xff8, 0xcafe0123))
	test.ExpectSuccess(t, mem.WriteWord(0, 0x100, 0x01020304))

	mem.ResetMemoryMappedRegisters()

	// every word on every register page is zeroed
	w, ok := mem.ReadWord(picBase)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0)
	w, ok = mem.ReadWord(picBase + 0xff8)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0)

	// memory outside the register pages is untouched
	w, ok = mem.ReadWord(0x100)
	test.ExpectSuccess(t, ok)
	test.Equate(t, w, 0x01020304)
}

func TestPicBoundaryCrossing(t *testing.T) {
	mem := newMmrMemory()

	// a misaligned access crossing from ordinary memory into the
	// register area fails
	test.ExpectFailure(t, mem.WriteWord(0, picBase-2, 1))
	_, ok := mem.ReadWord(picBase - 2)
	test.ExpectFailure(t, ok)
}
