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

// two regions of 32k, sixteen pages of 4k
func newCcmMemory() *memory.Memory {
	return memory.NewMemoryWithGeometry(64*1024, 4*1024, 32*1024, 1)
}

func TestCcmFirstTouchLockdown(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineIccm(0, 0, 4*1024), true)

	// the first definition to touch a region makes the rest of the
	// region inaccessible
	test.Equate(t, mem.IsAddrInIccm(0), true)
	test.Equate(t, mem.IsAddrMapped(0x1000), false)

	// the other region is untouched
	test.Equate(t, mem.IsAddrMapped(0x8000), true)

	// the iccm pages are fetchable and readable but not writable
	_, ok := mem.ReadInstWord(0)
	test.ExpectSuccess(t, ok)
	_, ok = mem.ReadByte(0)
	test.ExpectSuccess(t, ok)
	test.ExpectFailure(t, mem.WriteByte(0, 0, 0xff))
}

func TestCcmOverlap(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineIccm(0, 0, 4*1024), true)

	// an area of a different kind on the same pages is an overlap
	test.Equate(t, mem.DefineDccm(0, 0, 4*1024), false)

	// an area of the same kind on the same pages is not
	test.Equate(t, mem.DefineIccm(0, 0, 4*1024), true)

	// distinct pages in the same region are fine
	test.Equate(t, mem.DefineDccm(0, 0x1000, 4*1024), true)
	test.Equate(t, mem.DefineMemMappedRegisterRegion(0, 0x1000, 4*1024), false)
	test.Equate(t, mem.DefineMemMappedRegisterRegion(0, 0x2000, 4*1024), true)
}

func TestCcmGeometryChecks(t *testing.T) {
	mem := newCcmMemory()

	// region out of range
	test.Equate(t, mem.DefineIccm(2, 0, 4*1024), false)

	// size smaller than a page
	test.Equate(t, mem.DefineIccm(0, 0, 1024), false)

	// start address not page aligned
	test.Equate(t, mem.DefineIccm(0, 100, 4*1024), false)

	// start address not aligned to the power of two no smaller than
	// the size
	test.Equate(t, mem.DefineIccm(0, 0x1000, 8*1024), false)

	// a failed definition does not lock the region down
	test.Equate(t, mem.IsAddrMapped(0), true)
}

func TestFinishCcmConfigInstOnly(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineIccm(0, 0, 4*1024), true)
	mem.FinishCcmConfig()

	// a region with only iccm sections becomes fully accessible for
	// data but fetch stays inside the iccm
	test.ExpectSuccess(t, mem.WriteByte(0, 0x1000, 0xff))
	_, ok := mem.ReadInstWord(0x1000)
	test.ExpectFailure(t, ok)
	_, ok = mem.ReadInstWord(0)
	test.ExpectSuccess(t, ok)
}

func TestFinishCcmConfigDataOnly(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineDccm(0, 0, 4*1024), true)
	mem.FinishCcmConfig()

	// a region with only dccm sections becomes fully accessible for
	// fetch but data access stays inside the dccm
	test.ExpectSuccess(t, mem.WriteByte(0, 0, 0xff))
	test.Equate(t, mem.IsDataAddrExternal(0), false)

	_, ok := mem.ReadInstWord(0x1000)
	test.ExpectSuccess(t, ok)
	_, ok = mem.ReadByte(0x1000)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, mem.WriteByte(0, 0x1000, 0xff))
}

func TestFinishCcmConfigMixed(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineIccm(0, 0, 4*1024), true)
	test.Equate(t, mem.DefineDccm(0, 0x1000, 4*1024), true)
	mem.FinishCcmConfig()

	// fetch only inside the iccm, data access only inside the dccm
	_, ok := mem.ReadInstWord(0)
	test.ExpectSuccess(t, ok)
	_, ok = mem.ReadByte(0)
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, mem.WriteByte(0, 0x1000, 0xff))
	_, ok = mem.ReadInstWord(0x1000)
	test.ExpectFailure(t, ok)

	// unclaimed pages in the region stay unmapped
	test.Equate(t, mem.IsAddrMapped(0x2000), false)

	// the other region is unaffected
	test.ExpectSuccess(t, mem.WriteByte(0, 0x8000, 0xff))
}

func TestDccmBoundaryCrossing(t *testing.T) {
	mem := newCcmMemory()

	test.Equate(t, mem.DefineDccm(0, 0, 8*1024), true)
	test.Equate(t, mem.DefineMemMappedRegisterRegion(0, 0x2000, 4*1024), true)
	mem.FinishCcmConfig()

	// a misaligned access inside the dccm is fine
	test.ExpectSuccess(t, mem.WriteWord(0, 0xffe, 0xdeadbeef))

	// an access crossing out of the dccm fails even though the
	// neighbouring page is writable
	test.ExpectFailure(t, mem.WriteWord(0, 0x1ffe, 0xdeadbeef))
	_, ok := mem.ReadWord(0x1ffe)
	test.ExpectFailure(t, ok)
}
