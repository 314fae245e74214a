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

func TestNewMemory(t *testing.T) {
	mem := memory.NewMemory(8*1024*1024, 2)

	test.Equate(t, mem.Size(), uint64(8*1024*1024))
	test.Equate(t, mem.PageSize(), uint64(memory.DefaultPageSize))
	test.Equate(t, mem.HartCount(), 2)

	// the whole of memory starts out usable
	test.Equate(t, mem.IsAddrMapped(0), true)
	test.Equate(t, mem.IsAddrReadable(0), true)
	test.Equate(t, mem.IsAddrMapped(8*1024*1024-1), true)

	// addresses beyond the end of memory are unmapped
	test.Equate(t, mem.IsAddrMapped(8*1024*1024), false)

	// no CCM or register areas configured yet
	test.Equate(t, mem.IsAddrInIccm(0), false)
	test.Equate(t, mem.IsAddrInDccm(0), false)
	test.Equate(t, mem.IsAddrInMappedRegs(0), false)
	test.Equate(t, mem.IsDataAddrExternal(0), true)
}

func TestGeometryNormalisation(t *testing.T) {
	// size is truncated to a multiple of 4 and then rounded up to a
	// multiple of the page size
	mem := memory.NewMemoryWithGeometry(6*1024+2, 4*1024, 8*1024, 1)
	test.Equate(t, mem.Size(), uint64(8*1024))
	test.Equate(t, mem.PageSize(), uint64(4*1024))

	// page size is rounded down to a power of two
	mem = memory.NewMemoryWithGeometry(64*1024, 3000, 8*1024, 1)
	test.Equate(t, mem.PageSize(), uint64(2048))

	// memory is never smaller than one page
	mem = memory.NewMemoryWithGeometry(16, 4*1024, 8*1024, 1)
	test.Equate(t, mem.Size(), uint64(4*1024))

	// hart count is never less than one
	mem = memory.NewMemoryWithGeometry(8*1024, 4*1024, 8*1024, 0)
	test.Equate(t, mem.HartCount(), 1)
}

func TestAccessSetters(t *testing.T) {
	mem := memory.NewMemoryWithGeometry(16*1024, 4*1024, 16*1024, 1)

	mem.SetWriteAccess(0x1000, false)
	test.ExpectFailure(t, mem.WriteByte(0, 0x1000, 0xff))
	test.Equate(t, mem.IsAddrReadable(0x1000), true)

	mem.SetReadAccess(0x1000, false)
	_, ok := mem.ReadByte(0x1000)
	test.ExpectFailure(t, ok)

	mem.SetExecAccess(0x1000, false)
	test.Equate(t, mem.IsAddrMapped(0x1000), false)

	// restoring the attributes makes the page usable again
	mem.SetReadAccess(0x1000, true)
	mem.SetWriteAccess(0x1000, true)
	test.ExpectSuccess(t, mem.WriteByte(0, 0x1000, 0xff))

	// setters on out of bounds addresses are no-ops
	mem.SetReadAccess(1<<40, true)
	mem.SetWriteAccess(1<<40, true)
	mem.SetExecAccess(1<<40, true)
	test.Equate(t, mem.IsAddrMapped(1<<40), false)
}

func TestCopy(t *testing.T) {
	a := memory.NewMemoryWithGeometry(8*1024, 4*1024, 8*1024, 1)
	b := memory.NewMemoryWithGeometry(8*1024, 4*1024, 8*1024, 1)

	test.ExpectSuccess(t, a.WriteWord(0, 0x100, 0xdeadbeef))

	b.Copy(a)
	v, ok := b.ReadWord(0x100)
	test.ExpectSuccess(t, ok)
	test.Equate(t, v, 0xdeadbeef)
}
