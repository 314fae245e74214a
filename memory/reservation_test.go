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

func TestReservation(t *testing.T) {
	mem := memory.NewMemoryWithGeometry(16*1024, 4*1024, 16*1024, 2)

	test.Equate(t, mem.HasLr(0, 0x100), false)

	mem.MakeLr(0, 0x100, 4)
	test.Equate(t, mem.HasLr(0, 0x100), true)

	// the reservation is for the exact address
	test.Equate(t, mem.HasLr(0, 0x104), false)

	// and for the hart that made it
	test.Equate(t, mem.HasLr(1, 0x100), false)

	mem.InvalidateLr(0)
	test.Equate(t, mem.HasLr(0, 0x100), false)

	// a new reservation replaces the old one
	mem.MakeLr(0, 0x100, 4)
	mem.MakeLr(0, 0x200, 4)
	test.Equate(t, mem.HasLr(0, 0x100), false)
	test.Equate(t, mem.HasLr(0, 0x200), true)
}

func TestReservationInvalidation(t *testing.T) {
	mem := memory.NewMemoryWithGeometry(16*1024, 4*1024, 16*1024, 2)

	// a store by another hart inside the reserved range invalidates
	// the reservation
	mem.MakeLr(0, 0x100, 4)
	test.ExpectSuccess(t, mem.WriteWord(1, 0x100, 1))
	test.Equate(t, mem.HasLr(0, 0x100), false)

	mem.MakeLr(0, 0x100, 4)
	test.ExpectSuccess(t, mem.WriteByte(1, 0x103, 1))
	test.Equate(t, mem.HasLr(0, 0x100), false)

	// a store below the reservation that extends into it also
	// invalidates it
	mem.MakeLr(0, 0x100, 4)
	test.ExpectSuccess(t, mem.WriteWord(1, 0xfe, 1))
	test.Equate(t, mem.HasLr(0, 0x100), false)

	// a store ending exactly at the reservation does not
	mem.MakeLr(0, 0x100, 4)
	test.ExpectSuccess(t, mem.WriteHalfWord(1, 0xfe, 1))
	test.Equate(t, mem.HasLr(0, 0x100), true)

	// nor does a store starting exactly past it
	test.ExpectSuccess(t, mem.WriteWord(1, 0x104, 1))
	test.Equate(t, mem.HasLr(0, 0x100), true)
}

func TestReservationOwnStore(t *testing.T) {
	mem := memory.NewMemoryWithGeometry(16*1024, 4*1024, 16*1024, 2)

	// a hart's own store leaves its reservation alone
	mem.MakeLr(0, 0x100, 4)
	test.ExpectSuccess(t, mem.WriteWord(0, 0x100, 1))
	test.Equate(t, mem.HasLr(0, 0x100), true)

	// as does a poke by a debugger
	test.ExpectSuccess(t, mem.PokeWord(0x100, 2))
	test.Equate(t, mem.HasLr(0, 0x100), true)
}
