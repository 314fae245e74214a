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

package memory

// reservation is one hart's LR/SC reservation. At most one reservation
// is valid per hart.
type reservation struct {
	addr  uint64
	size  uint64
	valid bool
}

// MakeLr records an LR reservation of the given size at the given
// address for the given hart. Any previous reservation held by the hart
// is replaced.
func (m *Memory) MakeLr(hart int, addr uint64, size uint64) {
	m.lrMu.Lock()
	defer m.lrMu.Unlock()

	m.reservations[hart] = reservation{addr: addr, size: size, valid: true}
}

// InvalidateLr drops the reservation of the given hart.
func (m *Memory) InvalidateLr(hart int) {
	m.lrMu.Lock()
	defer m.lrMu.Unlock()

	m.reservations[hart].valid = false
}

// HasLr returns true if the given hart holds a valid reservation for
// the given address.
func (m *Memory) HasLr(hart int, addr uint64) bool {
	m.lrMu.Lock()
	defer m.lrMu.Unlock()

	res := m.reservations[hart]
	return res.valid && res.addr == addr
}

// InvalidateOtherHartLr drops the reservation of every hart other than
// the given one whose reserved byte-range overlaps the store of
// storeSize bytes at the given address. The overlap test is inclusive
// both ways: a store address inside the reservation and a reservation
// address inside the store both count.
func (m *Memory) InvalidateOtherHartLr(hart int, addr uint64, storeSize uint64) {
	m.lrMu.Lock()
	defer m.lrMu.Unlock()

	for i := range m.reservations {
		if i == hart {
			continue
		}
		res := &m.reservations[i]
		if addr >= res.addr && addr-res.addr < res.size {
			res.valid = false
		} else if addr < res.addr && res.addr-addr < storeSize {
			res.valid = false
		}
	}
}
