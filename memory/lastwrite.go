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

// lastWriteData is one hart's record of its most recent committed
// write. It holds exactly one record, not a log. A size of zero means
// no write has been tracked since the last clear.
type lastWriteData struct {
	size  uint
	addr  uint64
	value uint64
	prev  uint64
}

// recordWrite replaces the hart's last-write record. For memory mapped
// registers value is the masked value actually committed.
func (m *Memory) recordWrite(hart int, addr uint64, size uint, value uint64, prev uint64) {
	m.lastWrite[hart] = lastWriteData{
		size:  size,
		addr:  addr,
		value: value,
		prev:  prev,
	}
}

// LastWriteNew returns the address, committed value and size of the
// most recent write by the given hart. A size of zero means no write
// has been tracked since the last clear.
func (m *Memory) LastWriteNew(hart int) (uint64, uint64, uint) {
	lwd := m.lastWrite[hart]
	return lwd.addr, lwd.value, lwd.size
}

// LastWriteOld returns the address, pre-write value and size of the
// most recent write by the given hart. A size of zero means no write
// has been tracked since the last clear.
func (m *Memory) LastWriteOld(hart int) (uint64, uint64, uint) {
	lwd := m.lastWrite[hart]
	return lwd.addr, lwd.prev, lwd.size
}

// ClearLastWrite empties the last-write record of the given hart.
func (m *Memory) ClearLastWrite(hart int) {
	m.lastWrite[hart].size = 0
}

// ClearAllLastWrite empties the last-write record of every hart.
func (m *Memory) ClearAllLastWrite() {
	for i := range m.lastWrite {
		m.lastWrite[i].size = 0
	}
}
