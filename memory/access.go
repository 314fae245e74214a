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

import (
	"encoding/binary"
)

// The access primitives below are the funnel for every load, store,
// fetch and atomic in the simulator. They return a boolean rather than
// an error; the execution engine converts a failure into the
// appropriate RISC-V exception. Nothing on these paths may allocate.
//
// All multi-byte values are assembled little-endian regardless of host.
//
// A misaligned access that straddles a page boundary requires the
// operation predicate on both pages and must not cross a DCCM or PIC
// boundary (an ICCM boundary for fetch). The crossing page is the one
// holding the last byte of the access.

// checkCross validates the second page of a misaligned data access of
// the given size. pred selects the operation predicate.
func (m *Memory) checkCross(attrib PageAttributes, addr uint64, size uint64, pred PageAttributes) bool {
	if m.pageStart(addr) == m.pageStart(addr+size-1) {
		return true
	}
	attrib2 := m.attributes(addr + size - 1)
	if attrib2&pred == 0 {
		return false
	}
	if attrib.IsDccm() != attrib2.IsDccm() {
		return false // cannot cross a DCCM boundary
	}
	if attrib.IsMemMappedReg() != attrib2.IsMemMappedReg() {
		return false // cannot cross a PIC boundary
	}
	return true
}

// ReadByte reads the byte at the given address. Byte access to memory
// mapped register pages is not permitted.
func (m *Memory) ReadByte(addr uint64) (uint8, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsRead() {
		return 0, false
	}
	if attrib.IsMemMappedReg() {
		return 0, false // only word access allowed to memory mapped regs
	}
	return m.data[addr], true
}

// ReadHalfWord reads the 2 bytes starting at the given address.
func (m *Memory) ReadHalfWord(addr uint64) (uint16, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsRead() {
		return 0, false
	}
	if addr&1 != 0 {
		if !m.checkCross(attrib, addr, 2, attrRead) {
			return 0, false
		}
	}
	if attrib.IsMemMappedReg() {
		return 0, false
	}
	return binary.LittleEndian.Uint16(m.data[addr:]), true
}

// ReadWord reads the 4 bytes starting at the given address. A word read
// is the only read size permitted on a memory mapped register page and
// it must be word aligned.
func (m *Memory) ReadWord(addr uint64) (uint32, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsRead() {
		return 0, false
	}
	if addr&3 != 0 {
		if !m.checkCross(attrib, addr, 4, attrRead) {
			return 0, false
		}
	}
	if attrib.IsMemMappedReg() {
		return m.readRegister(addr)
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), true
}

// ReadDoubleWord reads the 8 bytes starting at the given address.
func (m *Memory) ReadDoubleWord(addr uint64) (uint64, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsRead() {
		return 0, false
	}
	if addr&7 != 0 {
		if !m.checkCross(attrib, addr, 8, attrRead) {
			return 0, false
		}
	}
	if attrib.IsMemMappedReg() {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.data[addr:]), true
}

// ReadInstHalfWord reads a 2-byte instruction parcel. The page (and the
// crossing page, for a misaligned parcel) must be fetchable and the
// parcel must not cross an ICCM boundary.
func (m *Memory) ReadInstHalfWord(addr uint64) (uint16, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsExec() {
		return 0, false
	}
	if addr&1 != 0 {
		if m.pageStart(addr) != m.pageStart(addr+1) {
			attrib2 := m.attributes(addr + 1)
			if !attrib2.IsExec() {
				return 0, false
			}
			if attrib.IsIccm() != attrib2.IsIccm() {
				return 0, false // cannot cross an ICCM boundary
			}
		}
	}
	return binary.LittleEndian.Uint16(m.data[addr:]), true
}

// ReadInstWord reads a 4-byte instruction. See ReadInstHalfWord.
func (m *Memory) ReadInstWord(addr uint64) (uint32, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsExec() {
		return 0, false
	}
	if addr&3 != 0 {
		if m.pageStart(addr) != m.pageStart(addr+3) {
			attrib2 := m.attributes(addr + 3)
			if !attrib2.IsExec() {
				return 0, false
			}
			if attrib.IsIccm() != attrib2.IsIccm() {
				return 0, false // cannot cross an ICCM boundary
			}
		}
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), true
}

// WriteByte writes a byte to the given address on behalf of the given
// hart, recording the write in the hart's last-write record. Byte
// access to memory mapped register pages is not permitted.
func (m *Memory) WriteByte(hart int, addr uint64, value uint8) bool {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return false
	}
	if attrib.IsMemMappedReg() {
		return false // only word access allowed to memory mapped regs
	}

	prev := m.data[addr]
	m.data[addr] = value
	m.recordWrite(hart, addr, 1, uint64(value), uint64(prev))
	m.InvalidateOtherHartLr(hart, addr, 1)
	return true
}

// WriteHalfWord writes 2 bytes starting at the given address. See
// WriteWord.
func (m *Memory) WriteHalfWord(hart int, addr uint64, value uint16) bool {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return false
	}
	if addr&1 != 0 {
		if !m.checkCross(attrib, addr, 2, attrWrite) {
			return false
		}
	}
	if attrib.IsMemMappedReg() {
		return false
	}

	prev := binary.LittleEndian.Uint16(m.data[addr:])
	binary.LittleEndian.PutUint16(m.data[addr:], value)
	m.recordWrite(hart, addr, 2, uint64(value), uint64(prev))
	m.InvalidateOtherHartLr(hart, addr, 2)
	return true
}

// WriteWord writes 4 bytes starting at the given address on behalf of
// the given hart. A word write is the only write size permitted on a
// memory mapped register page; it must be word aligned and the written
// value is filtered through the register's write-mask. The write is
// recorded in the hart's last-write record and any overlapping
// reservation held by another hart is invalidated.
func (m *Memory) WriteWord(hart int, addr uint64, value uint32) bool {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return false
	}
	if addr&3 != 0 {
		if !m.checkCross(attrib, addr, 4, attrWrite) {
			return false
		}
	}
	if attrib.IsMemMappedReg() {
		if !m.writeRegister(hart, addr, value) {
			return false
		}
		m.InvalidateOtherHartLr(hart, addr, 4)
		return true
	}

	prev := binary.LittleEndian.Uint32(m.data[addr:])
	binary.LittleEndian.PutUint32(m.data[addr:], value)
	m.recordWrite(hart, addr, 4, uint64(value), uint64(prev))
	m.InvalidateOtherHartLr(hart, addr, 4)
	return true
}

// WriteDoubleWord writes 8 bytes starting at the given address. See
// WriteWord.
func (m *Memory) WriteDoubleWord(hart int, addr uint64, value uint64) bool {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return false
	}
	if addr&7 != 0 {
		if !m.checkCross(attrib, addr, 8, attrWrite) {
			return false
		}
	}
	if attrib.IsMemMappedReg() {
		return false
	}

	prev := binary.LittleEndian.Uint64(m.data[addr:])
	binary.LittleEndian.PutUint64(m.data[addr:], value)
	m.recordWrite(hart, addr, 8, value, prev)
	m.InvalidateOtherHartLr(hart, addr, 8)
	return true
}

// CheckWriteByte performs the same checks as WriteByte without
// mutating memory or the write journal.
func (m *Memory) CheckWriteByte(addr uint64, value uint8) (uint8, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return value, false
	}
	if attrib.IsMemMappedReg() {
		return value, false
	}
	return value, true
}

// CheckWriteHalfWord performs the same checks as WriteHalfWord without
// mutating memory or the write journal.
func (m *Memory) CheckWriteHalfWord(addr uint64, value uint16) (uint16, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return value, false
	}
	if addr&1 != 0 {
		if !m.checkCross(attrib, addr, 2, attrWrite) {
			return value, false
		}
	}
	if attrib.IsMemMappedReg() {
		return value, false
	}
	return value, true
}

// CheckWriteWord performs the same checks as WriteWord without mutating
// memory or the write journal. If the target is a memory mapped
// register the returned value is the masked value the write would
// commit.
func (m *Memory) CheckWriteWord(addr uint64, value uint32) (uint32, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return value, false
	}
	if addr&3 != 0 {
		if !m.checkCross(attrib, addr, 4, attrWrite) {
			return value, false
		}
	}
	if attrib.IsMemMappedReg() && addr&3 != 0 {
		return value, false
	}
	return value & m.memMappedMask(addr), true
}

// CheckWriteDoubleWord performs the same checks as WriteDoubleWord
// without mutating memory or the write journal.
func (m *Memory) CheckWriteDoubleWord(addr uint64, value uint64) (uint64, bool) {
	attrib := m.attributes(addr)
	if !attrib.IsWrite() {
		return value, false
	}
	if addr&7 != 0 {
		if !m.checkCross(attrib, addr, 8, attrWrite) {
			return value, false
		}
	}
	if attrib.IsMemMappedReg() {
		return value, false
	}
	return value, true
}

// checkPokeCross validates the crossing page of a poke that extends
// beyond the end of its first page. Pokes only require the crossing
// page to be mapped.
func (m *Memory) checkPokeCross(addr uint64, size uint64) bool {
	pageEnd := m.pageStart(addr) + m.pageSize
	if addr+size <= pageEnd {
		return true
	}
	return m.attributes(addr + size - 1).IsMapped()
}

// PokeByte writes a byte to any mapped address regardless of the write
// attribute. Pokes are used by debuggers and loaders; they are not
// recorded in the write journal. Byte access to memory mapped register
// pages is not permitted.
func (m *Memory) PokeByte(addr uint64, value uint8) bool {
	attrib := m.attributes(addr)
	if !attrib.IsMapped() {
		return false
	}
	if attrib.IsMemMappedReg() {
		return false // only word access allowed to memory mapped regs
	}
	m.data[addr] = value
	return true
}

// PokeHalfWord writes 2 bytes to any mapped address. See PokeByte.
func (m *Memory) PokeHalfWord(addr uint64, value uint16) bool {
	attrib := m.attributes(addr)
	if !attrib.IsMapped() {
		return false
	}
	if !m.checkPokeCross(addr, 2) {
		return false
	}
	if attrib.IsMemMappedReg() {
		return false
	}
	binary.LittleEndian.PutUint16(m.data[addr:], value)
	return true
}

// PokeWord writes 4 bytes to any mapped address. A word poke to a
// memory mapped register page must be word aligned; the write-mask is
// not applied.
func (m *Memory) PokeWord(addr uint64, value uint32) bool {
	attrib := m.attributes(addr)
	if !attrib.IsMapped() {
		return false
	}
	if !m.checkPokeCross(addr, 4) {
		return false
	}
	if attrib.IsMemMappedReg() && addr&3 != 0 {
		return false
	}
	binary.LittleEndian.PutUint32(m.data[addr:], value)
	return true
}

// PokeDoubleWord writes 8 bytes to any mapped address. See PokeByte.
func (m *Memory) PokeDoubleWord(addr uint64, value uint64) bool {
	attrib := m.attributes(addr)
	if !attrib.IsMapped() {
		return false
	}
	if !m.checkPokeCross(addr, 8) {
		return false
	}
	if attrib.IsMemMappedReg() {
		return false
	}
	binary.LittleEndian.PutUint64(m.data[addr:], value)
	return true
}

// WriteByteNoAccessCheck writes a byte to any mapped address bypassing
// the write attribute. Memory mapped register bytes are filtered
// through the corresponding byte of the register write-mask. This is
// used to initialise memory from an image file.
func (m *Memory) WriteByteNoAccessCheck(addr uint64, value uint8) bool {
	attrib := m.attributes(addr)
	if !attrib.IsMapped() {
		return false
	}

	mask := m.memMappedMask(addr)
	value &= uint8(mask >> ((addr & 3) * 8))

	m.data[addr] = value
	return true
}

// ReadByteRaw reads the byte at the given address with no attribute
// checks at all. Only the memory bound applies.
func (m *Memory) ReadByteRaw(addr uint64) (uint8, bool) {
	if addr >= m.size {
		return 0, false
	}
	return m.data[addr], true
}

// WriteByteRaw writes the byte at the given address with no attribute
// checks at all. Only the memory bound applies.
func (m *Memory) WriteByteRaw(addr uint64, value uint8) bool {
	if addr >= m.size {
		return false
	}
	m.data[addr] = value
	return true
}
