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

	"github.com/hexadrune/swervemu/logger"
)

// Memory mapped registers are word-addressable control registers in
// the PIC area. Every register word carries a write-mask restricting
// which bits software may alter. Pages with no recorded mask vector
// behave as if every word had an all-ones mask.

// memMappedMask returns the write-mask of the word containing the given
// address. All-ones if the address has no recorded mask.
func (m *Memory) memMappedMask(addr uint64) uint32 {
	pageMasks, ok := m.masks[m.pageIndex(addr)]
	if !ok || len(pageMasks) == 0 {
		return ^uint32(0)
	}
	wordIx := (addr - m.pageStart(addr)) / 4
	return pageMasks[wordIx]
}

// readRegister reads a memory mapped register. The address must be word
// aligned.
func (m *Memory) readRegister(addr uint64) (uint32, bool) {
	if addr&3 != 0 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), true
}

// writeRegister writes a memory mapped register on behalf of the given
// hart. The address must be word aligned. The value is filtered through
// the register's write-mask before it is committed and the masked value
// is recorded in the hart's last-write record.
func (m *Memory) writeRegister(hart int, addr uint64, value uint32) bool {
	if addr&3 != 0 {
		return false
	}

	value &= m.memMappedMask(addr)

	prev := binary.LittleEndian.Uint32(m.data[addr:])
	binary.LittleEndian.PutUint32(m.data[addr:], value)
	m.recordWrite(hart, addr, 4, uint64(value), uint64(prev))
	return true
}

// DefineMemoryMappedRegisterWriteMask defines or overrides the
// write-mask of one register word. The register's address is
//
//	region*regionSize + picOffset + regAreaOffset + regIx*4
//
// The page at region*regionSize+picOffset must have been defined for
// memory mapped registers, the register area offset must be word
// aligned and the register address must fall on a memory mapped
// register page.
func (m *Memory) DefineMemoryMappedRegisterWriteMask(region uint64, picOffset uint64,
	regAreaOffset uint64, regIx uint64, mask uint32) bool {

	sectionStart := region*m.regionSize + picOffset
	attrib := m.attributes(sectionStart)
	if !attrib.IsMapped() {
		m.logMmrError("pic area does not exist", region, picOffset, regAreaOffset, regIx)
		return false
	}
	if !attrib.IsMemMappedReg() {
		m.logMmrError("area not defined for pic registers", region, picOffset, regAreaOffset, regIx)
		return false
	}

	if regAreaOffset&3 != 0 {
		m.logMmrError("pic register offset not a multiple of 4", region, picOffset, regAreaOffset, regIx)
		return false
	}

	registerAddr := sectionStart + regAreaOffset + regIx*4
	if !m.attributes(registerAddr).IsMemMappedReg() {
		m.logMmrError("pic register out of bounds", region, picOffset, regAreaOffset, regIx)
		return false
	}

	pageIx := m.pageIndex(registerAddr)
	pageMasks, ok := m.masks[pageIx]
	if !ok {
		pageMasks = make([]uint32, m.pageSize/4)
		for i := range pageMasks {
			pageMasks[i] = ^uint32(0)
		}
		m.masks[pageIx] = pageMasks
	}
	maskIx := (registerAddr - m.pageStart(registerAddr)) / 4
	pageMasks[maskIx] = mask

	return true
}

func (m *Memory) logMmrError(detail string, region uint64, picOffset uint64,
	regAreaOffset uint64, regIx uint64) {
	logger.Logf("memory", "%s: region %#x pic-base-offset %#x register-offset %#x register-index %#x",
		detail, region, picOffset, regAreaOffset, regIx)
}

// ResetMemoryMappedRegisters zeroes every word on every memory mapped
// register page.
func (m *Memory) ResetMemoryMappedRegisters() {
	for _, pageIx := range m.mmrPages {
		addr := pageIx * m.pageSize
		end := addr + m.pageSize
		if end > m.size {
			end = m.size
		}
		for i := addr; i < end; i++ {
			m.data[i] = 0
		}
	}
}
