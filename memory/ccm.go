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
	"math/bits"

	"github.com/hexadrune/swervemu/logger"
)

// ICCM, DCCM and memory mapped register (PIC) areas are configured once
// at startup, before any execution. The first definition to touch a
// region makes the whole region inaccessible; only the parts claimed by
// subsequent definitions become usable again. FinishCcmConfig must be
// called once after the last definition.

// checkCcmConfig validates the geometry of an area definition. The
// region index must be valid, the size at least one page, the start
// address page-aligned and also aligned to the power of two no smaller
// than the size.
func (m *Memory) checkCcmConfig(tag string, region uint64, offset uint64, size uint64) bool {
	if region >= m.regionCount {
		logger.Logf("memory", "invalid %s region (%d). expecting number between 0 and %d",
			tag, region, m.regionCount-1)
		return false
	}

	if size < m.pageSize {
		logger.Logf("memory", "invalid %s size (%d). expecting a multiple of page size (%d)",
			tag, size, m.pageSize)
		return false
	}

	addr := region*m.regionSize + offset
	if addr%m.pageSize != 0 {
		logger.Logf("memory", "invalid %s start address (%#x): not page (%#x) aligned",
			tag, addr, m.pageSize)
		return false
	}

	// area must be aligned to the nearest power of 2 no smaller than
	// its size
	powerOf2 := uint64(1) << uint(bits.Len64(size)-1)
	if powerOf2 != size {
		powerOf2 *= 2
	}
	if addr%powerOf2 != 0 {
		logger.Logf("memory", "invalid %s start address (%#x): not aligned to size (%#x)",
			tag, addr, powerOf2)
		return false
	}

	return true
}

// checkCcmOverlap checks the area against previously defined areas. The
// first definition to touch a region unmaps every page in the region
// before the check. Pages already claimed by an area of a different
// kind are an overlap.
func (m *Memory) checkCcmOverlap(tag string, region uint64, offset uint64, size uint64,
	iccm bool, dccm bool, pic bool) bool {

	if !m.regionConfigured[region] {
		// region never configured. make it all inaccessible
		m.regionConfigured[region] = true
		ix0 := m.pageIndex(m.regionSize * region)
		ix1 := ix0 + m.regionSize/m.pageSize
		if ix1 > uint64(len(m.attribs)) {
			ix1 = uint64(len(m.attribs))
		}
		for ix := ix0; ix < ix1; ix++ {
			m.attribs[ix] = 0
		}
		return true // no overlap
	}

	addr := region*m.regionSize + offset
	ix0 := m.pageIndex(addr)
	ix1 := m.pageIndex(addr + size)
	if ix1 > uint64(len(m.attribs)) {
		ix1 = uint64(len(m.attribs))
	}
	for ix := ix0; ix < ix1; ix++ {
		attrib := m.attribs[ix]
		if !attrib.IsMapped() {
			continue
		}
		if (iccm && !attrib.IsIccm()) || (dccm && !attrib.IsDccm()) ||
			(pic && !attrib.IsMemMappedReg()) {
			logger.Logf("memory", "%s area at address %#x overlaps a previously defined area",
				tag, addr)
			return false
		}
	}

	return true
}

// DefineIccm defines an instruction closely-coupled memory area of the
// given size at the given offset in the given region. Pages in the area
// become readable, executable and part of the ICCM.
func (m *Memory) DefineIccm(region uint64, offset uint64, size uint64) bool {
	if !m.checkCcmConfig("iccm", region, offset, size) {
		return false
	}
	if !m.checkCcmOverlap("iccm", region, offset, size, true, false, false) {
		return false
	}

	addr := region*m.regionSize + offset
	ix := m.pageIndex(addr)
	count := size / m.pageSize
	for i := uint64(0); i < count; i++ {
		m.attribs[ix+i].set(attrRead, true)
		m.attribs[ix+i].set(attrExec, true)
		m.attribs[ix+i].set(attrIccm, true)
	}
	return true
}

// DefineDccm defines a data closely-coupled memory area of the given
// size at the given offset in the given region. Pages in the area
// become readable, writable and part of the DCCM.
func (m *Memory) DefineDccm(region uint64, offset uint64, size uint64) bool {
	if !m.checkCcmConfig("dccm", region, offset, size) {
		return false
	}
	if !m.checkCcmOverlap("dccm", region, offset, size, false, true, false) {
		return false
	}

	addr := region*m.regionSize + offset
	ix := m.pageIndex(addr)
	count := size / m.pageSize
	for i := uint64(0); i < count; i++ {
		m.attribs[ix+i].set(attrRead, true)
		m.attribs[ix+i].set(attrWrite, true)
		m.attribs[ix+i].set(attrDccm, true)
	}
	return true
}

// DefineMemMappedRegisterRegion defines a memory mapped register (PIC)
// area of the given size at the given offset in the given region. Pages
// in the area become readable, writable and word-addressable only. Each
// page starts out with an implicit all-ones write-mask for every word.
func (m *Memory) DefineMemMappedRegisterRegion(region uint64, offset uint64, size uint64) bool {
	if !m.checkCcmConfig("pic memory", region, offset, size) {
		return false
	}
	if !m.checkCcmOverlap("pic memory", region, offset, size, false, false, true) {
		return false
	}

	addr := region*m.regionSize + offset
	ix := m.pageIndex(addr)
	count := size / m.pageSize
	for i := uint64(0); i < count; i++ {
		m.mmrPages = append(m.mmrPages, ix+i)
		m.attribs[ix+i].set(attrRead, true)
		m.attribs[ix+i].set(attrWrite, true)
		m.attribs[ix+i].set(attrMemMappedReg, true)
	}
	return true
}

// FinishCcmConfig refines access to configured regions once all the
// ICCM/DCCM/PIC definitions have been processed.
//
// A configured region with ICCM sections but no DCCM/PIC sections
// becomes fully accessible for data. A configured region with DCCM/PIC
// sections but no ICCM sections becomes fully accessible for fetch. A
// configured region with both keeps fetch inside the ICCM sections and
// data access inside the DCCM/PIC sections.
func (m *Memory) FinishCcmConfig() {
	for region := uint64(0); region < m.regionCount; region++ {
		if !m.regionConfigured[region] {
			continue
		}

		ix0 := m.pageIndex(region * m.regionSize)
		ix1 := ix0 + m.regionSize/m.pageSize
		if ix1 > uint64(len(m.attribs)) {
			ix1 = uint64(len(m.attribs))
		}

		hasData := false
		hasInst := false
		for ix := ix0; ix < ix1; ix++ {
			hasData = hasData || m.attribs[ix].IsWrite()
			hasInst = hasInst || m.attribs[ix].IsExec()
		}

		if hasInst && hasData {
			// fetch stays inside the ICCM sections and data access
			// inside the DCCM/PIC sections
			for ix := ix0; ix < ix1; ix++ {
				if m.attribs[ix].IsExec() {
					m.attribs[ix].set(attrRead, false)
					m.attribs[ix].set(attrWrite, false)
				} else if m.attribs[ix].IsWrite() {
					m.attribs[ix].set(attrExec, false)
				}
			}
			continue
		}

		if hasInst {
			for ix := ix0; ix < ix1; ix++ {
				m.attribs[ix].set(attrRead, true)
				m.attribs[ix].set(attrWrite, true)
			}
		}

		if hasData {
			for ix := ix0; ix < ix1; ix++ {
				m.attribs[ix].set(attrExec, true)
			}
		}
	}
}
