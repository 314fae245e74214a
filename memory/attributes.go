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

// PageAttributes records the access attributes of one page of memory.
// The attributes are bit-packed into a single byte. The attribute table
// can be very large when the page size is small (64-byte pages are used
// by some core configurations) so density matters.
type PageAttributes uint8

const (
	attrRead PageAttributes = 1 << iota
	attrWrite
	attrExec
	attrMemMappedReg
	attrIccm
	attrDccm
)

// IsRead returns true if the page is readable.
func (a PageAttributes) IsRead() bool {
	return a&attrRead != 0
}

// IsWrite returns true if the page is writable.
func (a PageAttributes) IsWrite() bool {
	return a&attrWrite != 0
}

// IsExec returns true if the page can be used for instruction fetch.
func (a PageAttributes) IsExec() bool {
	return a&attrExec != 0
}

// IsMemMappedReg returns true if the page contains memory mapped
// registers.
func (a PageAttributes) IsMemMappedReg() bool {
	return a&attrMemMappedReg != 0
}

// IsIccm returns true if the page belongs to an ICCM region.
func (a PageAttributes) IsIccm() bool {
	return a&attrIccm != 0
}

// IsDccm returns true if the page belongs to a DCCM region.
func (a PageAttributes) IsDccm() bool {
	return a&attrDccm != 0
}

// IsMapped returns true if the page is usable at all.
func (a PageAttributes) IsMapped() bool {
	return a&(attrRead|attrWrite|attrExec) != 0
}

// IsExternal returns true if the page is external to the core.
func (a PageAttributes) IsExternal() bool {
	return a&(attrDccm|attrMemMappedReg) == 0
}

func (a *PageAttributes) set(flag PageAttributes, v bool) {
	if v {
		*a |= flag
	} else {
		*a &^= flag
	}
}
