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
	"sync"

	"github.com/hexadrune/swervemu/logger"
	"github.com/hexadrune/swervemu/symbols"
)

// Default geometry of the address space. Page size is the granularity
// at which access attributes and register write-masks are recorded.
// Region size is the granularity at which ICCM/DCCM/PIC areas are
// configured.
const (
	DefaultPageSize   = 4 * 1024
	DefaultRegionSize = 256 * 1024 * 1024
)

// Memory models the physical memory of the simulated system. The
// address space is a single contiguous byte range partitioned into
// fixed-size regions and pages. Pages carry access attributes and,
// for memory mapped register pages, per-word write-masks.
//
// The zero value is not usable. Use NewMemory() or NewMemoryWithGeometry().
type Memory struct {
	size uint64
	data []byte

	pageSize  uint64
	pageShift uint
	pageCount uint64

	regionSize  uint64
	regionShift uint
	regionCount uint64

	// one entry per region. a region is "configured" once an
	// ICCM/DCCM/PIC definition has touched it
	regionConfigured []bool

	// one entry per page
	attribs []PageAttributes

	// write masks for memory mapped register pages. pages with no
	// entry have an implicit all-ones mask
	masks map[uint64][]uint32

	// pages defined for memory mapped registers, in definition order
	mmrPages []uint64

	// error on ELF segment bytes that fall on unmapped pages
	checkUnmappedElf bool

	// Symbols collects the symbol table of every loaded ELF file
	Symbols *symbols.Table

	reservations []reservation
	lastWrite    []lastWriteData

	// serializes atomic read-modify-write sequences when harts are
	// stepped concurrently
	amoMu sync.Mutex

	// serializes reservation create/invalidate/query across harts
	lrMu sync.Mutex
}

// NewMemory is the preferred method of initialisation for the Memory
// type. Memory is sized with the default page and region geometry. The
// hart count fixes the number of per-hart reservation and last-write
// slots.
func NewMemory(size uint64, hartCount int) *Memory {
	return NewMemoryWithGeometry(size, DefaultPageSize, DefaultRegionSize, hartCount)
}

// NewMemoryWithGeometry initialises a Memory with an explicit page and
// region size. Page and region sizes must be powers of two and the
// region size must not be smaller than the page size. Arguments that do
// not satisfy those constraints are adjusted rather than rejected; every
// adjustment is logged.
func NewMemoryWithGeometry(size uint64, pageSize uint64, regionSize uint64, hartCount int) *Memory {
	mem := &Memory{
		checkUnmappedElf: true,
		Symbols:          symbols.NewTable(),
	}

	if size&3 != 0 {
		adj := (size >> 2) << 2
		logger.Logf("memory", "size (%d) is not a multiple of 4. using %d", size, adj)
		size = adj
	}

	logPageSize := uint(bits.Len64(pageSize) - 1)
	p2PageSize := uint64(1) << logPageSize
	if p2PageSize != pageSize {
		logger.Logf("memory", "page size (%#x) is not a power of 2. using %#x", pageSize, p2PageSize)
		pageSize = p2PageSize
	}
	mem.pageSize = pageSize
	mem.pageShift = logPageSize

	if size < pageSize {
		logger.Logf("memory", "unreasonably small memory size (less than %#x). using %#x", pageSize, pageSize)
		size = pageSize
	}

	mem.pageCount = size / pageSize
	if mem.pageCount*pageSize != size {
		mem.pageCount++
		adj := mem.pageCount * pageSize
		logger.Logf("memory", "size (%#x) is not a multiple of page size (%#x). using %#x", size, pageSize, adj)
		size = adj
	}
	mem.size = size

	logRegionSize := uint(bits.Len64(regionSize) - 1)
	p2RegionSize := uint64(1) << logRegionSize
	if p2RegionSize != regionSize {
		logger.Logf("memory", "region size (%#x) is not a power of 2. using %#x", regionSize, p2RegionSize)
		regionSize = p2RegionSize
		logRegionSize = uint(bits.Len64(regionSize) - 1)
	}
	if regionSize < pageSize {
		logger.Logf("memory", "region size (%#x) smaller than page size (%#x). using page size", regionSize, pageSize)
		regionSize = pageSize
		logRegionSize = mem.pageShift
	}
	mem.regionSize = regionSize
	mem.regionShift = logRegionSize

	mem.regionCount = size / regionSize
	if mem.regionCount*regionSize < size {
		mem.regionCount++
	}

	mem.data = make([]byte, size)
	mem.regionConfigured = make([]bool, mem.regionCount)
	mem.attribs = make([]PageAttributes, mem.pageCount)
	mem.masks = make(map[uint64][]uint32)

	// the whole of memory starts out mapped, writable and usable for
	// both data and instructions. pages are reconfigured when the
	// ICCM/DCCM/PIC definitions are processed
	for i := range mem.attribs {
		mem.attribs[i] = attrRead | attrWrite | attrExec
	}

	if hartCount < 1 {
		hartCount = 1
	}
	mem.reservations = make([]reservation, hartCount)
	mem.lastWrite = make([]lastWriteData, hartCount)

	return mem
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint64 {
	return m.size
}

// PageSize returns the page size in bytes.
func (m *Memory) PageSize() uint64 {
	return m.pageSize
}

// HartCount returns the number of harts the per-hart tables are sized
// for.
func (m *Memory) HartCount() int {
	return len(m.reservations)
}

// SetCheckUnmappedElf controls whether ELF segment bytes falling on
// unmapped pages are treated as errors by the loader.
func (m *Memory) SetCheckUnmappedElf(flag bool) {
	m.checkUnmappedElf = flag
}

// CheckUnmappedElf returns the current unmapped-ELF policy.
func (m *Memory) CheckUnmappedElf() bool {
	return m.checkUnmappedElf
}

// Copy the backing store of another Memory into this one. If the two
// memories have different sizes then data is copied from location zero
// up to the smaller of the sizes.
func (m *Memory) Copy(other *Memory) {
	copy(m.data, other.data)
}

// pageIndex returns the number of the page containing the given
// address. The index is not guaranteed to be within the attribute
// table; see attributes().
func (m *Memory) pageIndex(addr uint64) uint64 {
	return addr >> m.pageShift
}

// pageStart returns the start address of the page containing the given
// address.
func (m *Memory) pageStart(addr uint64) uint64 {
	return (addr >> m.pageShift) << m.pageShift
}

// attributes returns the attributes of the page containing the given
// address. Addresses beyond the end of memory yield the zero attribute
// record, which is unmapped.
func (m *Memory) attributes(addr uint64) PageAttributes {
	ix := addr >> m.pageShift
	if ix >= uint64(len(m.attribs)) {
		return 0
	}
	return m.attribs[ix]
}

// regionIndex returns the number of the region containing the given
// address.
func (m *Memory) regionIndex(addr uint64) uint64 {
	return addr >> m.regionShift
}

// IsAddrMapped returns true if the given address is in a mapped page.
func (m *Memory) IsAddrMapped(addr uint64) bool {
	return m.attributes(addr).IsMapped()
}

// IsAddrReadable returns true if the given address is in a readable
// page.
func (m *Memory) IsAddrReadable(addr uint64) bool {
	return m.attributes(addr).IsRead()
}

// IsAddrInDccm returns true if the page of the given address is in
// data closely-coupled memory.
func (m *Memory) IsAddrInDccm(addr uint64) bool {
	return m.attributes(addr).IsDccm()
}

// IsAddrInIccm returns true if the page of the given address is in
// instruction closely-coupled memory.
func (m *Memory) IsAddrInIccm(addr uint64) bool {
	return m.attributes(addr).IsIccm()
}

// IsAddrInMappedRegs returns true if the given address is in a memory
// mapped register page.
func (m *Memory) IsAddrInMappedRegs(addr uint64) bool {
	return m.attributes(addr).IsMemMappedReg()
}

// IsDataAddrExternal returns true if the given data address is external
// to the core.
func (m *Memory) IsDataAddrExternal(addr uint64) bool {
	return m.attributes(addr).IsExternal()
}

// SetReadAccess sets the read attribute of the page containing the
// given address. No-op if the address is out of bounds.
func (m *Memory) SetReadAccess(addr uint64, flag bool) {
	ix := m.pageIndex(addr)
	if ix >= uint64(len(m.attribs)) {
		return
	}
	m.attribs[ix].set(attrRead, flag)
}

// SetWriteAccess sets the write attribute of the page containing the
// given address. No-op if the address is out of bounds.
func (m *Memory) SetWriteAccess(addr uint64, flag bool) {
	ix := m.pageIndex(addr)
	if ix >= uint64(len(m.attribs)) {
		return
	}
	m.attribs[ix].set(attrWrite, flag)
}

// SetExecAccess sets the execute attribute of the page containing the
// given address. No-op if the address is out of bounds.
func (m *Memory) SetExecAccess(addr uint64, flag bool) {
	ix := m.pageIndex(addr)
	if ix >= uint64(len(m.attribs)) {
		return
	}
	m.attribs[ix].set(attrExec, flag)
}

// AmoLock acquires the mutex serializing atomic read-modify-write
// sequences. An embedding simulator that steps harts concurrently must
// bracket every AMO (load, update, store, reservation invalidation)
// with AmoLock/AmoUnlock so that the sequence appears as a single
// indivisible step.
func (m *Memory) AmoLock() {
	m.amoMu.Lock()
}

// AmoUnlock releases the mutex acquired by AmoLock.
func (m *Memory) AmoUnlock() {
	m.amoMu.Unlock()
}
