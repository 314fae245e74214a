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

package symbols_test

import (
	"testing"

	"github.com/hexadrune/swervemu/symbols"
	"github.com/hexadrune/swervemu/test"
)

func TestTable(t *testing.T) {
	tbl := symbols.NewTable()
	test.Equate(t, tbl.Len(), 0)

	tbl.Add("main", 0x1000, 0x100)
	tbl.Add("data", 0x2000, 4)
	test.Equate(t, tbl.Len(), 2)

	sym, ok := tbl.Find("main")
	test.ExpectSuccess(t, ok)
	test.Equate(t, sym.Addr, uint64(0x1000))
	test.Equate(t, sym.Size, uint64(0x100))

	_, ok = tbl.Find("missing")
	test.ExpectFailure(t, ok)

	// adding a symbol of the same name replaces the previous entry
	tbl.Add("main", 0x3000, 8)
	test.Equate(t, tbl.Len(), 2)
	sym, ok = tbl.Find("main")
	test.ExpectSuccess(t, ok)
	test.Equate(t, sym.Addr, uint64(0x3000))
}

func TestFindFunction(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Add("outer", 0x1000, 0x100)
	tbl.Add("inner", 0x1010, 0x10)

	// the smallest covering symbol is preferred
	name, sym, ok := tbl.FindFunction(0x1015)
	test.ExpectSuccess(t, ok)
	test.Equate(t, name, "inner")
	test.Equate(t, sym.Addr, uint64(0x1010))

	name, _, ok = tbl.FindFunction(0x1050)
	test.ExpectSuccess(t, ok)
	test.Equate(t, name, "outer")

	// the covered range is exclusive at the top
	_, _, ok = tbl.FindFunction(0x1100)
	test.ExpectFailure(t, ok)

	// a zero-sized symbol covers nothing
	tbl.Add("marker", 0x2000, 0)
	_, _, ok = tbl.FindFunction(0x2000)
	test.ExpectFailure(t, ok)
}

func TestWriteOrdering(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Add("zebra", 0x300, 0)
	tbl.Add("aardvark", 0x100, 0)
	tbl.Add("mongoose", 0x200, 0)

	// listings are sorted by name regardless of insertion order
	tw := &test.CompareWriter{}
	tbl.Write(tw)
	if !tw.Compare("aardvark 0x100\nmongoose 0x200\nzebra 0x300\n") {
		t.Error("unexpected symbol listing")
	}

	test.Equate(t, tbl.String(), "aardvark 0x100\nmongoose 0x200\nzebra 0x300\n")
}
