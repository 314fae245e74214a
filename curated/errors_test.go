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

package curated_test

import (
	"errors"
	"testing"

	"github.com/hexadrune/swervemu/curated"
	"github.com/hexadrune/swervemu/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestIs(t *testing.T) {
	e := curated.Errorf("foo")
	test.Equate(t, curated.Is(e, "foo"), true)
	test.Equate(t, curated.Is(e, "bar"), false)
	test.Equate(t, curated.IsAny(e), true)

	f := errors.New("foo")
	test.Equate(t, curated.IsAny(f), false)
	test.Equate(t, curated.Is(f, "foo"), false)

	test.Equate(t, curated.IsAny(nil), false)
	test.Equate(t, curated.Is(nil, "foo"), false)
	test.Equate(t, curated.Has(nil, "foo"), false)
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testError, "inner detail")
	f := curated.Errorf(testErrorB, e)

	// Is() matches only the outermost pattern, Has() matches anywhere
	// in the chain
	test.Equate(t, curated.Is(f, testErrorB), true)
	test.Equate(t, curated.Is(f, testError), false)
	test.Equate(t, curated.Has(f, testErrorB), true)
	test.Equate(t, curated.Has(f, testError), true)
	test.Equate(t, curated.Has(e, testErrorB), false)
}

func TestDuplicateNormalisation(t *testing.T) {
	// adjacent duplicate message parts are removed
	e := curated.Errorf("error: %s", "error: inner")
	test.Equate(t, e.Error(), "error: inner")

	// distinct parts are kept
	f := curated.Errorf("error: %s", "detail")
	test.Equate(t, f.Error(), "error: detail")
}

func TestWrappedMessage(t *testing.T) {
	e := curated.Errorf(testError, "inner detail")
	f := curated.Errorf(testErrorB, e)
	test.Equate(t, f.Error(), "test error B: test error: inner detail")
}
