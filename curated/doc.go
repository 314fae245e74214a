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

// Package curated is a helper package for the plain Go language error
// type. Curated errors are created with the Errorf() function, which is
// similar to Errorf() in the fmt package except that the format string
// is retained as the identity of the error.
//
// The Is() function checks whether an error was created with a specific
// pattern. The Has() function is similar but checks the whole error
// chain. For example:
//
//	e := curated.Errorf("loader: %v", err)
//
//	if curated.Has(e, "loader: %v") {
//		...
//	}
//
// Sentinal patterns should be stored as const strings, suitably named
// and commented.
package curated
