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

// Package modalflag is a wrapper for the flag package in the Go
// standard library. It provides a convenient method of handling program
// modes (and sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings
// as the only argument, with modalflag you first call NewArgs() with
// the array of arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be
// retrieved with the RemainingArgs() or GetArg() functions.
//
// A mode is a special command line argument that puts the program into
// a different mode of operation, in the manner of the go command's
// build, doc and test modes. Each mode can have a different set of
// flags and expected arguments. Modes are declared with AddSubModes():
//
//	md.AddSubModes("run", "monitor", "performance")
//
// Sub-mode comparisons are case insensitive. The first sub-mode in the
// list is the default, chosen when the first argument matches no listed
// sub-mode. After a mode has been selected, NewMode() starts a fresh
// flagset and Parse() can be called again to process the remaining
// arguments:
//
//	md.Parse()
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		log := md.AddBool("log", false, "echo log to stdout")
//		p, err := md.Parse()
//		...
//	}
//
// Modes can be chained together as deep as required.
package modalflag
