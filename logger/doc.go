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

// Package logger is used for recording log entries of interest to the
// simulator user. There is one central log to which every package
// writes. Entries are tagged with the originating package or sub-system
// and identical consecutive entries are folded into a repeat count.
//
// The memory engine itself never logs on the access path. Logging is
// reserved for configuration, image loading and other cold paths.
package logger
