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

package monitor

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal is a wrapper for "github.com/pkg/term/termios". it keeps the
// attribute sets for the terminal modes the monitor switches between
// and wraps the termios calls in functions with friendlier names.
type terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// initialise the fields in the terminal struct.
func (pt *terminal) initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return fmt.Errorf("monitor terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("monitor terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile

	// prepare the attributes for the terminal modes we'll be using
	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return err
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// cleanUp restores the terminal to canonical mode.
func (pt *terminal) cleanUp() {
	pt.canonicalMode()
}

// canonicalMode puts the terminal into normal, linebuffered mode.
func (pt *terminal) canonicalMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// cbreakMode puts the terminal into cbreak mode, where each keypress is
// delivered immediately.
func (pt *terminal) cbreakMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// print writes the formatted string to the output file.
func (pt *terminal) print(s string, a ...interface{}) {
	fmt.Fprintf(pt.output, s, a...)
}

// readLine reads one line of input in cbreak mode, echoing the typed
// characters and handling backspace. io.EOF is returned on ctrl-d at
// the start of a line.
func (pt *terminal) readLine(prompt string) (string, error) {
	pt.print("%s", prompt)

	line := make([]byte, 0, 64)
	buf := make([]byte, 1)

	for {
		n, err := pt.input.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}

		switch buf[0] {
		case '\n', '\r':
			pt.print("\n")
			return string(line), nil

		case 0x7f, 0x08: // backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				pt.print("\b \b")
			}

		case 0x04: // ctrl-d
			if len(line) == 0 {
				pt.print("\n")
				return "", io.EOF
			}

		default:
			if buf[0] >= 32 && buf[0] < 127 {
				line = append(line, buf[0])
				pt.print("%c", buf[0])
			}
		}
	}
}
