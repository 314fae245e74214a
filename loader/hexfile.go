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

package loader

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/hexadrune/swervemu/curated"
	"github.com/hexadrune/swervemu/logger"
	"github.com/hexadrune/swervemu/memory"
)

// LoadHexFile loads a Verilog-style hex file into memory. A line
// starting with @ sets the write cursor to the hexadecimal address that
// follows; any other non-empty line is a run of whitespace-separated
// hexadecimal byte values written sequentially from the cursor.
//
// Diagnostics for each bad line are sent to the logger. Once a line has
// failed, no further bytes are written; parsing continues so that every
// problem in the file is reported.
func LoadHexFile(mem *memory.Memory, filename string) error {
	input, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("hex file: %v", err)
	}
	defer input.Close()

	var address uint64
	errors := 0
	overwrites := 0

	scanner := bufio.NewScanner(input)
	for lineNum := 0; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		if line[0] == '@' {
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				logger.Logf("hexfile", "%s, line %d: invalid hexadecimal address: %s",
					filename, lineNum, line)
				errors++
				continue
			}
			addr, err := strconv.ParseUint(fields[0], 16, 64)
			if err != nil {
				logger.Logf("hexfile", "%s, line %d: invalid hexadecimal address: %s",
					filename, lineNum, line)
				errors++
				continue
			}
			address = addr
			continue
		}

		for _, tok := range strings.Fields(line) {
			value, err := strconv.ParseUint(tok, 16, 32)
			if err != nil {
				logger.Logf("hexfile", "%s, line %d: invalid data: %s", filename, lineNum, line)
				errors++
				break
			}
			if value > 0xff {
				logger.Logf("hexfile", "%s, line %d: invalid value: %#x", filename, lineNum, value)
				errors++
			}
			if address >= mem.Size() {
				logger.Logf("hexfile", "%s, line %d: address out of bounds: %#x",
					filename, lineNum, address)
				errors++
				break
			}
			if errors == 0 {
				if b, _ := mem.ReadByteRaw(address); b != 0 {
					overwrites++
				}
				mem.WriteByteRaw(address, uint8(value))
				address++
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("hex file: %v", err)
	}

	if overwrites > 0 {
		logger.Logf("hexfile", "%s: overwrote previously loaded data changing %d or more bytes",
			filename, overwrites)
	}

	if errors > 0 {
		return curated.Errorf("hex file: %d errors loading %s", errors, filename)
	}
	return nil
}
