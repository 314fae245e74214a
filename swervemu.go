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

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/hexadrune/swervemu/curated"
	"github.com/hexadrune/swervemu/loader"
	"github.com/hexadrune/swervemu/logger"
	"github.com/hexadrune/swervemu/memory"
	"github.com/hexadrune/swervemu/modalflag"
	"github.com/hexadrune/swervemu/monitor"
	"github.com/hexadrune/swervemu/performance"
	"github.com/hexadrune/swervemu/statsview"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "MONITOR":
		err = runMonitor(md)
	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// memoryFlags collects the flags shared by every mode that builds a
// simulated memory.
type memoryFlags struct {
	size       *uint64
	pageSize   *uint64
	regionSize *uint64
	harts      *int
	xlen       *uint
	iccm       *string
	dccm       *string
	pic        *string
	unchecked  *bool
	log        *bool
}

func addMemoryFlags(md *modalflag.Modes) *memoryFlags {
	return &memoryFlags{
		size:       md.AddUint64("size", 8*1024*1024, "size of simulated memory in bytes"),
		pageSize:   md.AddUint64("pagesize", memory.DefaultPageSize, "size of memory pages in bytes"),
		regionSize: md.AddUint64("regionsize", memory.DefaultRegionSize, "size of memory regions in bytes"),
		harts:      md.AddInt("harts", 1, "number of harts sharing the memory"),
		xlen:       md.AddUint("xlen", 32, "register width: 32 or 64"),
		iccm:       md.AddString("iccm", "", "iccm areas: region:offset:size[,...]"),
		dccm:       md.AddString("dccm", "", "dccm areas: region:offset:size[,...]"),
		pic:        md.AddString("pic", "", "pic register areas: region:offset:size[,...]"),
		unchecked:  md.AddBool("unchecked", false, "allow elf segments on unmapped pages"),
		log:        md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// create a memory from the parsed flags. CCM/PIC definitions are
// processed and completed with FinishCcmConfig().
func (fl *memoryFlags) create() (*memory.Memory, error) {
	if *fl.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	mem := memory.NewMemoryWithGeometry(*fl.size, *fl.pageSize, *fl.regionSize, *fl.harts)
	mem.SetCheckUnmappedElf(!*fl.unchecked)

	for _, def := range []struct {
		areas  string
		define func(region uint64, offset uint64, size uint64) bool
		tag    string
	}{
		{*fl.iccm, mem.DefineIccm, "iccm"},
		{*fl.dccm, mem.DefineDccm, "dccm"},
		{*fl.pic, mem.DefineMemMappedRegisterRegion, "pic"},
	} {
		if def.areas == "" {
			continue
		}
		for _, area := range strings.Split(def.areas, ",") {
			region, offset, size, err := parseArea(area)
			if err != nil {
				return nil, err
			}
			if !def.define(region, offset, size) {
				return nil, curated.Errorf("bad %s definition: %s", def.tag, area)
			}
		}
	}

	mem.FinishCcmConfig()

	return mem, nil
}

// parseArea splits a region:offset:size triplet. Plain numbers are
// decimal; 0x numbers are hexadecimal.
func parseArea(s string) (uint64, uint64, uint64, error) {
	p := strings.Split(s, ":")
	if len(p) != 3 {
		return 0, 0, 0, curated.Errorf("bad area definition: %s (expecting region:offset:size)", s)
	}
	v := make([]uint64, 3)
	for i := range p {
		var err error
		v[i], err = strconv.ParseUint(p[i], 0, 64)
		if err != nil {
			return 0, 0, 0, curated.Errorf("bad area definition: %s: %v", s, err)
		}
	}
	return v[0], v[1], v[2], nil
}

// load an image file into memory. Files with a .hex extension are
// treated as Verilog-style hex files; anything else is loaded as ELF.
func load(mem *memory.Memory, filename string, xlen uint) (uint64, uint64, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".hex") {
		err := loader.LoadHexFile(mem, filename)
		return 0, 0, err
	}
	return loader.LoadElfFile(mem, filename, xlen)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	fl := addMemoryFlags(md)
	listSymbols := md.AddBool("symbols", false, "list symbols of the loaded image")
	memvizFile := md.AddString("memviz", "", "write a graph of the memory structure to file")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview not available in this build")
		}
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return curated.Errorf("memory image required for %s mode", md)
	case 1:
		mem, err := fl.create()
		if err != nil {
			return err
		}

		entry, end, err := load(mem, md.GetArg(0), *fl.xlen)
		if err != nil {
			return err
		}

		fmt.Printf("loaded %s\n", md.GetArg(0))
		if entry != 0 || end != 0 {
			fmt.Printf("entry point %#x, end of image %#x\n", entry, end)
		}
		fmt.Printf("%d symbols\n", mem.Symbols.Len())

		if *listSymbols {
			mem.Symbols.Write(os.Stdout)
		}

		if *memvizFile != "" {
			f, err := os.Create(*memvizFile)
			if err != nil {
				return curated.Errorf("memviz: %v", err)
			}
			defer f.Close()
			memviz.Map(f, mem)
		}

	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func runMonitor(md *modalflag.Modes) error {
	md.NewMode()

	fl := addMemoryFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	mem, err := fl.create()
	if err != nil {
		return err
	}

	// an image file is optional in monitor mode
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		if _, _, err := load(mem, md.GetArg(0), *fl.xlen); err != nil {
			return err
		}
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	mon, err := monitor.NewMonitor(mem)
	if err != nil {
		return err
	}
	return mon.Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	fl := addMemoryFlags(md)
	profile := md.AddString("profile", "cpu", "run profiler: cpu, mem, both")
	iterations := md.AddInt("iterations", 100, "number of load iterations to profile")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("memory image required for %s mode", md)
	}

	mem, err := fl.create()
	if err != nil {
		return err
	}

	return performance.RunProfiler(*profile, "swervemu", func() error {
		for i := 0; i < *iterations; i++ {
			if _, _, err := load(mem, md.GetArg(0), *fl.xlen); err != nil {
				return err
			}
		}
		return nil
	})
}
