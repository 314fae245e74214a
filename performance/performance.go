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

// Package performance profiles the simulator. Profiles are written with
// the standard runtime/pprof package and can be examined with the go
// tool pprof command.
package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/hexadrune/swervemu/curated"
)

// Profile types understood by RunProfiler.
const (
	ProfileNone = "none"
	ProfileCPU  = "cpu"
	ProfileMem  = "mem"
	ProfileBoth = "both"
)

// RunProfiler runs the run function under the named profile. The cpu
// profile covers the duration of the run; the mem profile is a heap
// snapshot taken after the run has finished. Profile files are named
// after the given prefix.
func RunProfiler(profile string, prefix string, run func() error) error {
	switch profile {
	case ProfileNone:
		return run()

	case ProfileCPU:
		return cpuProfile(prefix+"_cpu.profile", run)

	case ProfileMem:
		err := run()
		if err != nil {
			return err
		}
		return memProfile(prefix + "_mem.profile")

	case ProfileBoth:
		err := cpuProfile(prefix+"_cpu.profile", run)
		if err != nil {
			return err
		}
		return memProfile(prefix + "_mem.profile")
	}

	return curated.Errorf("performance: unknown profile type: %s", profile)
}

func cpuProfile(outFile string, run func() error) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer f.Close()

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

func memProfile(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer f.Close()

	runtime.GC()

	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	return nil
}
