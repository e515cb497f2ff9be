// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/silicontrip/armcore/bus"
	"github.com/silicontrip/armcore/coproc"
	"github.com/silicontrip/armcore/cpu"
	"github.com/silicontrip/armcore/errors"
	"github.com/silicontrip/armcore/logger"
	"github.com/silicontrip/armcore/mmu"
	"github.com/silicontrip/armcore/vfp"
)

// imageFlags is the flag set every subcommand that loads an image shares,
// registered via pflag the way oisee-z80-optimizer registers its per-command
// flag groups.
type imageFlags struct {
	base      string
	entry     string
	bigEndian bool
	chip      string
	logPath   string
	budget    uint64
}

func (f *imageFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.base, "base", "0x0", "physical address the image is loaded at")
	flags.StringVar(&f.entry, "entry", "", "initial PC (defaults to --base)")
	flags.BoolVar(&f.bigEndian, "big-endian", false, "treat the image's memory as big-endian")
	flags.StringVar(&f.chip, "chip", "arm926ejs", "chip profile: arm720t, arm920t, arm926ejs, arm1176jzfs")
	flags.StringVar(&f.logPath, "log", "", "echo the central logger to this file as the image runs")
	flags.Uint64Var(&f.budget, "budget", 1_000_000, "instruction budget before the run stops")
}

// parseHexOrDec accepts both 0x-prefixed and bare decimal address literals,
// since image-loading addresses are read off a memory map far more often
// than typed by hand in decimal.
func parseHexOrDec(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Errorf(errors.BadImageLoad, err)
	}
	return uint32(v), nil
}

// rig bundles everything a subcommand needs after buildRig: the core, its
// MMU (nil if the chip has none attached — every profile here does), and a
// cleanup that flushes --log before the command returns.
type rig struct {
	Core  *cpu.Core
	MMU   *mmu.MMU
	Close func()
}

// buildRig loads the image at args[0] per f, wires a Core/MMU/coprocessor
// table the same way for every subcommand, and leaves the core freshly
// reset with PC at --entry (or --base).
func buildRig(cmd *cobra.Command, f *imageFlags, imagePath string, memSize int) (*rig, error) {
	profile, ok := mmu.Profile(f.chip)
	if !ok {
		return nil, errors.Errorf(errors.UnknownChip, f.chip)
	}
	chipCfg, err := cpu.Profile(f.chip)
	if err != nil {
		return nil, err
	}
	chipCfg.BigEndian = f.bigEndian

	base, err := parseHexOrDec(f.base)
	if err != nil {
		return nil, err
	}
	entry := base
	if f.entry != "" {
		entry, err = parseHexOrDec(f.entry)
		if err != nil {
			return nil, err
		}
	}

	img, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, errors.Errorf(errors.BadImageLoad, err)
	}
	if len(img) > memSize {
		return nil, errors.Errorf(errors.ImageTooLarge, len(img), base)
	}

	phys := bus.NewMemory(base, memSize, f.bigEndian)
	if !phys.Load(base, img) {
		return nil, errors.Errorf(errors.ImageTooLarge, len(img), base)
	}

	var core *cpu.Core
	m := mmu.New(profile, phys, func(high bool) { core.SetHighVectors(high) })

	cop := coproc.NewTable()
	coproc.AttachCP15(cop, m.CP15)
	fpu := vfp.New(profile.IDCode)
	cop.Attach(10, fpu)
	cop.Attach(11, fpu)

	core = cpu.NewCore(chipCfg, phys, m, cop, nil)
	core.Regs.SetPC(entry + 8)

	closeLog := func() {}
	if f.logPath != "" {
		lf, err := os.Create(f.logPath)
		if err == nil {
			logger.SetEcho(lf, true)
			closeLog = func() {
				logger.SetEcho(nil, false)
				lf.Close()
			}
		}
	}

	return &rig{Core: core, MMU: m, Close: closeLog}, nil
}
