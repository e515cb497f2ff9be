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

package cpu

import "github.com/silicontrip/armcore/errors"

// Architecture names the ARM architecture family revisions this core
// distinguishes between. Behaviour that differs across revisions (BLX/PLD
// decode in the NV condition slot, LDRD/STRD, media instructions, CLZ) is
// gated on these booleans rather than on a single "version number" field,
// matching how multi-revision interpreters in this lineage structure the
// check (is_v4, is_v5, is_v6, ... booleans on the config descriptor).
type Architecture struct {
	V4     bool
	V4T    bool
	V5     bool
	V5E    bool
	V6     bool
	XScale bool
}

// ChipConfig names the emulated chip and the architecture features it
// implies. It is built once, outside the execute loop (by cmd/armcore, from
// Profile and its command-line flags), and never mutated by the core itself.
type ChipConfig struct {
	Name string
	Arch Architecture

	// BigEndian is the initial state of the bigendSig external signal line.
	BigEndian bool

	// HighVectors seeds the high-vectors control bit (CP15 c1 bit 13) so
	// that Reset begins fetching from 0xFFFF0000 rather than 0x00000000.
	HighVectors bool
}

// known chip profiles. ARM720T is the oldest (v4, no Thumb); ARM1176JZF-S is
// the newest carried here (v6, full media instruction set). Each implies a
// distinct legal-tuple table for CP15 c7/c8/c10 (see mmu.ChipProfile).
var profiles = map[string]ChipConfig{
	"arm720t": {
		Name: "arm720t",
		Arch: Architecture{V4: true},
	},
	"arm920t": {
		Name: "arm920t",
		Arch: Architecture{V4: true, V4T: true},
	},
	"arm926ejs": {
		Name: "arm926ejs",
		Arch: Architecture{V4: true, V4T: true, V5: true, V5E: true},
	},
	"arm1176jzfs": {
		Name: "arm1176jzfs",
		Arch: Architecture{V4: true, V4T: true, V5: true, V5E: true, V6: true},
	},
}

// Profile looks up a named chip configuration.
func Profile(name string) (ChipConfig, error) {
	p, ok := profiles[name]
	if !ok {
		return ChipConfig{}, errors.Errorf(errors.UnknownChip, name)
	}
	return p, nil
}
