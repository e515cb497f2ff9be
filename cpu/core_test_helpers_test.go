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

import "github.com/silicontrip/armcore/bus"

// newTestCore builds a v6 core (the broadest feature set) over 64KiB of flat
// memory starting at 0, with no MMU/coprocessor/sink attached: exactly what
// the execute_*.go unit tests need, without reaching for the MMU or
// coprocessor dispatch machinery exercised elsewhere.
func newTestCore() *Core {
	chip, err := Profile("arm1176jzfs")
	if err != nil {
		panic(err)
	}
	mem := bus.NewMemory(0, 64*1024, false)
	return NewCore(chip, mem, nil, nil, nil)
}
