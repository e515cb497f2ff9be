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

// execMultiply covers MUL/MLA (32x32+32=32) and the four long-multiply forms
// (UMULL/UMLAL/SMULL/SMLAL), distinguished by bits 23/22/21 of the opcode.
func execMultiply(c *Core, opcode uint32) {
	long := opcode&(1<<23) != 0
	signed := opcode&(1<<22) != 0
	accumulate := opcode&(1<<21) != 0
	s := opcode&(1<<20) != 0

	rm := c.Regs.Get(int(opcode & 0xf))
	rs := c.Regs.Get(int((opcode >> 8) & 0xf))

	if !long {
		rd := (opcode >> 16) & 0xf
		rn := (opcode >> 12) & 0xf
		result := rm * rs
		if accumulate {
			result += c.Regs.Get(int(rn))
		}
		c.Regs.Set(int(rd), result)
		if s {
			c.CPSR.N = result&(1<<31) != 0
			c.CPSR.Z = result == 0
		}
		return
	}

	rdLo := (opcode >> 12) & 0xf
	rdHi := (opcode >> 16) & 0xf

	var lo, hi uint32
	if signed {
		p := int64(int32(rm)) * int64(int32(rs))
		if accumulate {
			p += int64(c.Regs.Get(int(rdHi)))<<32 | int64(c.Regs.Get(int(rdLo)))
		}
		lo = uint32(p)
		hi = uint32(p >> 32)
	} else {
		p := uint64(rm) * uint64(rs)
		if accumulate {
			p += uint64(c.Regs.Get(int(rdHi)))<<32 | uint64(c.Regs.Get(int(rdLo)))
		}
		lo = uint32(p)
		hi = uint32(p >> 32)
	}

	c.Regs.Set(int(rdLo), lo)
	c.Regs.Set(int(rdHi), hi)
	if s {
		c.CPSR.N = hi&(1<<31) != 0
		c.CPSR.Z = lo == 0 && hi == 0
	}
}
