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

// execSwapOrExclusive distinguishes SWP/SWPB (pre-v6, bits[27:23]==00010,
// bits[11:4]==00001001) from the v6 LDREX/STREX family, which reuses the
// same bit4==1 slot with bits[23:20] encoding the specific variant.
func execSwapOrExclusive(c *Core, opcode uint32) {
	if !c.Chip.Arch.V6 || opcode&0xff0 == 0x090 {
		execSWP(c, opcode)
		return
	}
	execLoadStoreExclusive(c, opcode)
}

func execSWP(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	byteAccess := opcode&(1<<22) != 0
	rn := (opcode >> 16) & 0xf
	rd := (opcode >> 12) & 0xf
	rm := opcode & 0xf

	addr := c.Regs.Get(int(rn))
	newVal := c.Regs.Get(int(rm))

	if byteAccess {
		old, err := c.readByte(addr)
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		if err := c.writeByte(addr, uint8(newVal)); err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		c.Regs.Set(int(rd), uint32(old))
		return
	}

	old, err := c.readWordRotated(addr)
	if err != nil {
		c.RaiseDataAbort(pc)
		return
	}
	if err := c.writeWord(addr, newVal); err != nil {
		c.RaiseDataAbort(pc)
		return
	}
	c.Regs.Set(int(rd), old)
}

// execLoadStoreExclusive covers LDREX/STREX/LDREXB/STREXB keyed by
// bits[23:20]; the exclusive monitor is the 128-entry table in Core, not a
// per-region bus signal, matching this module's single-core scope.
func execLoadStoreExclusive(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	kind := (opcode >> 20) & 0xf
	rn := (opcode >> 16) & 0xf
	rd := (opcode >> 12) & 0xf
	addr := c.Regs.Get(int(rn))

	switch kind {
	case 0x9: // LDREX
		v, err := c.readWordRotated(addr)
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		c.markExclusive(addr)
		c.Regs.Set(int(rd), v)
	case 0xb: // STREX
		rmField := opcode & 0xf
		v := c.Regs.Get(int(rmField))
		if c.checkExclusive(addr) {
			if err := c.writeWord(addr, v); err != nil {
				c.RaiseDataAbort(pc)
				return
			}
			c.Regs.Set(int(rd), 0)
		} else {
			c.Regs.Set(int(rd), 1)
		}
	case 0xd: // LDREXB
		v, err := c.readByte(addr)
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		c.markExclusive(addr)
		c.Regs.Set(int(rd), uint32(v))
	case 0xf: // STREXB
		rmField := opcode & 0xf
		v := uint8(c.Regs.Get(int(rmField)))
		if c.checkExclusive(addr) {
			if err := c.writeByte(addr, v); err != nil {
				c.RaiseDataAbort(pc)
				return
			}
			c.Regs.Set(int(rd), 0)
		} else {
			c.Regs.Set(int(rd), 1)
		}
	}
}
